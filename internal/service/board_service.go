package service

import (
	"context"

	"bimillog/internal/cache"
	"bimillog/internal/model"
)

// BoardService serves the community board: posts and their comments
type BoardService struct {
	actions
}

func NewBoardService(d Deps) *BoardService {
	return &BoardService{actions: newActions(d, "board")}
}

func postsKey(parts ...string) string {
	return cache.Key(append([]string{publicScope, "posts"}, parts...)...)
}

// post and comment views carry the viewer's like state, so they are cached
// per session.
func postKey(sessionID string, postID int64) string {
	return cache.Key(sessionID, "post", i64toa(postID))
}

func commentsKey(sessionID string, postID int64) string {
	return cache.Key(sessionID, "comments", i64toa(postID))
}

func (s *BoardService) ListPosts(ctx context.Context, page model.PageRequest) (*model.Page[model.PostSummary], error) {
	page = page.Normalize()
	return cache.Fetch(ctx, s.query, postsKey("list", itoa(page.Page), itoa(page.Size)), func(ctx context.Context) (*model.Page[model.PostSummary], error) {
		return s.api.ListPosts(ctx, page)
	})
}

func (s *BoardService) SearchPosts(ctx context.Context, typ model.SearchType, query string, page model.PageRequest) (*model.Page[model.PostSummary], error) {
	page = page.Normalize()
	key := postsKey("search", string(typ), query, itoa(page.Page), itoa(page.Size))
	return cache.Fetch(ctx, s.query, key, func(ctx context.Context) (*model.Page[model.PostSummary], error) {
		return s.api.SearchPosts(ctx, typ, query, page)
	})
}

func (s *BoardService) PopularPosts(ctx context.Context, period model.PopularPeriod) ([]model.PostSummary, error) {
	return cache.Fetch(ctx, s.query, postsKey("popular", string(period)), func(ctx context.Context) ([]model.PostSummary, error) {
		return s.api.PopularPosts(ctx, period)
	})
}

func (s *BoardService) GetPost(ctx context.Context, sessionID string, postID int64) (*model.Post, error) {
	return cache.Fetch(ctx, s.query, postKey(sessionID, postID), func(ctx context.Context) (*model.Post, error) {
		return s.api.GetPost(ctx, postID)
	})
}

func (s *BoardService) CreatePost(ctx context.Context, sessionID string, req model.PostRequest) (*model.Post, error) {
	post, err := s.api.CreatePost(ctx, req)
	if err != nil {
		return nil, s.fail(sessionID, "Could not publish the post", err)
	}
	s.invalidate(ctx, postsKey())
	s.succeed(sessionID, "Post published")
	return post, nil
}

func (s *BoardService) UpdatePost(ctx context.Context, sessionID string, postID int64, req model.PostRequest) error {
	if err := s.api.UpdatePost(ctx, postID, req); err != nil {
		return s.fail(sessionID, "Could not update the post", err)
	}
	s.invalidate(ctx, postsKey(), postKey(sessionID, postID))
	s.succeed(sessionID, "Post updated")
	return nil
}

func (s *BoardService) DeletePost(ctx context.Context, sessionID string, postID int64, req model.DeletePostRequest) error {
	if err := s.api.DeletePost(ctx, postID, req); err != nil {
		return s.fail(sessionID, "Could not delete the post", err)
	}
	s.invalidate(ctx, postsKey(), postKey(sessionID, postID), commentsKey(sessionID, postID))
	s.succeed(sessionID, "Post deleted")
	return nil
}

func (s *BoardService) LikePost(ctx context.Context, sessionID string, postID int64) error {
	if err := s.api.LikePost(ctx, postID); err != nil {
		return s.fail(sessionID, "Could not like the post", err)
	}
	s.invalidate(ctx, postKey(sessionID, postID), postsKey("popular"))
	return nil
}

func (s *BoardService) ListComments(ctx context.Context, sessionID string, postID int64, page model.PageRequest) (*model.Page[model.Comment], error) {
	page = page.Normalize()
	key := cache.Key(commentsKey(sessionID, postID), itoa(page.Page), itoa(page.Size))
	return cache.Fetch(ctx, s.query, key, func(ctx context.Context) (*model.Page[model.Comment], error) {
		return s.api.ListComments(ctx, postID, page)
	})
}

func (s *BoardService) PopularComments(ctx context.Context, sessionID string, postID int64) ([]model.Comment, error) {
	key := cache.Key(commentsKey(sessionID, postID), "popular")
	return cache.Fetch(ctx, s.query, key, func(ctx context.Context) ([]model.Comment, error) {
		return s.api.PopularComments(ctx, postID)
	})
}

func (s *BoardService) WriteComment(ctx context.Context, sessionID string, req model.WriteCommentRequest) error {
	if err := s.api.WriteComment(ctx, req); err != nil {
		return s.fail(sessionID, "Could not post the comment", err)
	}
	s.invalidate(ctx, commentsKey(sessionID, req.PostID), postKey(sessionID, req.PostID), postsKey("list"))
	s.succeed(sessionID, "Comment posted")
	return nil
}

func (s *BoardService) UpdateComment(ctx context.Context, sessionID string, req model.UpdateCommentRequest) error {
	if err := s.api.UpdateComment(ctx, req); err != nil {
		return s.fail(sessionID, "Could not update the comment", err)
	}
	s.invalidate(ctx, commentsKey(sessionID, req.PostID))
	s.succeed(sessionID, "Comment updated")
	return nil
}

func (s *BoardService) DeleteComment(ctx context.Context, sessionID string, req model.DeleteCommentRequest) error {
	if err := s.api.DeleteComment(ctx, req); err != nil {
		return s.fail(sessionID, "Could not delete the comment", err)
	}
	s.invalidate(ctx, commentsKey(sessionID, req.PostID), postKey(sessionID, req.PostID), postsKey("list"))
	s.succeed(sessionID, "Comment deleted")
	return nil
}

func (s *BoardService) LikeComment(ctx context.Context, sessionID string, req model.LikeCommentRequest) error {
	if err := s.api.LikeComment(ctx, req); err != nil {
		return s.fail(sessionID, "Could not like the comment", err)
	}
	s.invalidate(ctx, commentsKey(sessionID, req.PostID))
	return nil
}
