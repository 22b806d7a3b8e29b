package service

import (
	"context"
	"net/http"
	"testing"

	"bimillog/internal/backend"
	"bimillog/internal/model"
	"bimillog/internal/toast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPostsCachedUntilCreate(t *testing.T) {
	f := newFixture(t)
	f.backend.handle("GET", "/api/post", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, model.Page[model.PostSummary]{Content: []model.PostSummary{{ID: 1, Title: "first"}}, TotalElements: 1})
	})
	f.backend.handle("POST", "/api/post", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, model.Post{ID: 2, Title: "second"})
	})
	svc := NewBoardService(f.deps)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		page, err := svc.ListPosts(ctx, model.PageRequest{})
		require.NoError(t, err)
		require.Len(t, page.Content, 1)
	}
	assert.Equal(t, 1, f.backend.count("GET", "/api/post"))

	post, err := svc.CreatePost(ctx, "sid-1", model.PostRequest{Title: "second", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), post.ID)
	assert.Equal(t, toast.Success, lastToast(t, f.toasts, "sid-1").Type)

	_, err = svc.ListPosts(ctx, model.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, f.backend.count("GET", "/api/post"))
}

func TestPostViewsAreCachedPerSession(t *testing.T) {
	f := newFixture(t)
	f.backend.handle("GET", "/api/post/7", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, model.Post{ID: 7, Title: "hello"})
	})
	f.backend.handle("POST", "/api/post/7/like", func(w http.ResponseWriter, r *http.Request) {})
	svc := NewBoardService(f.deps)
	ctx := context.Background()

	_, err := svc.GetPost(ctx, "sid-a", 7)
	require.NoError(t, err)
	_, err = svc.GetPost(ctx, "sid-b", 7)
	require.NoError(t, err)
	_, err = svc.GetPost(ctx, "sid-a", 7)
	require.NoError(t, err)
	assert.Equal(t, 2, f.backend.count("GET", "/api/post/7"))

	require.NoError(t, svc.LikePost(ctx, "sid-a", 7))
	_, err = svc.GetPost(ctx, "sid-a", 7)
	require.NoError(t, err)
	_, err = svc.GetPost(ctx, "sid-b", 7)
	require.NoError(t, err)
	assert.Equal(t, 3, f.backend.count("GET", "/api/post/7"))
}

func TestWriteCommentValidatesBeforeSending(t *testing.T) {
	f := newFixture(t)
	svc := NewBoardService(f.deps)

	err := svc.WriteComment(context.Background(), "sid-1", model.WriteCommentRequest{PostID: 3})
	var ve model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "content", ve.Field)
	assert.Equal(t, 0, f.backend.count("POST", "/api/comment/write"))

	got := lastToast(t, f.toasts, "sid-1")
	assert.Equal(t, toast.Error, got.Type)
	assert.NotEmpty(t, got.Description)
}

func TestLikeCommentPassesBackendStatus(t *testing.T) {
	f := newFixture(t)
	f.backend.handle("POST", "/api/comment/like", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	svc := NewBoardService(f.deps)

	err := svc.LikeComment(context.Background(), "sid-1", model.LikeCommentRequest{CommentID: 1, PostID: 3})
	require.Error(t, err)
	assert.True(t, backend.IsForbidden(err))
	assert.Equal(t, http.StatusForbidden, StatusCode(err))
	assert.Equal(t, toast.Error, lastToast(t, f.toasts, "sid-1").Type)
}
