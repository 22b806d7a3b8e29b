package model

import "time"

// Comment is a board comment. ParentID is set for replies.
type Comment struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"postId"`
	ParentID   *int64    `json:"parentId,omitempty"`
	MemberID   *int64    `json:"memberId,omitempty"`
	MemberName string    `json:"memberName"`
	Content    string    `json:"content"`
	Popular    bool      `json:"popular"`
	Deleted    bool      `json:"deleted"`
	LikeCount  int       `json:"likeCount"`
	UserLike   bool      `json:"userLike"`
	CreatedAt  time.Time `json:"createdAt"`
}

// WriteCommentRequest is the body for writing a comment or reply
type WriteCommentRequest struct {
	PostID   int64  `json:"postId"`
	ParentID *int64 `json:"parentId,omitempty"`
	Content  string `json:"content"`
	Password *int   `json:"password,omitempty"`
}

// Validate checks the request before it is sent to the backend.
func (r WriteCommentRequest) Validate() error {
	if r.PostID <= 0 {
		return ValidationError{Field: "postId", Reason: "required"}
	}
	if n := len([]rune(r.Content)); n == 0 || n > 255 {
		return ValidationError{Field: "content", Reason: "must be 1 to 255 characters"}
	}
	if r.Password != nil && (*r.Password < 1000 || *r.Password > 9999) {
		return ValidationError{Field: "password", Reason: "must be a 4-digit number"}
	}
	return nil
}

// UpdateCommentRequest edits an existing comment
type UpdateCommentRequest struct {
	ID       int64  `json:"id"`
	PostID   int64  `json:"postId"`
	Content  string `json:"content"`
	Password *int   `json:"password,omitempty"`
}

// Validate checks the request before it is sent to the backend.
func (r UpdateCommentRequest) Validate() error {
	if r.ID <= 0 {
		return ValidationError{Field: "id", Reason: "required"}
	}
	if n := len([]rune(r.Content)); n == 0 || n > 255 {
		return ValidationError{Field: "content", Reason: "must be 1 to 255 characters"}
	}
	return nil
}

// DeleteCommentRequest removes a comment
type DeleteCommentRequest struct {
	ID       int64 `json:"id"`
	PostID   int64 `json:"postId"`
	Password *int  `json:"password,omitempty"`
}

// LikeCommentRequest toggles a like on a comment
type LikeCommentRequest struct {
	CommentID int64 `json:"commentId"`
	PostID    int64 `json:"postId"`
}
