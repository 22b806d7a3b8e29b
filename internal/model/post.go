package model

import "time"

// PostSummary is a row of the board listing
type PostSummary struct {
	ID           int64     `json:"id"`
	MemberID     *int64    `json:"memberId,omitempty"`
	MemberName   string    `json:"memberName"`
	Title        string    `json:"title"`
	ViewCount    int       `json:"viewCount"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	IsNotice     bool      `json:"isNotice"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Post is a full board post
type Post struct {
	ID           int64     `json:"id"`
	MemberID     *int64    `json:"memberId,omitempty"`
	MemberName   string    `json:"memberName"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	ViewCount    int       `json:"viewCount"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	IsLiked      bool      `json:"isLiked"`
	IsNotice     bool      `json:"isNotice"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PopularPeriod selects which popular post list to fetch
type PopularPeriod string

const (
	PopularRealtime PopularPeriod = "realtime"
	PopularWeekly   PopularPeriod = "weekly"
	PopularLegend   PopularPeriod = "legend"
)

// ParsePopularPeriod accepts realtime, weekly or legend.
func ParsePopularPeriod(s string) (PopularPeriod, error) {
	switch p := PopularPeriod(s); p {
	case PopularRealtime, PopularWeekly, PopularLegend:
		return p, nil
	}
	return "", ValidationError{Field: "period", Reason: "unknown period " + s}
}

// SearchType selects what a board search matches against
type SearchType string

const (
	SearchTitle        SearchType = "TITLE"
	SearchTitleContent SearchType = "TITLE_CONTENT"
	SearchWriter       SearchType = "WRITER"
)

// ParseSearchType accepts TITLE, TITLE_CONTENT or WRITER.
func ParseSearchType(s string) (SearchType, error) {
	switch t := SearchType(s); t {
	case SearchTitle, SearchTitleContent, SearchWriter:
		return t, nil
	}
	return "", ValidationError{Field: "type", Reason: "unknown search type " + s}
}

// PostRequest is the body for writing or editing a post.
// Anonymous writers protect their post with a numeric password.
type PostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Password *int   `json:"password,omitempty"`
}

// Validate checks the request before it is sent to the backend.
func (r PostRequest) Validate() error {
	if n := len([]rune(r.Title)); n == 0 || n > 30 {
		return ValidationError{Field: "title", Reason: "must be 1 to 30 characters"}
	}
	if n := len([]rune(r.Content)); n == 0 || n > 1000 {
		return ValidationError{Field: "content", Reason: "must be 1 to 1000 characters"}
	}
	if r.Password != nil && (*r.Password < 1000 || *r.Password > 9999) {
		return ValidationError{Field: "password", Reason: "must be a 4-digit number"}
	}
	return nil
}

// DeletePostRequest carries the password an anonymous writer set
type DeletePostRequest struct {
	Password *int `json:"password,omitempty"`
}
