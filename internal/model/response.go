package model

// Result is the uniform envelope every BFF endpoint answers with.
// Failures never carry Data.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Ok wraps data in a successful result
func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: &data}
}

// Fail builds a failed result
func Fail[T any](msg string) Result[T] {
	return Result[T]{Success: false, Error: msg}
}

// Page is the offset-paging envelope used by the backend
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// CursorPage is the cursor-paging envelope used by the backend
type CursorPage[T any] struct {
	Content    []T    `json:"content"`
	NextCursor *int64 `json:"nextCursor,omitempty"`
	HasNext    bool   `json:"hasNext"`
}

// PageRequest carries offset paging parameters
type PageRequest struct {
	Page int
	Size int
}

// Normalize clamps paging to sane values.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = 10
	}
	if p.Size > 100 {
		p.Size = 100
	}
	return p
}

// CursorRequest carries cursor paging parameters. A nil Cursor asks for the first page.
type CursorRequest struct {
	Cursor *int64
	Size   int
}
