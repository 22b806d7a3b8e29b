package model

import "time"

// BlacklistEntry is a member the current user blocked
type BlacklistEntry struct {
	ID         int64     `json:"id"`
	MemberName string    `json:"memberName"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BlacklistAddRequest blocks a member by name
type BlacklistAddRequest struct {
	MemberName string `json:"memberName"`
}

// BlacklistRemoveRequest unblocks an entry
type BlacklistRemoveRequest struct {
	ID   int64 `json:"id"`
	Page int   `json:"page"`
}
