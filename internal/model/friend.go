package model

import "time"

// Friend is an accepted friendship
type Friend struct {
	FriendshipID   int64     `json:"friendshipId"`
	FriendMemberID int64     `json:"friendMemberId"`
	MemberName     string    `json:"memberName"`
	ThumbnailImage string    `json:"thumbnailImage,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FriendRequest is a pending request, sent or received
type FriendRequest struct {
	ID             int64     `json:"id"`
	MemberID       int64     `json:"memberId"`
	MemberName     string    `json:"memberName"`
	ThumbnailImage string    `json:"thumbnailImage,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// RecommendedFriend is a friend-of-friend suggestion ranked by the backend
type RecommendedFriend struct {
	MemberID         int64  `json:"memberId"`
	MemberName       string `json:"memberName"`
	ThumbnailImage   string `json:"thumbnailImage,omitempty"`
	Depth            int    `json:"depth"`
	AcquaintanceID   *int64 `json:"acquaintanceId,omitempty"`
	Acquaintance     string `json:"acquaintance,omitempty"`
	ManyAcquaintance bool   `json:"manyAcquaintance"`
}
