package model

import "strings"

// SocialProvider identifies the external identity provider used to sign in
type SocialProvider string

const (
	ProviderKakao  SocialProvider = "KAKAO"
	ProviderNaver  SocialProvider = "NAVER"
	ProviderGoogle SocialProvider = "GOOGLE"
)

// ParseSocialProvider accepts the provider names used in callback URLs
// ("kakao", "KAKAO", ...).
func ParseSocialProvider(s string) (SocialProvider, error) {
	switch SocialProvider(strings.ToUpper(s)) {
	case ProviderKakao:
		return ProviderKakao, nil
	case ProviderNaver:
		return ProviderNaver, nil
	case ProviderGoogle:
		return ProviderGoogle, nil
	}
	return "", ValidationError{Field: "provider", Reason: "unsupported provider " + s}
}

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
	RoleBan   Role = "BAN"
)

// Member is the signed-in user snapshot returned by /api/auth/me
type Member struct {
	MemberID       int64          `json:"memberId"`
	MemberName     string         `json:"memberName"`
	ThumbnailImage string         `json:"thumbnailImage,omitempty"`
	SocialNickname string         `json:"socialNickname,omitempty"`
	Role           Role           `json:"role"`
	SettingID      int64          `json:"settingId"`
	SocialProvider SocialProvider `json:"socialProvider,omitempty"`
}

// IsAdmin reports whether the member may use the moderation console
func (m *Member) IsAdmin() bool {
	return m != nil && m.Role == RoleAdmin
}

// LoginRequest is the body of a social login
type LoginRequest struct {
	Provider SocialProvider `json:"provider"`
	Code     string         `json:"code"`
	State    string         `json:"state,omitempty"`
	FCMToken string         `json:"fcmToken,omitempty"`
}

// Validate checks the request before it is sent to the backend.
func (r LoginRequest) Validate() error {
	if _, err := ParseSocialProvider(string(r.Provider)); err != nil {
		return err
	}
	if r.Code == "" {
		return ValidationError{Field: "code", Reason: "required"}
	}
	return nil
}

// LoginResult is what the backend answers after a login.
// A new member has to pick a name before the account is usable.
type LoginResult struct {
	Status string `json:"status,omitempty"`
	UUID   string `json:"uuid,omitempty"`
}

// Setting holds the member's notification switches
type Setting struct {
	MessageNotification      bool `json:"messageNotification"`
	CommentNotification      bool `json:"commentNotification"`
	PostFeaturedNotification bool `json:"postFeaturedNotification"`
	FriendSendNotification   bool `json:"friendSendNotification"`
}

// UpdateNameRequest renames the member
type UpdateNameRequest struct {
	MemberName string `json:"memberName"`
}

// Validate checks the requested member name.
func (r UpdateNameRequest) Validate() error {
	n := len([]rune(r.MemberName))
	if n < 2 || n > 8 {
		return ValidationError{Field: "memberName", Reason: "must be 2 to 8 characters"}
	}
	return nil
}
