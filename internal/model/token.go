package model

// TokenEnvelope is the client-held access token cache entry.
// ExpiresIn is in seconds, SavedAt in epoch milliseconds. Both are optional so
// that a missing field can be told apart from a zero one.
type TokenEnvelope struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    *int64 `json:"expiresIn,omitempty"`
	SavedAt      *int64 `json:"savedAt,omitempty"`
}

// ExpiresAt returns the expiry in epoch milliseconds and whether it is known.
func (e *TokenEnvelope) ExpiresAt() (int64, bool) {
	if e == nil || e.ExpiresIn == nil || e.SavedAt == nil {
		return 0, false
	}
	return *e.SavedAt + *e.ExpiresIn*1000, true
}
