package model

import "time"

// DecoType is the sticker decoration of a rolling-paper message.
// The catalogue belongs to the backend, so unknown values are kept as-is.
type DecoType string

const (
	DecoPotato     DecoType = "POTATO"
	DecoCarrot     DecoType = "CARROT"
	DecoCabbage    DecoType = "CABBAGE"
	DecoTomato     DecoType = "TOMATO"
	DecoStrawberry DecoType = "STRAWBERRY"
	DecoStar       DecoType = "STAR"
	DecoMoon       DecoType = "MOON"
	DecoSun        DecoType = "SUN"
)

// Message is a sticky note placed on someone's rolling paper.
// X is the column and Y the row, both 1-based as the backend defines them.
type Message struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"ownerId"`
	DecoType  DecoType  `json:"decoType"`
	Anonymity string    `json:"anonymity"`
	Content   string    `json:"content"`
	X         int       `json:"x"`
	Y         int       `json:"y"`
	CreatedAt time.Time `json:"createdAt"`
}

// VisitMessage is the redacted view other members get of a paper.
type VisitMessage struct {
	ID       int64    `json:"id"`
	DecoType DecoType `json:"decoType"`
	X        int      `json:"x"`
	Y        int      `json:"y"`
}

// WriteMessageRequest is the body for leaving a message on a paper
type WriteMessageRequest struct {
	DecoType  DecoType `json:"decoType"`
	Anonymity string   `json:"anonymity"`
	Content   string   `json:"content"`
	X         int      `json:"x"`
	Y         int      `json:"y"`
}

// Validate checks the request before it is sent to the backend.
func (r WriteMessageRequest) Validate() error {
	if r.DecoType == "" {
		return ValidationError{Field: "decoType", Reason: "required"}
	}
	if r.Anonymity == "" {
		return ValidationError{Field: "anonymity", Reason: "required"}
	}
	if n := len([]rune(r.Anonymity)); n > 8 {
		return ValidationError{Field: "anonymity", Reason: "must be at most 8 characters"}
	}
	if r.Content == "" {
		return ValidationError{Field: "content", Reason: "required"}
	}
	if n := len([]rune(r.Content)); n > 255 {
		return ValidationError{Field: "content", Reason: "must be at most 255 characters"}
	}
	if r.X < 1 || r.Y < 1 {
		return ValidationError{Field: "position", Reason: "coordinates are 1-based"}
	}
	return nil
}

// DeleteMessageRequest is the body for removing a message from one's own paper
type DeleteMessageRequest struct {
	ID int64 `json:"id"`
}

// Coords returns the 1-based board position.
func (m Message) Coords() (int, int) { return m.X, m.Y }

// Coords returns the 1-based board position.
func (m VisitMessage) Coords() (int, int) { return m.X, m.Y }
