package model

import "time"

// ErrorLevel is the severity the browser attached to an error report
type ErrorLevel string

const (
	ErrorLevelError   ErrorLevel = "error"
	ErrorLevelWarning ErrorLevel = "warning"
	ErrorLevelInfo    ErrorLevel = "info"
)

// ErrorReport is an unexpected client-side error forwarded for diagnosis
type ErrorReport struct {
	ID         string     `json:"id" bson:"_id"`
	SessionID  string     `json:"sessionId,omitempty" bson:"sessionId,omitempty"`
	Message    string     `json:"message" bson:"message"`
	Stack      string     `json:"stack,omitempty" bson:"stack,omitempty"`
	URL        string     `json:"url,omitempty" bson:"url,omitempty"`
	UserAgent  string     `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
	Level      ErrorLevel `json:"level" bson:"level"`
	OccurredAt time.Time  `json:"occurredAt" bson:"occurredAt"`
	ReceivedAt time.Time  `json:"receivedAt" bson:"receivedAt"`
}
