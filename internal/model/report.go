package model

import (
	"encoding/json"
	"strings"
	"time"
)

// ReportType is the kind of a user report
type ReportType string

const (
	ReportPost        ReportType = "POST"
	ReportComment     ReportType = "COMMENT"
	ReportPaper       ReportType = "PAPER"
	ReportError       ReportType = "ERROR"
	ReportImprovement ReportType = "IMPROVEMENT"
)

// ParseReportType rejects anything outside the known report kinds.
func ParseReportType(s string) (ReportType, error) {
	switch t := ReportType(strings.ToUpper(strings.TrimSpace(s))); t {
	case ReportPost, ReportComment, ReportPaper, ReportError, ReportImprovement:
		return t, nil
	}
	return "", ValidationError{Field: "reportType", Reason: "unknown report type " + s}
}

// NeedsTarget reports whether reports of this kind point at content.
func (t ReportType) NeedsTarget() bool {
	switch t {
	case ReportPost, ReportComment, ReportPaper:
		return true
	}
	return false
}

// ReportSubject is what a report is about. The concrete types are
// ContentSubject and FeedbackSubject.
type ReportSubject interface {
	Type() ReportType
}

// ContentSubject points at a post, comment or paper message
type ContentSubject struct {
	Kind     ReportType
	TargetID int64
}

func (s ContentSubject) Type() ReportType { return s.Kind }

// FeedbackSubject is a bug report or an improvement suggestion
type FeedbackSubject struct {
	Kind ReportType
}

func (s FeedbackSubject) Type() ReportType { return s.Kind }

// ReportRequest is the raw report body as the browser sends it
type ReportRequest struct {
	ReportType string `json:"reportType"`
	TargetID   *int64 `json:"targetId,omitempty"`
	Content    string `json:"content"`
}

// Report is a validated report ready to send
type Report struct {
	Subject ReportSubject
	Content string
}

const (
	minReportContent = 10
	maxReportContent = 500
)

// ParseReport validates a raw report into its typed form.
func ParseReport(req ReportRequest) (*Report, error) {
	kind, err := ParseReportType(req.ReportType)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if n := len([]rune(content)); n < minReportContent || n > maxReportContent {
		return nil, ValidationError{Field: "content", Reason: "must be 10 to 500 characters"}
	}

	var subject ReportSubject
	switch kind {
	case ReportPost, ReportComment, ReportPaper:
		if req.TargetID == nil || *req.TargetID <= 0 {
			return nil, ValidationError{Field: "targetId", Reason: "required for " + string(kind) + " reports"}
		}
		subject = ContentSubject{Kind: kind, TargetID: *req.TargetID}
	case ReportError, ReportImprovement:
		subject = FeedbackSubject{Kind: kind}
	}

	return &Report{Subject: subject, Content: content}, nil
}

// MarshalJSON writes the backend wire shape.
func (r Report) MarshalJSON() ([]byte, error) {
	wire := ReportRequest{
		ReportType: string(r.Subject.Type()),
		Content:    r.Content,
	}
	if c, ok := r.Subject.(ContentSubject); ok {
		id := c.TargetID
		wire.TargetID = &id
	}
	return json.Marshal(wire)
}

// AdminReport is a report as listed in the moderation console
type AdminReport struct {
	ID           int64      `json:"id"`
	ReportType   ReportType `json:"reportType"`
	ReporterID   *int64     `json:"reporterId,omitempty"`
	ReporterName string     `json:"reporterName,omitempty"`
	TargetID     *int64     `json:"targetId,omitempty"`
	TargetAuthor string     `json:"targetAuthorName,omitempty"`
	Content      string     `json:"content"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// BanRequest bans or force-withdraws the author of reported content
type BanRequest struct {
	ReportType ReportType `json:"reportType"`
	TargetID   int64      `json:"targetId"`
}

// Validate checks the request before it is sent to the backend.
func (r BanRequest) Validate() error {
	if !r.ReportType.NeedsTarget() {
		return ValidationError{Field: "reportType", Reason: "only content reports can be actioned"}
	}
	if r.TargetID <= 0 {
		return ValidationError{Field: "targetId", Reason: "required"}
	}
	return nil
}
