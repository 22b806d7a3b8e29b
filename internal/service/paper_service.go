package service

import (
	"context"
	"errors"

	"bimillog/internal/cache"
	"bimillog/internal/grid"
	"bimillog/internal/model"
)

// Coords is an absolute 1-based board position
type Coords struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PaperGrid is a rolling paper laid out for one viewport class
type PaperGrid[T grid.Placeable] struct {
	MemberName string      `json:"memberName,omitempty"`
	Layout     grid.Layout `json:"layout"`
	TotalPages int         `json:"totalPages"`
	Pages      [][][]*T    `json:"pages"`
	Count      int         `json:"count"`
	Rejected   int         `json:"rejected"`
	// Suggested is the first free cell, absent when the paper is full.
	Suggested *Coords `json:"suggested,omitempty"`
}

func newPaperGrid[T grid.Placeable](memberName string, g *grid.Grid[T]) *PaperGrid[T] {
	pg := &PaperGrid[T]{
		MemberName: memberName,
		Layout:     g.Layout(),
		TotalPages: g.TotalPages(),
		Pages:      make([][][]*T, g.TotalPages()),
		Count:      g.Len(),
		Rejected:   len(g.Rejected()),
	}
	for p := range pg.Pages {
		pg.Pages[p], _ = g.Page(p)
	}
	if x, y, ok := g.FirstEmpty(); ok {
		pg.Suggested = &Coords{X: x, Y: y}
	}
	return pg
}

// PaperService serves rolling papers and their messages
type PaperService struct {
	actions
	sessions *SessionService
}

func NewPaperService(d Deps, sessions *SessionService) *PaperService {
	return &PaperService{
		actions:  newActions(d, "paper"),
		sessions: sessions,
	}
}

func paperKey(memberName string) string {
	return cache.Key(publicScope, "paper", memberName)
}

// MyPaper returns the signed-in member's paper with message contents.
func (s *PaperService) MyPaper(ctx context.Context, sessionID string, isMobile bool) (*PaperGrid[model.Message], error) {
	msgs, err := cache.Fetch(ctx, s.query, cache.Key(sessionID, "paper"), s.api.MyPaper)
	if err != nil {
		return nil, err
	}
	g := grid.New(msgs, isMobile)
	s.logRejected(sessionID, len(g.Rejected()))

	name := ""
	if m, err := s.sessions.Manager(sessionID).Member(ctx); err == nil && m != nil {
		name = m.MemberName
	}
	return newPaperGrid(name, g), nil
}

// VisitPaper returns someone's paper as visitors see it.
func (s *PaperService) VisitPaper(ctx context.Context, memberName string, isMobile bool) (*PaperGrid[model.VisitMessage], error) {
	if memberName == "" {
		return nil, model.ValidationError{Field: "memberName", Reason: "required"}
	}
	g, err := s.visitGrid(ctx, memberName, isMobile)
	if err != nil {
		return nil, err
	}
	s.logRejected(memberName, len(g.Rejected()))
	return newPaperGrid(memberName, g), nil
}

func (s *PaperService) visitGrid(ctx context.Context, memberName string, isMobile bool) (*grid.Grid[model.VisitMessage], error) {
	msgs, err := cache.Fetch(ctx, s.query, paperKey(memberName), func(ctx context.Context) ([]model.VisitMessage, error) {
		return s.api.VisitPaper(ctx, memberName)
	})
	if err != nil {
		return nil, err
	}
	return grid.New(msgs, isMobile), nil
}

// Write leaves a message on memberName's paper. Positions off the board or
// already taken are rejected before the backend is called.
func (s *PaperService) Write(ctx context.Context, sessionID, memberName string, req model.WriteMessageRequest) error {
	if err := req.Validate(); err != nil {
		return s.fail(sessionID, "Could not write the message", err)
	}
	if _, err := grid.Desktop.Locate(req.X, req.Y); err != nil {
		return s.fail(sessionID, "Could not write the message",
			model.ValidationError{Field: "position", Reason: "outside the paper"})
	}
	if g, err := s.visitGrid(ctx, memberName, false); err == nil && g.MessageAt(req.X, req.Y) != nil {
		return s.fail(sessionID, "Could not write the message",
			model.ValidationError{Field: "position", Reason: "that spot is already taken"})
	}

	if err := s.api.WriteMessage(ctx, memberName, req); err != nil {
		return s.fail(sessionID, "Could not write the message", err)
	}
	s.invalidate(ctx, paperKey(memberName))
	s.succeed(sessionID, "Message sent to "+memberName)
	return nil
}

// Delete removes a message from the signed-in member's own paper.
func (s *PaperService) Delete(ctx context.Context, sessionID string, messageID int64) error {
	if err := s.api.DeleteMessage(ctx, messageID); err != nil {
		return s.fail(sessionID, "Could not delete the message", err)
	}
	keys := []string{cache.Key(sessionID, "paper")}
	if m, err := s.sessions.Manager(sessionID).Member(ctx); err == nil && m != nil {
		keys = append(keys, paperKey(m.MemberName))
	}
	s.invalidate(ctx, keys...)
	s.succeed(sessionID, "Message deleted")
	return nil
}

// Coords maps a page-local cell back to board coordinates.
func (s *PaperService) Coords(page, gridX, gridY int, isMobile bool) (Coords, error) {
	x, y, err := grid.LayoutFor(isMobile).CoordsFromPageAndGrid(page, gridX, gridY)
	if errors.Is(err, grid.ErrOutOfPage) {
		return Coords{}, model.ValidationError{Field: "cell", Reason: "outside the page"}
	}
	if err != nil {
		return Coords{}, err
	}
	return Coords{X: x, Y: y}, nil
}

func (s *PaperService) logRejected(owner string, n int) {
	if n > 0 {
		s.log.Warn("messages left off the grid", "owner", owner, "count", n)
	}
}
