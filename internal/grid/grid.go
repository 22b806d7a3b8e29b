// Package grid lays rolling-paper messages out on paginated 2D pages.
//
// The board is BoardColumns x BoardRows cells addressed with 1-based (x, y),
// x being the column. A viewport shows one page at a time; pages split the
// board into vertical strips whose width depends on the viewport class, so the
// page count is fixed per layout and never depends on how many messages exist.
package grid

import (
	"errors"
	"fmt"
)

const (
	BoardColumns = 12
	BoardRows    = 10
)

var (
	ErrOutOfBoard = errors.New("grid: coordinates outside the board")
	ErrOutOfPage  = errors.New("grid: cell outside the page")
)

// Layout is the page shape for a viewport class
type Layout struct {
	Columns int `json:"columns"`
	Rows    int `json:"rows"`
}

var (
	Desktop = Layout{Columns: 6, Rows: BoardRows}
	Mobile  = Layout{Columns: 4, Rows: BoardRows}
)

// LayoutFor picks the layout for a viewport class.
func LayoutFor(isMobile bool) Layout {
	if isMobile {
		return Mobile
	}
	return Desktop
}

// TotalPages is the number of pages needed to cover the board.
func (l Layout) TotalPages() int {
	return (BoardColumns + l.Columns - 1) / l.Columns
}

// Position is a page-local cell, all fields 0-based
type Position struct {
	Page  int `json:"page"`
	GridX int `json:"gridX"`
	GridY int `json:"gridY"`
}

// Locate maps an absolute 1-based board coordinate to its page cell.
func (l Layout) Locate(x, y int) (Position, error) {
	if x < 1 || x > BoardColumns || y < 1 || y > BoardRows {
		return Position{}, fmt.Errorf("%w: (%d,%d)", ErrOutOfBoard, x, y)
	}
	return Position{
		Page:  (x - 1) / l.Columns,
		GridX: (x - 1) % l.Columns,
		GridY: y - 1,
	}, nil
}

// CoordsFromPageAndGrid is the inverse of Locate.
func (l Layout) CoordsFromPageAndGrid(page, gridX, gridY int) (x, y int, err error) {
	if page < 0 || page >= l.TotalPages() || gridX < 0 || gridX >= l.Columns || gridY < 0 || gridY >= l.Rows {
		return 0, 0, fmt.Errorf("%w: page %d (%d,%d)", ErrOutOfPage, page, gridX, gridY)
	}
	x = page*l.Columns + gridX + 1
	if x > BoardColumns {
		// last page of a layout that does not divide the board evenly
		return 0, 0, fmt.Errorf("%w: page %d (%d,%d)", ErrOutOfPage, page, gridX, gridY)
	}
	return x, gridY + 1, nil
}

// Placeable is anything with a 1-based board position.
type Placeable interface {
	Coords() (x, y int)
}

// RejectReason explains why a message was left off the grid
type RejectReason string

const (
	// ReasonOutOfBoard: coordinates fall outside the board.
	ReasonOutOfBoard RejectReason = "out_of_board"
	// ReasonDisplaced: a later message took the same cell.
	ReasonDisplaced RejectReason = "displaced"
)

// Rejection is a message that is not shown on the grid
type Rejection[T Placeable] struct {
	Item   T
	Reason RejectReason
}

// Grid is a precomputed page layout of messages.
// Collisions are last-write-wins in input order.
type Grid[T Placeable] struct {
	layout   Layout
	items    []T
	pages    [][][]*T // [page][row][col]
	rejected []Rejection[T]
	placed   int
}

// New lays out items for the given viewport class.
func New[T Placeable](items []T, isMobile bool) *Grid[T] {
	return Build(items, LayoutFor(isMobile))
}

// Build lays out items with an explicit layout.
func Build[T Placeable](items []T, layout Layout) *Grid[T] {
	g := &Grid[T]{
		layout: layout,
		items:  append([]T(nil), items...),
	}

	g.pages = make([][][]*T, layout.TotalPages())
	for p := range g.pages {
		rows := make([][]*T, layout.Rows)
		for r := range rows {
			rows[r] = make([]*T, layout.Columns)
		}
		g.pages[p] = rows
	}

	for i := range g.items {
		item := &g.items[i]
		pos, err := layout.Locate((*item).Coords())
		if err != nil {
			g.rejected = append(g.rejected, Rejection[T]{Item: *item, Reason: ReasonOutOfBoard})
			continue
		}
		cell := &g.pages[pos.Page][pos.GridY][pos.GridX]
		if *cell != nil {
			g.rejected = append(g.rejected, Rejection[T]{Item: **cell, Reason: ReasonDisplaced})
			g.placed--
		}
		*cell = item
		g.placed++
	}

	return g
}

// Relayout recomputes the grid for another viewport class.
func (g *Grid[T]) Relayout(isMobile bool) *Grid[T] {
	layout := LayoutFor(isMobile)
	if layout == g.layout {
		return g
	}
	return Build(g.items, layout)
}

func (g *Grid[T]) Layout() Layout  { return g.layout }
func (g *Grid[T]) TotalPages() int { return len(g.pages) }

// Len is the number of messages shown on the grid.
func (g *Grid[T]) Len() int { return g.placed }

// Rejected lists messages that are not shown, in the order they were dropped.
func (g *Grid[T]) Rejected() []Rejection[T] {
	return append([]Rejection[T](nil), g.rejected...)
}

// Page returns rows x columns cells of one page; nil cells are empty.
func (g *Grid[T]) Page(page int) ([][]*T, error) {
	if page < 0 || page >= len(g.pages) {
		return nil, fmt.Errorf("%w: page %d", ErrOutOfPage, page)
	}
	return g.pages[page], nil
}

// Cell looks a page-local cell up. It returns nil for empty or invalid cells.
func (g *Grid[T]) Cell(page, gridX, gridY int) *T {
	if page < 0 || page >= len(g.pages) || gridY < 0 || gridY >= g.layout.Rows || gridX < 0 || gridX >= g.layout.Columns {
		return nil
	}
	return g.pages[page][gridY][gridX]
}

// MessageAt looks an absolute board coordinate up.
func (g *Grid[T]) MessageAt(x, y int) *T {
	pos, err := g.layout.Locate(x, y)
	if err != nil {
		return nil
	}
	return g.pages[pos.Page][pos.GridY][pos.GridX]
}

// CoordsFromPageAndGrid maps a page-local cell back to board coordinates.
func (g *Grid[T]) CoordsFromPageAndGrid(page, gridX, gridY int) (x, y int, err error) {
	return g.layout.CoordsFromPageAndGrid(page, gridX, gridY)
}

// FirstEmpty returns the first free board coordinate, scanning the whole
// board row by row regardless of how it is paged.
func (g *Grid[T]) FirstEmpty() (x, y int, ok bool) {
	for y := 1; y <= BoardRows; y++ {
		for x := 1; x <= BoardColumns; x++ {
			if g.MessageAt(x, y) == nil {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}
