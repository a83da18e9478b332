package vmath

import (
	"github.com/lixenwraith/sentry/core"
)

// CellLine iterates the supercover line between two cell centers
// Every cell the segment touches is visited, a segment passing exactly through a corner steps diagonally
type CellLine struct {
	cur, end     core.Point
	stepX, stepY int
	nx, ny       int // Absolute deltas
	ix, iy       int // Steps taken per axis
	started      bool
}

// NewCellLine creates an iterator from one cell center to another, both ends included
func NewCellLine(from, to core.Point) CellLine {
	l := CellLine{cur: from, end: to, stepX: 1, stepY: 1}
	l.nx = to.X - from.X
	l.ny = to.Y - from.Y
	if l.nx < 0 {
		l.nx, l.stepX = -l.nx, -1
	}
	if l.ny < 0 {
		l.ny, l.stepY = -l.ny, -1
	}
	return l
}

// Next advances to the next cell, false once the end cell was returned
func (l *CellLine) Next() bool {
	if !l.started {
		l.started = true
		return true
	}
	if l.ix == l.nx && l.iy == l.ny {
		return false
	}

	// Compare the parametric distance to the next vertical and horizontal cell boundary
	// (0.5+ix)/nx vs (0.5+iy)/ny, cross-multiplied to stay in integers
	cmp := (1+2*l.ix)*l.ny - (1+2*l.iy)*l.nx
	switch {
	case l.ix == l.nx:
		l.cur.Y += l.stepY
		l.iy++
	case l.iy == l.ny:
		l.cur.X += l.stepX
		l.ix++
	case cmp < 0:
		l.cur.X += l.stepX
		l.ix++
	case cmp > 0:
		l.cur.Y += l.stepY
		l.iy++
	default:
		l.cur.X += l.stepX
		l.cur.Y += l.stepY
		l.ix++
		l.iy++
	}
	return true
}

// Pos returns the current cell
func (l *CellLine) Pos() core.Point {
	return l.cur
}

// TraverseCells visits cells on the supercover line between two cell centers, both ends included
// Stops early when callback returns false
func TraverseCells(from, to core.Point, callback func(p core.Point) bool) {
	l := NewCellLine(from, to)
	for l.Next() {
		if !callback(l.Pos()) {
			return
		}
	}
}
