package component

import "github.com/lixenwraith/sentry/core"

// PositionComponent places an entity on a grid cell
type PositionComponent struct {
	X, Y int
}

// Point returns the position as a core.Point
func (p PositionComponent) Point() core.Point {
	return core.Point{X: p.X, Y: p.Y}
}
