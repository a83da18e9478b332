package core

// Point represents a 2D grid coordinate
type Point struct {
	X, Y int
}

// Add returns p offset by o
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the vector from o to p
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// LengthSq returns the squared horizontal length of p treated as a vector
func (p Point) LengthSq() int {
	return p.X*p.X + p.Y*p.Y
}

// DistSq returns squared horizontal distance between two cells
func (p Point) DistSq(o Point) int {
	return p.Sub(o).LengthSq()
}

// Center returns the cell center in continuous coordinates
func (p Point) Center() (float64, float64) {
	return float64(p.X) + 0.5, float64(p.Y) + 0.5
}

// AdjacentTo reports whether o is one of the 8 neighbours of p
func (p Point) AdjacentTo(o Point) bool {
	dx, dy := p.X-o.X, p.Y-o.Y
	if dx == 0 && dy == 0 {
		return false
	}
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}

// Adjacent8 lists neighbour offsets in clockwise order starting north
var Adjacent8 = [8]Point{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}
