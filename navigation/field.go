package navigation

import "github.com/lixenwraith/sentry/core"

// Weighted edge costs: cardinal = 10, diagonal = 14 (≈10√2)
const (
	costCardinal    = 10
	costDiagonal    = 14
	costUnreachable = 1<<30 - 1
)

// Per-direction costs matching core.Adjacent8 order
var dirCosts = [8]int{
	costCardinal, costDiagonal, costCardinal, costDiagonal,
	costCardinal, costDiagonal, costCardinal, costDiagonal,
}

// --- Min-heap for Dijkstra ---

type heapEntry struct {
	idx  int // Flat grid index (y*width + x)
	dist int
}

type minHeap []heapEntry

func (h *minHeap) push(e heapEntry) {
	*h = append(*h, e)
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if (*h)[parent].dist <= (*h)[i].dist {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

func (h *minHeap) pop() heapEntry {
	old := *h
	n := len(old)
	e := old[0]
	old[0] = old[n-1]
	*h = old[:n-1]

	i := 0
	for {
		left := 2*i + 1
		if left >= len(*h) {
			break
		}
		smallest := left
		if right := left + 1; right < len(*h) && (*h)[right].dist < (*h)[left].dist {
			smallest = right
		}
		if (*h)[i].dist <= (*h)[smallest].dist {
			break
		}
		(*h)[i], (*h)[smallest] = (*h)[smallest], (*h)[i]
		i = smallest
	}
	return e
}

// WallChecker returns true if the cell blocks movement
type WallChecker func(p core.Point) bool

// DistanceField holds walking distances from one origin cell
type DistanceField struct {
	Width, Height int
	Origin        core.Point
	Distances     []int // Weighted distance (cardinal=10, diagonal=14)
	Valid         bool

	heap minHeap
}

// NewDistanceField creates an empty field for the given dimensions
func NewDistanceField(width, height int) *DistanceField {
	size := width * height
	return &DistanceField{
		Width:     width,
		Height:    height,
		Distances: make([]int, size),
		Origin:    core.Point{X: -1, Y: -1},
		heap:      make(minHeap, 0, size/4),
	}
}

// Distance returns weighted distance from the origin, -1 if unreachable
func (f *DistanceField) Distance(p core.Point) int {
	if !f.Valid || p.X < 0 || p.Y < 0 || p.X >= f.Width || p.Y >= f.Height {
		return -1
	}
	d := f.Distances[p.Y*f.Width+p.X]
	if d >= costUnreachable {
		return -1
	}
	return d
}

// Touchable reports whether a walker from the origin can stand on or next to p
// Blocked targets such as walls and buildings are touched from an adjacent cell
func (f *DistanceField) Touchable(p core.Point) bool {
	if f.Distance(p) >= 0 {
		return true
	}
	for _, d := range core.Adjacent8 {
		if f.Distance(p.Add(d)) >= 0 {
			return true
		}
	}
	return false
}

// Compute runs weighted Dijkstra from origin
// Diagonal moves may not cut blocked corners
func (f *DistanceField) Compute(origin core.Point, isBlocked WallChecker) {
	f.Valid = false
	if origin.X < 0 || origin.Y < 0 || origin.X >= f.Width || origin.Y >= f.Height {
		return
	}

	w := f.Width
	for i := range f.Distances {
		f.Distances[i] = costUnreachable
	}

	originIdx := origin.Y*w + origin.X
	f.Distances[originIdx] = 0

	f.heap = f.heap[:0]
	f.heap.push(heapEntry{idx: originIdx, dist: 0})

	for len(f.heap) > 0 {
		entry := f.heap.pop()
		if entry.dist > f.Distances[entry.idx] {
			continue // Stale entry
		}

		cur := core.Point{X: entry.idx % w, Y: entry.idx / w}
		for dirIdx, d := range core.Adjacent8 {
			n := cur.Add(d)
			if n.X < 0 || n.Y < 0 || n.X >= f.Width || n.Y >= f.Height {
				continue
			}
			if isBlocked(n) {
				continue
			}
			if d.X != 0 && d.Y != 0 {
				if isBlocked(core.Point{X: cur.X + d.X, Y: cur.Y}) || isBlocked(core.Point{X: cur.X, Y: cur.Y + d.Y}) {
					continue
				}
			}

			nIdx := n.Y*w + n.X
			newDist := entry.dist + dirCosts[dirIdx]
			if newDist < f.Distances[nIdx] {
				f.Distances[nIdx] = newDist
				f.heap.push(heapEntry{idx: nIdx, dist: newDist})
			}
		}
	}

	f.Origin = origin
	f.Valid = true
}
