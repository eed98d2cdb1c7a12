// Package reorder turns a pointer position over a grid of rendered links into
// an insertion index. It knows nothing about events or the DOM; callers pass
// the bounding boxes they measured.
package reorder

import "math"

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is a bounding box in the same coordinate space as Point.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// nearest returns the index of the rect whose center is closest to p, and
// whether p sits before that center. Ties keep the earlier rect.
func nearest(p Point, rects []Rect) (int, bool) {
	best := -1
	before := false
	minDist := math.Inf(1)

	for i, r := range rects {
		c := r.Center()
		d := distance(p, c)
		if d < minDist {
			minDist = d
			best = i
			before = p.X < c.X || p.Y < c.Y
		}
	}
	return best, before
}

// InsertionIndex is the position in 0..len(rects) where a dropped link should
// go. Being left of or above the nearest center means before it.
func InsertionIndex(p Point, rects []Rect) int {
	if len(rects) == 0 {
		return 0
	}

	i, before := nearest(p, rects)
	if i == -1 {
		return len(rects)
	}
	idx := i + 1
	if before {
		idx = i
	}
	return max(0, min(idx, len(rects)))
}

// IndicatorSlot is the index of the element a drop indicator should be drawn
// in front of, or -1 when it belongs after the last element.
func IndicatorSlot(p Point, rects []Rect) int {
	idx := InsertionIndex(p, rects)
	if idx >= len(rects) {
		return -1
	}
	return idx
}
