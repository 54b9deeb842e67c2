package mot

import (
	"image"
	"math"
)

// Box is an axis-aligned bounding box in image pixel coordinates.
type Box struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// NewBox builds a Box from its four corners.
func NewBox(left, top, right, bottom int) Box {
	return Box{Left: left, Top: top, Right: right, Bottom: bottom}
}

// NewBoxFrom converts a stdlib image.Rectangle into a Box.
func NewBoxFrom(r image.Rectangle) Box {
	return Box{Left: r.Min.X, Top: r.Min.Y, Right: r.Max.X, Bottom: r.Max.Y}
}

// Width returns the box width in pixels.
func (b Box) Width() int {
	return b.Right - b.Left
}

// Height returns the box height in pixels.
func (b Box) Height() int {
	return b.Bottom - b.Top
}

// Center returns the integer center point of the box.
func (b Box) Center() Point {
	return Point{
		X: float64((b.Left + b.Right) / 2),
		Y: float64((b.Top + b.Bottom) / 2),
	}
}

// CAH converts a Box into its center/aspect/height representation, the
// measurement space the Kalman filter operates in.
func (b Box) CAH() bboxCAH {
	h := b.Height()
	w := b.Width()
	aspect := 0.0
	if h != 0 {
		aspect = float64(w) / float64(h)
	}
	c := b.Center()
	return bboxCAH{
		cx:     c.X,
		cy:     c.Y,
		aspect: aspect,
		height: float64(h),
	}
}

// bboxCAH is the (center-x, center-y, aspect, height) parameterization used
// as both the Kalman filter's state projection and its measurement.
type bboxCAH struct {
	cx     float64
	cy     float64
	aspect float64
	height float64
}

// boxFromCAH reconstructs an integer Box from a CAH tuple, truncating to int.
func boxFromCAH(cx, cy, aspect, height float64) Box {
	width := aspect * height
	left := cx - width/2
	top := cy - height/2
	return Box{
		Left:   int(left),
		Top:    int(top),
		Right:  int(left + width),
		Bottom: int(top + height),
	}
}

// Point is a 2D point in image pixel coordinates.
type Point struct {
	X float64
	Y float64
}

// NewPoint builds a Point from its coordinates.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// NewPointFrom converts a stdlib image.Point into a Point.
func NewPointFrom(p image.Point) Point {
	return Point{X: float64(p.X), Y: float64(p.Y)}
}

func euclideanDistance(p1, p2 Point) float64 {
	return math.Hypot(p1.X-p2.X, p1.Y-p2.Y)
}
