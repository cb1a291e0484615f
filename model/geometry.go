package model

// Point represents a 2D point in pixel space
type Point struct {
	X, Y int
}

// BBox represents a bounding box in pixel space.
// The origin is the top-left corner of the page; Y grows downward.
type BBox struct {
	X      int // Left
	Y      int // Top
	Width  int
	Height int
}

// NewBBox creates a bounding box from coordinates
func NewBBox(x, y, width, height int) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// Left returns the left edge X coordinate
func (b BBox) Left() int {
	return b.X
}

// Right returns the right edge X coordinate
func (b BBox) Right() int {
	return b.X + b.Width
}

// Top returns the top edge Y coordinate
func (b BBox) Top() int {
	return b.Y
}

// Bottom returns the bottom edge Y coordinate
func (b BBox) Bottom() int {
	return b.Y + b.Height
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: b.X + b.Width/2,
		Y: b.Y + b.Height/2,
	}
}

// Contains checks if a point is inside the bounding box
func (b BBox) Contains(p Point) bool {
	return p.X >= b.Left() && p.X <= b.Right() &&
		p.Y >= b.Top() && p.Y <= b.Bottom()
}

// Intersects checks if two bounding boxes intersect
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right() < other.Left() ||
		b.Left() > other.Right() ||
		b.Bottom() < other.Top() ||
		b.Top() > other.Bottom())
}

// Union returns the smallest box covering both boxes
func (b BBox) Union(other BBox) BBox {
	x := minInt(b.Left(), other.Left())
	y := minInt(b.Top(), other.Top())
	right := maxInt(b.Right(), other.Right())
	bottom := maxInt(b.Bottom(), other.Bottom())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// Area returns the area of the bounding box
func (b BBox) Area() int {
	return b.Width * b.Height
}

// IsEmpty returns true if the bounding box has zero area
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
