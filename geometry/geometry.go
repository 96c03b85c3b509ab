// Package geometry provides the Point, Size, Rectangle and Scale primitives
// shared by windows, outputs, and layouts, parametrized over a numeric
// scalar and a logical/physical coordinate-space marker.
package geometry

import (
	"golang.org/x/exp/constraints"
)

// Scalar is any numeric type usable as a coordinate or dimension.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// Kind marks whether a geometrical value lives in Logical or Physical space.
type Kind interface {
	Logical | Physical
}

// Logical space is scale-independent; most of the core works here.
type Logical struct{}

// Physical space is relative to actual device pixels.
type Physical struct{}

// Cardinal names one of the four sides of a rectangle, used by Trim and
// unidirectional offsets.
type Cardinal int

const (
	Up Cardinal = iota
	Down
	Left
	Right
)

// CardinalX is a horizontal direction, used by bidirectional offsets.
type CardinalX int

const (
	XLeft CardinalX = iota
	XRight
)

// CardinalY is a vertical direction, used by bidirectional offsets.
type CardinalY int

const (
	YUp CardinalY = iota
	YDown
)

// Scale is a per-output scale factor relating Logical and Physical space.
type Scale[N Scalar] struct {
	X N
	Y N
}

// Point is a 2D coordinate in the given Kind's coordinate space.
type Point[N Scalar, K Kind] struct {
	X N
	Y N
}

// NewPoint constructs a Point. K is inferred from usage context; pass the
// zero value of the desired Kind type parameter explicitly at call sites
// that need a specific space, e.g. Point[int, Logical]{X: x, Y: y}.
func NewPoint[N Scalar, K Kind](x, y N) Point[N, K] {
	return Point[N, K]{X: x, Y: y}
}

// UnidirOffset returns a Point offset by delta in the given cardinal
// direction.
func (p Point[N, K]) UnidirOffset(delta N, dir Cardinal) Point[N, K] {
	switch dir {
	case Up:
		return Point[N, K]{X: p.X, Y: p.Y - delta}
	case Down:
		return Point[N, K]{X: p.X, Y: p.Y + delta}
	case Left:
		return Point[N, K]{X: p.X - delta, Y: p.Y}
	default: // Right
		return Point[N, K]{X: p.X + delta, Y: p.Y}
	}
}

// BidirOffset returns a Point offset by (dx, dy) in the given directions.
func (p Point[N, K]) BidirOffset(dx, dy N, dirx CardinalX, diry CardinalY) Point[N, K] {
	x := p.X
	if dirx == XRight {
		x += dx
	} else {
		x -= dx
	}
	y := p.Y
	if diry == YDown {
		y += dy
	} else {
		y -= dy
	}
	return Point[N, K]{X: x, Y: y}
}

// OffsetTo returns the (dx, dy) delta required to move from p to other.
func (p Point[N, K]) OffsetTo(other Point[N, K]) (N, N) {
	return other.X - p.X, other.Y - p.Y
}

// Size is a width/height pair in the given Kind's coordinate space.
type Size[N Scalar, K Kind] struct {
	Width  N
	Height N
}

// IsEmpty reports whether the Size has zero area.
func (s Size[N, K]) IsEmpty() bool {
	var zero N
	return s.Width == zero || s.Height == zero
}

// Rectangle is an axis-aligned box anchored at Point with the given Size.
type Rectangle[N Scalar, K Kind] struct {
	Point Point[N, K]
	Size  Size[N, K]
}

// NewRectangle constructs a Rectangle from x, y, height, width, in that
// argument order.
func NewRectangle[N Scalar, K Kind](x, y, h, w N) Rectangle[N, K] {
	return Rectangle[N, K]{
		Point: Point[N, K]{X: x, Y: y},
		Size:  Size[N, K]{Width: w, Height: h},
	}
}

// AtOrigin constructs a Rectangle anchored at (0, 0) with the given size.
func AtOrigin[N Scalar, K Kind](height, width N) Rectangle[N, K] {
	var zero N
	return NewRectangle[N, K](zero, zero, height, width)
}

// IsEmpty reports whether the Rectangle has zero area.
func (r Rectangle[N, K]) IsEmpty() bool { return r.Size.IsEmpty() }

// Contains reports whether r fully encloses other.
func (r Rectangle[N, K]) Contains(other Rectangle[N, K]) bool {
	if other.Point.X < r.Point.X {
		return false
	}
	if other.Point.X+other.Size.Width > r.Point.X+r.Size.Width {
		return false
	}
	if other.Point.Y < r.Point.Y {
		return false
	}
	if other.Point.Y+other.Size.Height > r.Point.Y+r.Size.Height {
		return false
	}
	return true
}

// ContainsPoint reports whether pt lies within r.
func (r Rectangle[N, K]) ContainsPoint(pt Point[N, K]) bool {
	inW := pt.X >= r.Point.X && pt.X < r.Point.X+r.Size.Width
	inH := pt.Y >= r.Point.Y && pt.Y < r.Point.Y+r.Size.Height
	return inW && inH
}

// OverlapsWith reports whether r and other share any area.
func (r Rectangle[N, K]) OverlapsWith(other Rectangle[N, K]) bool {
	aLeft, aRight := r.Point.X, r.Point.X+r.Size.Width
	aTop, aBot := r.Point.Y, r.Point.Y+r.Size.Height

	bLeft, bRight := other.Point.X, other.Point.X+other.Size.Width
	bTop, bBot := other.Point.Y, other.Point.Y+other.Size.Height

	return !(aLeft >= bRight || aRight <= bLeft || aTop >= bBot || aBot <= bTop)
}

// Trim returns a new Rectangle with an area removed from the side named by
// dir.
func (r Rectangle[N, K]) Trim(amount N, dir Cardinal) Rectangle[N, K] {
	switch dir {
	case Up:
		return NewRectangle[N, K](r.Point.X, r.Point.Y+amount, r.Size.Height-amount, r.Size.Width)
	case Down:
		return NewRectangle[N, K](r.Point.X, r.Point.Y, r.Size.Height-amount, r.Size.Width)
	case Left:
		return NewRectangle[N, K](r.Point.X+amount, r.Point.Y, r.Size.Height, r.Size.Width-amount)
	default: // Right
		return NewRectangle[N, K](r.Point.X, r.Point.Y, r.Size.Height, r.Size.Width-amount)
	}
}

// UnidirOffset returns a Rectangle whose point has been moved by delta in
// the given direction.
func (r Rectangle[N, K]) UnidirOffset(delta N, dir Cardinal) Rectangle[N, K] {
	return Rectangle[N, K]{Point: r.Point.UnidirOffset(delta, dir), Size: r.Size}
}

// BidirOffset returns a Rectangle whose point has been moved by (dx, dy) in
// the given directions.
func (r Rectangle[N, K]) BidirOffset(dx, dy N, dirx CardinalX, diry CardinalY) Rectangle[N, K] {
	return Rectangle[N, K]{Point: r.Point.BidirOffset(dx, dy, dirx, diry), Size: r.Size}
}

// Upscale multiplies both point and size by scale.
func (r Rectangle[N, K]) Upscale(scale Scale[N]) Rectangle[N, K] {
	return Rectangle[N, K]{
		Point: Point[N, K]{X: r.Point.X * scale.X, Y: r.Point.Y * scale.Y},
		Size:  Size[N, K]{Width: r.Size.Width * scale.X, Height: r.Size.Height * scale.Y},
	}
}

// Downscale divides both point and size by scale.
func (r Rectangle[N, K]) Downscale(scale Scale[N]) Rectangle[N, K] {
	return Rectangle[N, K]{
		Point: Point[N, K]{X: r.Point.X / scale.X, Y: r.Point.Y / scale.Y},
		Size:  Size[N, K]{Width: r.Size.Width / scale.X, Height: r.Size.Height / scale.Y},
	}
}

// SplitHorzN splits r into n equal bands stacked top to bottom.
func SplitHorzN[N Scalar, K Kind](r Rectangle[N, K], n int) []Rectangle[N, K] {
	newHeight := r.Size.Height / N(n)
	ret := make([]Rectangle[N, K], 0, n)
	for i := 0; i < n; i++ {
		ret = append(ret, Rectangle[N, K]{
			Point: Point[N, K]{X: r.Point.X, Y: r.Point.Y + N(i)*newHeight},
			Size:  Size[N, K]{Width: r.Size.Width, Height: newHeight},
		})
	}
	return ret
}

// SplitVertN splits r into n equal bands left to right.
func SplitVertN[N Scalar, K Kind](r Rectangle[N, K], n int) []Rectangle[N, K] {
	newWidth := r.Size.Width / N(n)
	ret := make([]Rectangle[N, K], 0, n)
	for i := 0; i < n; i++ {
		ret = append(ret, Rectangle[N, K]{
			Point: Point[N, K]{X: r.Point.X + N(i)*newWidth, Y: r.Point.Y},
			Size:  Size[N, K]{Width: newWidth, Height: r.Size.Height},
		})
	}
	return ret
}

func clampRatio(ratio float32) float32 {
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// SplitHorzRatio splits r into (top, bottom) by ratio, the fraction of the
// original height given to top. ratio is clamped to [0, 1]. A NaN ratio is
// a programmer error and panics.
func SplitHorzRatio[K Kind](r Rectangle[int, K], ratio float32) (Rectangle[int, K], Rectangle[int, K]) {
	if ratio != ratio { // NaN check without importing math
		panic("geometry: split ratio is NaN")
	}
	ratio = clampRatio(ratio)

	topHeight := int(float32(r.Size.Height) * ratio)
	bottomHeight := r.Size.Height - topHeight

	top := Rectangle[int, K]{
		Point: Point[int, K]{X: r.Point.X, Y: r.Point.Y},
		Size:  Size[int, K]{Width: r.Size.Width, Height: topHeight},
	}
	bottom := Rectangle[int, K]{
		Point: Point[int, K]{X: r.Point.X, Y: r.Point.Y + topHeight},
		Size:  Size[int, K]{Width: r.Size.Width, Height: bottomHeight},
	}
	return top, bottom
}

// SplitVertRatio splits r into (left, right) by ratio, the fraction of the
// original width given to left. ratio is clamped to [0, 1]. A NaN ratio is
// a programmer error and panics.
func SplitVertRatio[K Kind](r Rectangle[int, K], ratio float32) (Rectangle[int, K], Rectangle[int, K]) {
	if ratio != ratio {
		panic("geometry: split ratio is NaN")
	}
	ratio = clampRatio(ratio)

	leftWidth := int(float32(r.Size.Width) * ratio)
	rightWidth := r.Size.Width - leftWidth

	left := Rectangle[int, K]{
		Point: Point[int, K]{X: r.Point.X, Y: r.Point.Y},
		Size:  Size[int, K]{Width: leftWidth, Height: r.Size.Height},
	}
	right := Rectangle[int, K]{
		Point: Point[int, K]{X: r.Point.X + leftWidth, Y: r.Point.Y},
		Size:  Size[int, K]{Width: rightWidth, Height: r.Size.Height},
	}
	return left, right
}

// SplitAtHeight splits r horizontally at an absolute height, returning
// (top, bottom) where bottom has the given height.
func SplitAtHeight[N Scalar, K Kind](r Rectangle[N, K], height N) (Rectangle[N, K], Rectangle[N, K]) {
	top := Rectangle[N, K]{
		Point: Point[N, K]{X: r.Point.X, Y: r.Point.Y},
		Size:  Size[N, K]{Width: r.Size.Width, Height: r.Size.Height - height},
	}
	bottom := Rectangle[N, K]{
		Point: Point[N, K]{X: r.Point.X, Y: r.Point.Y + r.Size.Height - height},
		Size:  Size[N, K]{Width: r.Size.Width, Height: height},
	}
	return top, bottom
}

// SplitAtWidth splits r vertically at an absolute width, returning
// (left, right) where left has the given width.
func SplitAtWidth[N Scalar, K Kind](r Rectangle[N, K], width N) (Rectangle[N, K], Rectangle[N, K]) {
	left := Rectangle[N, K]{
		Point: Point[N, K]{X: r.Point.X, Y: r.Point.Y},
		Size:  Size[N, K]{Width: width, Height: r.Size.Height},
	}
	right := Rectangle[N, K]{
		Point: Point[N, K]{X: r.Point.X + width, Y: r.Point.Y},
		Size:  Size[N, K]{Width: r.Size.Width - width, Height: r.Size.Height},
	}
	return left, right
}
