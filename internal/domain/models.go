package domain

import (
	"image"
)

// Image is a decoded raster image. It is never mutated after load;
// a new load replaces it wholesale.
type Image struct {
	Path   string
	Format string // sniffed format, e.g. "png"
	Width  int
	Height int
	Pixels *image.NRGBA
}

// Size is an integer width/height pair (image or viewport dimensions)
type Size struct {
	Width  int
	Height int
}

// Degenerate reports whether either dimension is zero or negative
func (s Size) Degenerate() bool {
	return s.Width <= 0 || s.Height <= 0
}

// SizeF is a real-valued size, used for the displayed (scaled) image size
type SizeF struct {
	Width  float64
	Height float64
}

// Scale returns the size multiplied uniformly by f
func (s SizeF) Scale(f float64) SizeF {
	return SizeF{Width: s.Width * f, Height: s.Height * f}
}

// Point is a pointer position on the display surface
type Point struct {
	X int
	Y int
}

// Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Offset is a scroll position measured in scroll units
type Offset struct {
	X int
	Y int
}

// Direction selects a sibling image relative to the current one
type Direction string

const (
	DirectionNext     Direction = "next"
	DirectionPrevious Direction = "previous"
)

// Background is the canvas colour scheme behind the image
type Background int

const (
	BackgroundLight Background = iota
	BackgroundDark
)

// String returns the background name shown in the UI
func (b Background) String() string {
	if b == BackgroundDark {
		return "dark"
	}
	return "light"
}

// Toggle returns the other background
func (b Background) Toggle() Background {
	if b == BackgroundDark {
		return BackgroundLight
	}
	return BackgroundDark
}
