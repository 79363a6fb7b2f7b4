package viewport

import (
	"fmt"

	"pixview/internal/domain"
)

// Loader decodes an image file
type Loader interface {
	Load(path string) (*domain.Image, error)
}

// Display draws the visible part of an image scaled to display, scrolled by offset
type Display interface {
	Render(img *domain.Image, display domain.SizeF, offset domain.Offset)
}

// Navigator finds sibling images of a path
type Navigator interface {
	Next(current string) (string, bool, error)
	Previous(current string) (string, bool, error)
	Adjacent(current string) (hasPrev, hasNext bool, err error)
}

// Options tunes a State
type Options struct {
	ZoomStep    float64
	ScrollUnitX int
	ScrollUnitY int
}

// State is the viewer's single owned transform state. It is not safe for
// concurrent use; all calls are expected from one event loop.
type State struct {
	loader  Loader
	display Display
	nav     Navigator

	image    *domain.Image
	path     string
	viewport domain.Size
	size     domain.SizeF

	zoom   *Zoom
	scroll *Scroll
}

// NewState creates an empty viewport with no image
func NewState(loader Loader, display Display, nav Navigator, opts Options) *State {
	return &State{
		loader:  loader,
		display: display,
		nav:     nav,
		zoom:    NewZoom(opts.ZoomStep),
		scroll:  NewScroll(opts.ScrollUnitX, opts.ScrollUnitY),
	}
}

// LoadImage replaces the current image. On failure the previous image, zoom
// and scroll position are kept.
func (s *State) LoadImage(path string) error {
	img, err := s.loader.Load(path)
	if err != nil {
		return err
	}

	s.image = img
	s.path = path
	s.zoom.Reset()
	s.scroll.Reset()
	s.refresh()
	return nil
}

// OnViewportResized records the new surface size and re-fits the image
func (s *State) OnViewportResized(size domain.Size) {
	s.viewport = size
	s.refresh()
}

// OnWheel zooms by wheel rotation; see Zoom.ApplyWheel
func (s *State) OnWheel(rotation, wheelStep int) float64 {
	if s.image == nil {
		return s.zoom.Factor()
	}
	s.zoom.ApplyWheel(rotation, wheelStep)
	s.refresh()
	return s.zoom.Factor()
}

// OnDragBegin starts a pan at pos if the primary button is held
func (s *State) OnDragBegin(pos domain.Point, primaryHeld bool) {
	s.scroll.BeginDrag(pos, primaryHeld)
}

// OnDragMove pans to follow the pointer
func (s *State) OnDragMove(pos domain.Point, primaryHeld bool) domain.Offset {
	if !s.scroll.Dragging() {
		return s.scroll.Offset()
	}
	s.scroll.UpdateDrag(pos, primaryHeld)
	s.refresh()
	return s.scroll.Offset()
}

// OnDragEnd finishes a pan
func (s *State) OnDragEnd() {
	s.scroll.EndDrag()
}

// ZoomToFit returns to fit scale
func (s *State) ZoomToFit() {
	s.zoom.Reset()
	s.refresh()
}

// ZoomToActual zooms so one image pixel covers one surface pixel. Images
// smaller than the viewport stay at fit scale.
func (s *State) ZoomToActual() error {
	if s.image == nil {
		return domain.ErrNoImage
	}
	fit := Fit(s.imageSize(), s.viewport)
	s.zoom.Set(float64(s.image.Width) / fit.Width)
	s.refresh()
	return nil
}

// Navigate loads the sibling image in direction. It returns ok=false and no
// error at the first or last image.
func (s *State) Navigate(dir domain.Direction) (string, bool, error) {
	if s.path == "" {
		return "", false, domain.ErrNoImage
	}

	var (
		target string
		ok     bool
		err    error
	)
	switch dir {
	case domain.DirectionNext:
		target, ok, err = s.nav.Next(s.path)
	case domain.DirectionPrevious:
		target, ok, err = s.nav.Previous(s.path)
	default:
		return "", false, fmt.Errorf("unknown direction %q", dir)
	}
	if err != nil || !ok {
		return "", false, err
	}

	if err := s.LoadImage(target); err != nil {
		return "", false, err
	}
	return target, true, nil
}

// Adjacent reports whether previous and next images exist
func (s *State) Adjacent() (hasPrev, hasNext bool, err error) {
	if s.path == "" {
		return false, false, nil
	}
	return s.nav.Adjacent(s.path)
}

// Redraw re-runs the render pipeline without changing any state
func (s *State) Redraw() {
	s.refresh()
}

// ScrollOffset returns the scroll position in scroll units
func (s *State) ScrollOffset() domain.Offset {
	return s.scroll.Offset()
}

// ScrollMax returns the largest valid scroll position
func (s *State) ScrollMax() domain.Offset {
	return s.scroll.Max()
}

// ScrollPixels returns the scroll position in surface pixels
func (s *State) ScrollPixels() domain.Point {
	return s.scroll.Pixels()
}

// DisplaySize returns the displayed image size, zero without an image
func (s *State) DisplaySize() domain.SizeF {
	return s.size
}

// ZoomFactor returns the current zoom
func (s *State) ZoomFactor() float64 {
	return s.zoom.Factor()
}

// Image returns the current image or nil
func (s *State) Image() *domain.Image {
	return s.image
}

// Path returns the current image path
func (s *State) Path() string {
	return s.path
}

// Viewport returns the current surface size
func (s *State) Viewport() domain.Size {
	return s.viewport
}

// Dragging reports whether a pan is in progress
func (s *State) Dragging() bool {
	return s.scroll.Dragging()
}

func (s *State) imageSize() domain.Size {
	return domain.Size{Width: s.image.Width, Height: s.image.Height}
}

// refresh is the one pipeline every mutation ends with: recompute the
// displayed size, rescale the scroll range, render.
func (s *State) refresh() {
	if s.image == nil {
		return
	}
	s.size = Fit(s.imageSize(), s.viewport).Scale(s.zoom.Factor())
	s.scroll.Rescale(s.size, s.viewport)
	if s.display != nil {
		s.display.Render(s.image, s.size, s.scroll.Offset())
	}
}
