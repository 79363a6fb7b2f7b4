package viewport

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixview/internal/domain"
)

type fakeLoader struct {
	images map[string]domain.Size
	calls  int
}

func (f *fakeLoader) Load(path string) (*domain.Image, error) {
	f.calls++
	size, ok := f.images[path]
	if !ok {
		return nil, fmt.Errorf("load %s: %w", path, domain.ErrNotFound)
	}
	if size.Degenerate() {
		return nil, fmt.Errorf("load %s: %w", path, domain.ErrDecode)
	}
	return &domain.Image{Path: path, Format: "png", Width: size.Width, Height: size.Height}, nil
}

type renderCall struct {
	path    string
	display domain.SizeF
	offset  domain.Offset
}

type fakeDisplay struct {
	calls []renderCall
}

func (f *fakeDisplay) Render(img *domain.Image, display domain.SizeF, offset domain.Offset) {
	f.calls = append(f.calls, renderCall{path: img.Path, display: display, offset: offset})
}

func (f *fakeDisplay) last() renderCall {
	return f.calls[len(f.calls)-1]
}

type fakeNavigator struct {
	order []string
	err   error
}

func (f *fakeNavigator) index(current string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	for i, p := range f.order {
		if p == current {
			return i, nil
		}
	}
	return 0, domain.ErrNotFound
}

func (f *fakeNavigator) Next(current string) (string, bool, error) {
	i, err := f.index(current)
	if err != nil || i+1 >= len(f.order) {
		return "", false, err
	}
	return f.order[i+1], true, nil
}

func (f *fakeNavigator) Previous(current string) (string, bool, error) {
	i, err := f.index(current)
	if err != nil || i == 0 {
		return "", false, err
	}
	return f.order[i-1], true, nil
}

func (f *fakeNavigator) Adjacent(current string) (bool, bool, error) {
	i, err := f.index(current)
	if err != nil {
		return false, false, err
	}
	return i > 0, i+1 < len(f.order), nil
}

func setupState(t *testing.T) (*State, *fakeLoader, *fakeDisplay) {
	t.Helper()
	loader := &fakeLoader{images: map[string]domain.Size{
		"a.png":   {Width: 100, Height: 50},
		"b.png":   {Width: 400, Height: 400},
		"c.png":   {Width: 50, Height: 50},
		"bad.png": {},
	}}
	display := &fakeDisplay{}
	nav := &fakeNavigator{order: []string{"a.png", "b.png", "c.png"}}
	s := NewState(loader, display, nav, Options{ZoomStep: 0.1, ScrollUnitX: 1, ScrollUnitY: 2})
	return s, loader, display
}

func TestStateLoadFitsImage(t *testing.T) {
	s, _, display := setupState(t)
	s.OnViewportResized(domain.Size{Width: 800, Height: 600})
	assert.Empty(t, display.calls, "nothing to render without an image")

	require.NoError(t, s.LoadImage("a.png"))
	assert.Equal(t, domain.SizeF{Width: 800, Height: 400}, s.DisplaySize())
	assert.Equal(t, "a.png", s.Path())
	assert.Equal(t, MinZoom, s.ZoomFactor())
	assert.Equal(t, domain.Offset{}, s.ScrollOffset())
	assert.Equal(t, domain.Offset{}, s.ScrollMax())

	require.Len(t, display.calls, 1)
	assert.Equal(t, renderCall{path: "a.png", display: domain.SizeF{Width: 800, Height: 400}}, display.last())
}

func TestStateLoadFailureKeepsState(t *testing.T) {
	s, _, display := setupState(t)
	s.OnViewportResized(domain.Size{Width: 100, Height: 100})
	require.NoError(t, s.LoadImage("b.png"))
	s.OnWheel(120, 120)
	s.OnDragBegin(domain.Point{X: 50, Y: 50}, true)
	s.OnDragMove(domain.Point{X: 40, Y: 40}, true)
	s.OnDragEnd()

	before := len(display.calls)
	offset := s.ScrollOffset()

	err := s.LoadImage("missing.png")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = s.LoadImage("bad.png")
	assert.ErrorIs(t, err, domain.ErrDecode)

	assert.Equal(t, "b.png", s.Path())
	assert.InDelta(t, 1.1, s.ZoomFactor(), 1e-9)
	assert.Equal(t, offset, s.ScrollOffset())
	assert.Len(t, display.calls, before)
}

func TestStateLoadResetsZoomAndScroll(t *testing.T) {
	s, _, _ := setupState(t)
	s.OnViewportResized(domain.Size{Width: 100, Height: 100})
	require.NoError(t, s.LoadImage("b.png"))
	require.NoError(t, s.ZoomToActual())
	s.OnDragBegin(domain.Point{X: 50, Y: 50}, true)
	s.OnDragMove(domain.Point{X: 0, Y: 0}, true)
	require.NotEqual(t, domain.Offset{}, s.ScrollOffset())

	require.NoError(t, s.LoadImage("a.png"))
	assert.Equal(t, MinZoom, s.ZoomFactor())
	assert.Equal(t, domain.Offset{}, s.ScrollOffset())
	assert.False(t, s.Dragging())
}

func TestStateWheelZoomsAndRescales(t *testing.T) {
	s, _, display := setupState(t)
	s.OnViewportResized(domain.Size{Width: 100, Height: 100})

	assert.Equal(t, MinZoom, s.OnWheel(120, 120), "no image, no zoom")
	assert.Empty(t, display.calls)

	require.NoError(t, s.LoadImage("b.png"))
	assert.InDelta(t, 2.0, s.OnWheel(1200, 120), 1e-9)
	assert.InDelta(t, 200.0, s.DisplaySize().Width, 1e-9)
	assert.Equal(t, domain.Offset{X: 100, Y: 50}, s.ScrollMax())

	s.OnDragBegin(domain.Point{X: 100, Y: 100}, true)
	s.OnDragMove(domain.Point{X: 50, Y: 50}, true)
	s.OnDragEnd()
	assert.Equal(t, domain.Offset{X: 50, Y: 25}, s.ScrollOffset())

	// zooming out keeps the same fraction of the range
	s.OnWheel(-600, 120)
	assert.InDelta(t, 1.5, s.ZoomFactor(), 1e-9)
	assert.Equal(t, domain.Offset{X: 50, Y: 25}, s.ScrollMax())
	assert.Equal(t, domain.Offset{X: 25, Y: 13}, s.ScrollOffset())
	assert.Equal(t, domain.Offset{X: 25, Y: 13}, display.last().offset)
}

func TestStateResizeRefits(t *testing.T) {
	s, _, display := setupState(t)
	s.OnViewportResized(domain.Size{Width: 100, Height: 100})
	require.NoError(t, s.LoadImage("a.png"))
	assert.Equal(t, domain.SizeF{Width: 100, Height: 50}, s.DisplaySize())

	s.OnViewportResized(domain.Size{Width: 400, Height: 100})
	assert.Equal(t, domain.SizeF{Width: 200, Height: 100}, s.DisplaySize())
	assert.Equal(t, domain.SizeF{Width: 200, Height: 100}, display.last().display)
	assert.Equal(t, domain.Size{Width: 400, Height: 100}, s.Viewport())
}

func TestStateZoomToActualAndFit(t *testing.T) {
	s, _, _ := setupState(t)
	assert.ErrorIs(t, s.ZoomToActual(), domain.ErrNoImage)

	s.OnViewportResized(domain.Size{Width: 100, Height: 100})
	require.NoError(t, s.LoadImage("b.png"))
	require.NoError(t, s.ZoomToActual())
	assert.InDelta(t, 4.0, s.ZoomFactor(), 1e-9)
	assert.Equal(t, domain.SizeF{Width: 400, Height: 400}, s.DisplaySize())
	assert.Equal(t, domain.Offset{X: 300, Y: 150}, s.ScrollMax())

	s.ZoomToFit()
	assert.Equal(t, MinZoom, s.ZoomFactor())
	assert.Equal(t, domain.Offset{}, s.ScrollMax())

	// a small image never zooms below fit
	require.NoError(t, s.LoadImage("c.png"))
	require.NoError(t, s.ZoomToActual())
	assert.Equal(t, MinZoom, s.ZoomFactor())
}

func TestStateZoomToFitIdempotent(t *testing.T) {
	s, _, display := setupState(t)
	s.OnViewportResized(domain.Size{Width: 100, Height: 100})
	require.NoError(t, s.LoadImage("b.png"))

	s.OnWheel(10, 1)
	s.OnDragBegin(domain.Point{X: 50, Y: 50}, true)
	s.OnDragMove(domain.Point{}, true)
	s.OnDragEnd()
	require.Equal(t, domain.Offset{X: 50, Y: 25}, s.ScrollOffset())

	s.ZoomToFit()
	size, offset, call := s.DisplaySize(), s.ScrollOffset(), display.last()

	s.ZoomToFit()
	assert.Equal(t, size, s.DisplaySize())
	assert.Equal(t, offset, s.ScrollOffset())
	assert.Equal(t, call, display.last())
	assert.Equal(t, domain.SizeF{Width: 100, Height: 100}, s.DisplaySize())
	assert.Equal(t, domain.Offset{}, s.ScrollOffset())
}

func TestStateDragNeedsButton(t *testing.T) {
	s, _, display := setupState(t)
	s.OnViewportResized(domain.Size{Width: 100, Height: 100})
	require.NoError(t, s.LoadImage("b.png"))
	require.NoError(t, s.ZoomToActual())
	before := len(display.calls)

	s.OnDragBegin(domain.Point{X: 10, Y: 10}, false)
	assert.Equal(t, domain.Offset{}, s.OnDragMove(domain.Point{}, true))
	assert.Len(t, display.calls, before, "ignored motion does not redraw")

	s.OnDragBegin(domain.Point{X: 10, Y: 10}, true)
	assert.True(t, s.Dragging())
	assert.Equal(t, domain.Offset{X: 10, Y: 5}, s.OnDragMove(domain.Point{}, true))
	assert.Equal(t, domain.Point{X: 10, Y: 10}, s.ScrollPixels())
	s.OnDragEnd()
	assert.False(t, s.Dragging())
}

func TestStateNavigate(t *testing.T) {
	s, _, _ := setupState(t)
	_, _, err := s.Navigate(domain.DirectionNext)
	assert.ErrorIs(t, err, domain.ErrNoImage)

	prev, next, err := s.Adjacent()
	require.NoError(t, err)
	assert.False(t, prev)
	assert.False(t, next)

	s.OnViewportResized(domain.Size{Width: 100, Height: 100})
	require.NoError(t, s.LoadImage("a.png"))

	target, ok, err := s.Navigate(domain.DirectionPrevious)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, target)
	assert.Equal(t, "a.png", s.Path())

	target, ok, err = s.Navigate(domain.DirectionNext)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b.png", target)
	assert.Equal(t, "b.png", s.Path())

	prev, next, err = s.Adjacent()
	require.NoError(t, err)
	assert.True(t, prev)
	assert.True(t, next)

	_, _, err = s.Navigate(domain.Direction("sideways"))
	assert.Error(t, err)
}

func TestStateNavigateErrors(t *testing.T) {
	loader := &fakeLoader{images: map[string]domain.Size{"a.png": {Width: 10, Height: 10}}}
	nav := &fakeNavigator{order: []string{"a.png", "gone.png"}}
	s := NewState(loader, nil, nav, Options{})
	require.NoError(t, s.LoadImage("a.png"))

	_, ok, err := s.Navigate(domain.DirectionNext)
	assert.False(t, ok)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "a.png", s.Path())

	nav.err = errors.New("listing failed")
	_, _, err = s.Navigate(domain.DirectionNext)
	assert.EqualError(t, err, "listing failed")
}

func TestStateRedraw(t *testing.T) {
	s, _, display := setupState(t)
	s.Redraw()
	assert.Empty(t, display.calls)

	s.OnViewportResized(domain.Size{Width: 100, Height: 100})
	require.NoError(t, s.LoadImage("c.png"))
	s.Redraw()
	require.Len(t, display.calls, 2)
	assert.Equal(t, display.calls[0], display.calls[1])
}
