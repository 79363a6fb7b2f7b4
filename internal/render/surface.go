// Package render draws images on the terminal. Every character cell shows
// two pixels stacked vertically: the upper half-block glyph in the top
// pixel's colour over a background in the bottom pixel's colour.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"pixview/internal/domain"
)

const halfBlock = "▀"

// maxCachedStyles bounds the style cache; photos can have far more distinct
// cell colours than pixel art
const maxCachedStyles = 4096

// Options configures a Surface
type Options struct {
	Light       string // hex colour of the light background
	Dark        string // hex colour of the dark background
	Background  domain.Background
	ScrollUnitX int // surface pixels per horizontal scroll unit
	ScrollUnitY int // surface pixels per vertical scroll unit
}

type cellKey struct {
	top, bottom color.NRGBA
}

// Surface is a terminal-backed pixel surface
type Surface struct {
	cols, rows   int
	light, dark  colorful.Color
	background   domain.Background
	unitX, unitY int

	frame *image.NRGBA
	view  string
	cells map[cellKey]lipgloss.Style
}

// NewSurface creates an empty surface
func NewSurface(opts Options) (*Surface, error) {
	light, err := colorful.Hex(opts.Light)
	if err != nil {
		return nil, fmt.Errorf("light background %q: %w", opts.Light, err)
	}
	dark, err := colorful.Hex(opts.Dark)
	if err != nil {
		return nil, fmt.Errorf("dark background %q: %w", opts.Dark, err)
	}

	s := &Surface{
		light:      light,
		dark:       dark,
		background: opts.Background,
		unitX:      max(opts.ScrollUnitX, 1),
		unitY:      max(opts.ScrollUnitY, 1),
		cells:      make(map[cellKey]lipgloss.Style),
	}
	s.clear()
	return s, nil
}

// SetSize resizes the surface to cols x rows cells. The surface is cleared;
// the next Render repaints it.
func (s *Surface) SetSize(cols, rows int) {
	s.cols, s.rows = max(cols, 0), max(rows, 0)
	s.clear()
}

// ViewportSize returns the surface size in pixels
func (s *Surface) ViewportSize() domain.Size {
	return domain.Size{Width: s.cols, Height: s.rows * 2}
}

// Background returns the active background
func (s *Surface) Background() domain.Background {
	return s.background
}

// ToggleBackground swaps light and dark and clears the surface
func (s *Surface) ToggleBackground() domain.Background {
	s.background = s.background.Toggle()
	s.clear()
	return s.background
}

// BackgroundColor returns the active background as a hex string
func (s *Surface) BackgroundColor() string {
	return s.canvasColor().Hex()
}

// Frame returns the last composed frame
func (s *Surface) Frame() *image.NRGBA {
	return s.frame
}

// View returns the last frame as terminal lines
func (s *Surface) View() string {
	return s.view
}

// Render draws img scaled to display, scrolled by offset scroll units. An
// image narrower or shorter than the surface is centred on that axis.
func (s *Surface) Render(img *domain.Image, display domain.SizeF, offset domain.Offset) {
	vp := s.ViewportSize()
	canvas := imaging.New(vp.Width, vp.Height, s.canvasColor())

	if img != nil && img.Pixels != nil && vp.Width > 0 && vp.Height > 0 {
		dw := max(int(math.Round(display.Width)), 1)
		dh := max(int(math.Round(display.Height)), 1)

		x0, originX, winW := window(offset.X*s.unitX, dw, vp.Width)
		y0, originY, winH := window(offset.Y*s.unitY, dh, vp.Height)

		win := sample(img.Pixels, x0, y0, winW, winH, dw, dh)
		canvas = imaging.Overlay(canvas, win, image.Pt(originX, originY), 1.0)
	}

	s.frame = canvas
	s.view = s.encode(canvas)
}

// window returns the first displayed pixel, where it lands on the surface
// and how many pixels are visible along one axis
func window(scroll, display, viewport int) (first, origin, length int) {
	if display <= viewport {
		return 0, (viewport - display) / 2, display
	}
	first = min(max(scroll, 0), display-viewport)
	return first, 0, viewport
}

// sample picks the nearest source pixel for every pixel of the visible
// window of src scaled to dw x dh
func sample(src *image.NRGBA, x0, y0, w, h, dw, dh int) *image.NRGBA {
	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		sy := min((y0+y)*sh/dh, sh-1)
		for x := 0; x < w; x++ {
			sx := min((x0+x)*sw/dw, sw-1)
			dst.SetNRGBA(x, y, src.NRGBAAt(b.Min.X+sx, b.Min.Y+sy))
		}
	}
	return dst
}

func (s *Surface) canvasColor() colorful.Color {
	if s.background == domain.BackgroundDark {
		return s.dark
	}
	return s.light
}

func (s *Surface) clear() {
	vp := s.ViewportSize()
	s.frame = imaging.New(vp.Width, vp.Height, s.canvasColor())
	s.view = s.encode(s.frame)
}

// encode turns a frame into rows of half-block cells. Runs of identical
// cells share one styled segment.
func (s *Surface) encode(frame *image.NRGBA) string {
	b := frame.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return ""
	}

	lines := make([]string, 0, b.Dy()/2)
	var line strings.Builder
	for y := 0; y < b.Dy(); y += 2 {
		line.Reset()
		run, count := cellKey{}, 0
		for x := 0; x < b.Dx(); x++ {
			key := cellKey{top: frame.NRGBAAt(x, y), bottom: frame.NRGBAAt(x, y+1)}
			if count > 0 && key != run {
				line.WriteString(s.style(run).Render(strings.Repeat(halfBlock, count)))
				count = 0
			}
			run = key
			count++
		}
		line.WriteString(s.style(run).Render(strings.Repeat(halfBlock, count)))
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

func (s *Surface) style(key cellKey) lipgloss.Style {
	if st, ok := s.cells[key]; ok {
		return st
	}
	if len(s.cells) >= maxCachedStyles {
		clear(s.cells)
	}
	st := lipgloss.NewStyle().
		Foreground(lipgloss.Color(hex(key.top))).
		Background(lipgloss.Color(hex(key.bottom)))
	s.cells[key] = st
	return st
}

func hex(c color.NRGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}
