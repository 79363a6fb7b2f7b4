package viewport

import (
	"math"

	"pixview/internal/domain"
)

// Scroll holds the scroll offset and the drag anchor. Offsets are measured in
// scroll units; one unit spans unitX x unitY surface pixels.
type Scroll struct {
	unitX, unitY int

	offset domain.Offset
	max    domain.Offset

	dragging     bool
	anchor       domain.Point
	anchorOffset domain.Offset
}

// NewScroll creates a scroll state at the origin. Units below 1 become 1.
func NewScroll(unitX, unitY int) *Scroll {
	return &Scroll{unitX: atLeastOne(unitX), unitY: atLeastOne(unitY)}
}

// Offset returns the current scroll offset
func (s *Scroll) Offset() domain.Offset {
	return s.offset
}

// Max returns the largest valid offset on each axis
func (s *Scroll) Max() domain.Offset {
	return s.max
}

// Unit returns the surface pixels per scroll unit on each axis
func (s *Scroll) Unit() (int, int) {
	return s.unitX, s.unitY
}

// Pixels converts the scroll offset to surface pixels
func (s *Scroll) Pixels() domain.Point {
	return domain.Point{X: s.offset.X * s.unitX, Y: s.offset.Y * s.unitY}
}

// Dragging reports whether a drag is in progress
func (s *Scroll) Dragging() bool {
	return s.dragging
}

// BeginDrag anchors a drag at pos. It is ignored unless the primary button
// is held.
func (s *Scroll) BeginDrag(pos domain.Point, primaryHeld bool) bool {
	if !primaryHeld {
		return false
	}
	s.dragging = true
	s.anchor = pos
	s.anchorOffset = s.offset
	return true
}

// UpdateDrag moves the offset against the pointer motion since BeginDrag:
// dragging right moves the content right, so the offset decreases. It is a
// no-op unless a drag is active and the primary button is still held.
func (s *Scroll) UpdateDrag(pos domain.Point, primaryHeld bool) domain.Offset {
	if !s.dragging || !primaryHeld {
		return s.offset
	}

	// Sub-unit motion truncates toward zero: a drag moves no unit in
	// either direction until it covers a whole one.
	delta := pos.Sub(s.anchor)
	s.offset = s.clamp(domain.Offset{
		X: s.anchorOffset.X - delta.X/s.unitX,
		Y: s.anchorOffset.Y - delta.Y/s.unitY,
	})
	return s.offset
}

// EndDrag drops the anchor; motion is ignored until the next BeginDrag
func (s *Scroll) EndDrag() {
	s.dragging = false
	s.anchor = domain.Point{}
	s.anchorOffset = domain.Offset{}
}

// Rescale recomputes the scroll range for a new displayed size or viewport
// and keeps the offset at the same fraction of the range. An axis whose
// previous range was empty restarts at 0.
func (s *Scroll) Rescale(display domain.SizeF, vp domain.Size) domain.Offset {
	newMax := domain.Offset{
		X: maxScroll(display.Width, vp.Width, s.unitX),
		Y: maxScroll(display.Height, vp.Height, s.unitY),
	}

	s.offset = domain.Offset{
		X: rescaleAxis(s.offset.X, s.max.X, newMax.X),
		Y: rescaleAxis(s.offset.Y, s.max.Y, newMax.Y),
	}
	if s.dragging {
		s.anchorOffset = domain.Offset{
			X: rescaleAxis(s.anchorOffset.X, s.max.X, newMax.X),
			Y: rescaleAxis(s.anchorOffset.Y, s.max.Y, newMax.Y),
		}
	}
	s.max = newMax

	return s.offset
}

// Reset returns to the origin with an empty range and no drag
func (s *Scroll) Reset() {
	s.offset = domain.Offset{}
	s.max = domain.Offset{}
	s.EndDrag()
}

func (s *Scroll) clamp(o domain.Offset) domain.Offset {
	return domain.Offset{
		X: clampInt(o.X, 0, s.max.X),
		Y: clampInt(o.Y, 0, s.max.Y),
	}
}

// maxScroll is the number of units needed to bring the far edge of the
// displayed image into view
func maxScroll(display float64, viewport, unit int) int {
	excess := int(math.Round(display)) - viewport
	if excess <= 0 {
		return 0
	}
	return (excess + unit - 1) / unit
}

func rescaleAxis(offset, oldMax, newMax int) int {
	if oldMax <= 0 || newMax <= 0 {
		return 0
	}
	v := int(math.Round(float64(offset) * float64(newMax) / float64(oldMax)))
	return clampInt(v, 0, newMax)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
