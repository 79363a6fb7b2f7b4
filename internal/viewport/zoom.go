package viewport

// MinZoom is the fit-to-viewport zoom factor; the zoom never goes below it.
const MinZoom = 1.0

// DefaultZoomStep is the zoom change per wheel notch
const DefaultZoomStep = 0.1

// Zoom holds the zoom factor applied on top of the fitted size
type Zoom struct {
	factor float64
	step   float64
}

// NewZoom creates a zoom at fit scale. A non-positive step selects
// DefaultZoomStep.
func NewZoom(step float64) *Zoom {
	if step <= 0 {
		step = DefaultZoomStep
	}
	return &Zoom{factor: MinZoom, step: step}
}

// Factor returns the current zoom factor
func (z *Zoom) Factor() float64 {
	return z.factor
}

// ApplyWheel changes the zoom by step*rotation/wheelStep. Positive rotation
// zooms in. A non-positive wheelStep leaves the zoom unchanged.
func (z *Zoom) ApplyWheel(rotation, wheelStep int) float64 {
	if wheelStep <= 0 {
		return z.factor
	}
	delta := z.step * float64(rotation) / float64(wheelStep)
	z.Set(z.factor + delta)
	return z.factor
}

// Set sets the zoom factor, clamped to MinZoom
func (z *Zoom) Set(factor float64) {
	// NaN fails every comparison, so test for the valid range instead
	if !(factor >= MinZoom) {
		factor = MinZoom
	}
	z.factor = factor
}

// Reset returns to fit scale
func (z *Zoom) Reset() {
	z.factor = MinZoom
}
