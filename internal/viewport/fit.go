// Package viewport is the transform engine of the viewer: it derives the
// displayed image size and the scroll position from the viewport size, the
// zoom factor and pointer drags, and keeps them consistent.
package viewport

import (
	"fmt"

	"pixview/internal/domain"
)

// Fit returns the largest size with the image's aspect ratio that is fully
// contained in the viewport ("contain" fit). Zero or negative dimensions are
// treated as 1 so the result is always defined.
func Fit(img, vp domain.Size) domain.SizeF {
	iw, ih := float64(atLeastOne(img.Width)), float64(atLeastOne(img.Height))
	vw, vh := float64(atLeastOne(vp.Width)), float64(atLeastOne(vp.Height))

	aspect := iw / ih

	var w, h float64
	if vw*aspect < vh {
		w, h = vw, vw/aspect
	} else {
		w, h = vh*aspect, vh
	}

	// The branch above can overshoot one axis; shrink back inside the
	// viewport without changing the aspect ratio.
	if w > vw {
		h = h * vw / w
		w = vw
	}
	if h > vh {
		w = w * vh / h
		h = vh
	}

	return domain.SizeF{Width: w, Height: h}
}

// FitChecked is Fit that also reports degenerate input
func FitChecked(img, vp domain.Size) (domain.SizeF, error) {
	size := Fit(img, vp)
	if img.Degenerate() {
		return size, fmt.Errorf("image %dx%d: %w", img.Width, img.Height, domain.ErrDegenerateGeometry)
	}
	if vp.Degenerate() {
		return size, fmt.Errorf("viewport %dx%d: %w", vp.Width, vp.Height, domain.ErrDegenerateGeometry)
	}
	return size, nil
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
