package pipeline

import (
	"image"

	"github.com/disintegration/imaging"
)

// Fit reduces img so that neither side exceeds constraint, preserving aspect
// ratio. Images already inside the box are returned unchanged.
func Fit(img image.Image, constraint int) image.Image {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 || constraint <= 0 {
		return img
	}
	if w <= constraint && h <= constraint {
		return img
	}

	nw, nh := calculateDimensions(w, h, constraint)
	return imaging.Resize(img, nw, nh, imaging.Lanczos)
}

// calculateDimensions computes the width/height that fit inside a
// maxDim x maxDim box with the larger side equal to maxDim.
func calculateDimensions(origWidth, origHeight, maxDim int) (int, int) {
	if origWidth <= 0 || origHeight <= 0 || maxDim <= 0 {
		return origWidth, origHeight
	}
	if origWidth <= maxDim && origHeight <= maxDim {
		return origWidth, origHeight
	}
	if origWidth >= origHeight {
		newH := (origHeight*maxDim + origWidth/2) / origWidth
		if newH < 1 {
			newH = 1
		}
		return maxDim, newH
	}
	newW := (origWidth*maxDim + origHeight/2) / origHeight
	if newW < 1 {
		newW = 1
	}
	return newW, maxDim
}
