// Package scale provides proportional downscaling for raster and SVG images.
package scale

import (
	"image/jpeg"

	"github.com/nfnt/resize"
)

// Result holds the outcome of a scaling request.
type Result struct {
	// Data is the final image bytes. When the request was refused or was
	// a passthrough, Data aliases the original bytes unchanged.
	Data []byte

	// Width and Height are the final intrinsic dimensions. For SVG they
	// can be zero when the document declares no usable size.
	Width  int
	Height int

	// Refused is true when the requested width would have upscaled the
	// image. The original bytes pass through and the caller is expected
	// to warn the user.
	Refused bool
}

// Options controls raster re-encoding during a downscale.
type Options struct {
	Filter      resize.InterpolationFunction
	JPEGQuality int
}

// DefaultOptions returns the default scaling options.
func DefaultOptions() Options {
	return Options{
		Filter:      resize.Lanczos3,
		JPEGQuality: jpeg.DefaultQuality,
	}
}
