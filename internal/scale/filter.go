package scale

import (
	"strings"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// ParseFilter maps a resampling filter name to its interpolation
// function. The empty string selects the default, lanczos3.
func ParseFilter(name string) (resize.InterpolationFunction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "lanczos3":
		return resize.Lanczos3, nil
	case "lanczos2":
		return resize.Lanczos2, nil
	case "mitchell":
		return resize.MitchellNetravali, nil
	case "bicubic":
		return resize.Bicubic, nil
	case "bilinear":
		return resize.Bilinear, nil
	case "nearest":
		return resize.NearestNeighbor, nil
	default:
		return resize.Lanczos3, errors.Errorf("unknown resample filter: %q", name)
	}
}

// FilterNames lists the accepted resample filter names.
func FilterNames() []string {
	return []string{"lanczos3", "lanczos2", "mitchell", "bicubic", "bilinear", "nearest"}
}
