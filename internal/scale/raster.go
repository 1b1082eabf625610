package scale

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"github.com/roboco-io/md-img-uri/internal/asset"
)

// Raster downscales a raster asset to maxWidth pixels, preserving the
// aspect ratio, and re-encodes it in its original format. Upscaling is
// always refused: when maxWidth is greater than or equal to the source
// width the original bytes pass through unchanged with Refused set.
//
// Animated GIFs collapse to their first frame.
func Raster(a *asset.Asset, maxWidth int, opts Options) (*Result, error) {
	if maxWidth <= 0 {
		return nil, errors.Errorf("max width must be positive, got %d", maxWidth)
	}
	if !a.Format.Raster() {
		return nil, errors.Errorf("cannot raster-scale %s data", a.Format)
	}
	if maxWidth >= a.Width {
		return &Result{Data: a.Data, Width: a.Width, Height: a.Height, Refused: true}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(a.Data))
	if err != nil {
		return nil, errors.Wrap(err, "image decoding failed")
	}

	height := int(math.Round(float64(a.Height) * float64(maxWidth) / float64(a.Width)))
	if height < 1 {
		height = 1
	}
	resized := resize.Resize(uint(maxWidth), uint(height), img, opts.Filter)

	var buf bytes.Buffer
	switch a.Format {
	case asset.FormatPNG:
		err = png.Encode(&buf, resized)
	case asset.FormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 {
			quality = jpeg.DefaultQuality
		}
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality})
	case asset.FormatGIF:
		err = gif.Encode(&buf, resized, nil)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s encoding failed", a.Format)
	}

	return &Result{Data: buf.Bytes(), Width: maxWidth, Height: height}, nil
}
