package scale

import (
	"bytes"
	"image"
	"image/color/palette"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboco-io/md-img-uri/internal/asset"
)

func newRasterAsset(t *testing.T, format asset.Format, width, height int) *asset.Asset {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	var err error
	switch format {
	case asset.FormatPNG:
		err = png.Encode(&buf, img)
	case asset.FormatJPEG:
		err = jpeg.Encode(&buf, img, nil)
	case asset.FormatGIF:
		err = gif.Encode(&buf, img, nil)
	default:
		t.Fatalf("not a raster format: %v", format)
	}
	require.NoError(t, err)

	return &asset.Asset{
		Path:   "test." + format.String(),
		Format: format,
		Data:   buf.Bytes(),
		Width:  width,
		Height: height,
	}
}

func decodeDims(t *testing.T, data []byte) (formatName string, width, height int) {
	t.Helper()
	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return name, cfg.Width, cfg.Height
}

func TestRaster_Downscale(t *testing.T) {
	tests := []struct {
		name   string
		format asset.Format
	}{
		{name: "png", format: asset.FormatPNG},
		{name: "jpeg", format: asset.FormatJPEG},
		{name: "gif", format: asset.FormatGIF},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := newRasterAsset(t, tc.format, 200, 100)

			res, err := Raster(a, 100, DefaultOptions())
			require.NoError(t, err)

			assert.False(t, res.Refused)
			assert.Equal(t, 100, res.Width)
			assert.Equal(t, 50, res.Height)

			name, w, h := decodeDims(t, res.Data)
			assert.Equal(t, tc.format.String(), name)
			assert.Equal(t, 100, w)
			assert.Equal(t, 50, h)
		})
	}
}

func TestRaster_RoundsTargetHeight(t *testing.T) {
	a := newRasterAsset(t, asset.FormatPNG, 200, 100)

	// 100 * 75 / 200 = 37.5, rounds to 38.
	res, err := Raster(a, 75, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 38, res.Height)
	_, _, h := decodeDims(t, res.Data)
	assert.Equal(t, 38, h)
}

func TestRaster_HeightNeverCollapsesToZero(t *testing.T) {
	a := newRasterAsset(t, asset.FormatPNG, 100, 1)

	res, err := Raster(a, 30, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Height)
}

func TestRaster_AnimatedGIFCollapsesToFirstFrame(t *testing.T) {
	// Two frames: black first, white second. The scaled output must keep
	// only the first.
	anim := &gif.GIF{}
	for i := 0; i < 2; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, 200, 100), palette.Plan9)
		if i == 1 {
			for p := range frame.Pix {
				frame.Pix[p] = 255
			}
		}
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 10)
	}
	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, anim))

	a := &asset.Asset{
		Path:   "anim.gif",
		Format: asset.FormatGIF,
		Data:   buf.Bytes(),
		Width:  200,
		Height: 100,
	}

	res, err := Raster(a, 100, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, res.Refused)

	decoded, err := gif.DecodeAll(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Len(t, decoded.Image, 1, "animation must collapse to a single frame")

	bounds := decoded.Image[0].Bounds()
	assert.Equal(t, 100, bounds.Dx())
	assert.Equal(t, 50, bounds.Dy())

	r, g, b, _ := decoded.Image[0].At(0, 0).RGBA()
	assert.Zero(t, r+g+b, "surviving frame must be the black first one")
}

func TestRaster_RefusesUpscale(t *testing.T) {
	a := newRasterAsset(t, asset.FormatPNG, 10, 10)

	res, err := Raster(a, 100, DefaultOptions())
	require.NoError(t, err)

	assert.True(t, res.Refused)
	assert.Equal(t, a.Data, res.Data)
	assert.Equal(t, 10, res.Width)
	assert.Equal(t, 10, res.Height)
}

func TestRaster_RefusesEqualWidth(t *testing.T) {
	a := newRasterAsset(t, asset.FormatPNG, 64, 32)

	res, err := Raster(a, 64, DefaultOptions())
	require.NoError(t, err)

	assert.True(t, res.Refused)
	assert.Equal(t, a.Data, res.Data)
}

func TestRaster_InvalidMaxWidth(t *testing.T) {
	a := newRasterAsset(t, asset.FormatPNG, 10, 10)

	for _, w := range []int{0, -5} {
		_, err := Raster(a, w, DefaultOptions())
		assert.Error(t, err, "max width %d", w)
	}
}

func TestRaster_RejectsVectorAsset(t *testing.T) {
	a := &asset.Asset{
		Path:   "logo.svg",
		Format: asset.FormatSVG,
		Data:   []byte(`<svg width="100"/>`),
		Width:  100,
	}

	_, err := Raster(a, 50, DefaultOptions())
	assert.Error(t, err)
}

func TestRaster_CorruptData(t *testing.T) {
	a := &asset.Asset{
		Path:   "broken.png",
		Format: asset.FormatPNG,
		Data:   []byte("not an image at all"),
		Width:  100,
		Height: 100,
	}

	_, err := Raster(a, 50, DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image decoding failed")
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "default on empty", input: "", wantErr: false},
		{name: "lanczos3", input: "lanczos3", wantErr: false},
		{name: "case insensitive", input: "Lanczos3", wantErr: false},
		{name: "nearest", input: "nearest", wantErr: false},
		{name: "unknown", input: "gaussian", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFilter(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseFilter_AcceptsAllListedNames(t *testing.T) {
	for _, name := range FilterNames() {
		_, err := ParseFilter(name)
		assert.NoError(t, err, "filter %q", name)
	}
}
