package asset

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Sentinel errors returned by Load. Callers classify with errors.Is.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrCorruptImage      = errors.New("corrupt image")
)

// Asset is a single image file loaded into memory.
type Asset struct {
	Path   string
	Format Format
	Data   []byte

	// Width and Height are the intrinsic pixel dimensions. For SVG they
	// come from the root element's width/height attributes or viewBox
	// and are zero when the document declares neither.
	Width  int
	Height int
}

// Stem returns the file's base name without its extension, used as the
// default alt text.
func (a *Asset) Stem() string {
	base := filepath.Base(a.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load reads and classifies the image file at path.
//
// Classification prefers the file extension; files without a recognized
// extension fall back to magic-byte sniffing. Raster files whose decoded
// content disagrees with the classified format are rejected.
func Load(path string) (*Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	format := DetectFormat(path)
	if format == FormatUnknown {
		format, err = DetectFormatFromReader(f)
		if err != nil || format == FormatUnknown {
			return nil, fmt.Errorf("%w: %q (supported: .png, .jpg, .jpeg, .gif, .svg)",
				ErrUnsupportedFormat, strings.ToLower(filepath.Ext(path)))
		}
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	a := &Asset{Path: path, Format: format, Data: data}

	if format == FormatSVG {
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("%w: SVG content is not valid UTF-8", ErrCorruptImage)
		}
		a.Width, a.Height = ProbeSVG(data).PixelSize()
		return a, nil
	}

	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptImage, err)
	}
	if name != format.String() {
		return nil, fmt.Errorf("%w: file has a %s extension but contains %s data",
			ErrUnsupportedFormat, format, name)
	}
	a.Width = cfg.Width
	a.Height = cfg.Height
	return a, nil
}
