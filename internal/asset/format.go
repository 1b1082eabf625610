// Package asset provides image loading and format detection for embedding.
package asset

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported image format.
type Format int

const (
	FormatUnknown Format = iota
	FormatPNG
	FormatJPEG
	FormatGIF
	FormatSVG
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatGIF:
		return "gif"
	case FormatSVG:
		return "svg"
	default:
		return "unknown"
	}
}

// MIME returns the MIME type used in the data URI for this format.
func (f Format) MIME() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatGIF:
		return "image/gif"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return ""
	}
}

// Raster reports whether the format is a raster (pixel) format.
func (f Format) Raster() bool {
	switch f {
	case FormatPNG, FormatJPEG, FormatGIF:
		return true
	default:
		return false
	}
}

// DetectFormat detects the image format from the file path.
func DetectFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		return FormatPNG
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".gif":
		return FormatGIF
	case ".svg":
		return FormatSVG
	default:
		return FormatUnknown
	}
}

// DetectFormatFromReader detects the format by reading magic bytes.
func DetectFormatFromReader(r io.ReaderAt) (Format, error) {
	// Read enough for magic numbers plus an SVG root element scan
	buf := make([]byte, 512)
	n, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return FormatUnknown, fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if n < 4 {
		return FormatUnknown, fmt.Errorf("file too small to detect format")
	}
	buf = buf[:n]

	// PNG signature
	if bytes.HasPrefix(buf, []byte("\x89PNG\r\n\x1a\n")) {
		return FormatPNG, nil
	}

	// JPEG SOI marker
	if bytes.HasPrefix(buf, []byte{0xFF, 0xD8, 0xFF}) {
		return FormatJPEG, nil
	}

	// GIF signature
	if bytes.HasPrefix(buf, []byte("GIF87a")) || bytes.HasPrefix(buf, []byte("GIF89a")) {
		return FormatGIF, nil
	}

	// SVG: XML text whose root element is <svg>. Tolerate a UTF-8 BOM,
	// leading whitespace, and XML declarations or comments before the root.
	if isSVGHead(buf) {
		return FormatSVG, nil
	}

	return FormatUnknown, nil
}

func isSVGHead(buf []byte) bool {
	head := bytes.TrimPrefix(buf, []byte("\xef\xbb\xbf"))
	head = bytes.TrimLeft(head, " \t\r\n")
	if len(head) == 0 || head[0] != '<' {
		return false
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}
