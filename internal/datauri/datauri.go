// Package datauri encodes image bytes into data URIs for Markdown embedding.
package datauri

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Encoding identifies how payload bytes are represented inside the URI.
type Encoding string

const (
	// EncodingBase64 is used for raster formats.
	EncodingBase64 Encoding = "base64"
	// EncodingPercent is used for SVG text.
	EncodingPercent Encoding = "percent"
)

// Payload is an encoded image body together with its MIME type and
// encoding scheme.
type Payload struct {
	MIME     string
	Encoding Encoding
	Data     string
}

// URI assembles the data URI. Base64 payloads carry the ";base64" tag;
// percent-encoded payloads embed the text directly after the comma.
func (p Payload) URI() string {
	if p.Encoding == EncodingBase64 {
		return fmt.Sprintf("data:%s;base64,%s", p.MIME, p.Data)
	}
	return fmt.Sprintf("data:%s,%s", p.MIME, p.Data)
}

// EncodeRaster builds a base64 payload for raster image bytes.
func EncodeRaster(data []byte, mime string) Payload {
	return Payload{
		MIME:     mime,
		Encoding: EncodingBase64,
		Data:     base64.StdEncoding.EncodeToString(data),
	}
}

// EncodeSVG builds a percent-encoded payload for SVG text. SVG is kept
// as readable markup rather than base64.
func EncodeSVG(text []byte) Payload {
	return Payload{
		MIME:     "image/svg+xml",
		Encoding: EncodingPercent,
		Data:     percentEncode(text),
	}
}

// Wrap splits s into fixed-width lines joined by newlines. A width of
// zero or less, or one that already covers s, leaves s unchanged.
func Wrap(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/width + 1)
	for len(s) > width {
		b.WriteString(s[:width])
		b.WriteByte('\n')
		s = s[width:]
	}
	b.WriteString(s)
	return b.String()
}

// Markdown renders the final image line.
func Markdown(alt, uri string) string {
	return fmt.Sprintf("![%s](%s)", alt, uri)
}

const upperhex = "0123456789ABCDEF"

// percentEncode escapes every byte outside the RFC 3986 unreserved set,
// keeping "/" literal so SVG markup stays readable. Parentheses must be
// escaped or they would terminate the Markdown ![alt](...) enclosure.
func percentEncode(data []byte) string {
	var b strings.Builder
	b.Grow(len(data) + len(data)/2)
	for _, c := range data {
		if isUnreserved(c) || c == '/' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c == '-' || c == '.' || c == '_' || c == '~':
		return true
	}
	return false
}
