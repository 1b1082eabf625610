package asset

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"
	"unicode"
)

// SVGInfo holds the size declarations found on an SVG root element.
// Zero fields mean the corresponding declaration is absent or unusable.
type SVGInfo struct {
	Width    float64
	Height   float64
	ViewBoxW float64
	ViewBoxH float64
}

// ProbeSVG scans data for the root <svg> element and reports its
// declared size. Prologue content such as XML declarations, comments
// and DOCTYPEs is skipped.
func ProbeSVG(data []byte) SVGInfo {
	var info SVGInfo

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = false

	for {
		token, err := decoder.Token()
		if err != nil {
			return info
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if !strings.EqualFold(start.Name.Local, "svg") {
			// Root element is not <svg>; nothing to probe.
			return info
		}

		for _, attr := range start.Attr {
			switch strings.ToLower(attr.Name.Local) {
			case "width":
				info.Width = parseDimension(attr.Value)
			case "height":
				info.Height = parseDimension(attr.Value)
			case "viewbox":
				info.ViewBoxW, info.ViewBoxH = parseViewBox(attr.Value)
			}
		}
		return info
	}
}

// PixelSize collapses the declarations into intrinsic pixel dimensions,
// preferring explicit width/height attributes over the viewBox.
func (i SVGInfo) PixelSize() (width, height int) {
	w := i.Width
	if w == 0 {
		w = i.ViewBoxW
	}
	h := i.Height
	if h == 0 {
		h = i.ViewBoxH
	}
	return int(w), int(h)
}

// AspectRatio returns height divided by width. The viewBox wins over the
// width/height attributes because it reflects the drawing's true
// proportions. ok is false when neither pair is usable.
func (i SVGInfo) AspectRatio() (ratio float64, ok bool) {
	if i.ViewBoxW > 0 && i.ViewBoxH > 0 {
		return i.ViewBoxH / i.ViewBoxW, true
	}
	if i.Width > 0 && i.Height > 0 {
		return i.Height / i.Width, true
	}
	return 0, false
}

// parseDimension parses a length such as "120", "120.5" or "120px".
// Percentages and other units carry no pixel meaning and parse to zero.
func parseDimension(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// parseViewBox extracts the width and height entries of a viewBox list.
// Entries may be separated by whitespace, commas or both.
func parseViewBox(s string) (w, h float64) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) != 4 {
		return 0, 0
	}
	w, errW := strconv.ParseFloat(fields[2], 64)
	h, errH := strconv.ParseFloat(fields[3], 64)
	if errW != nil || errH != nil || w < 0 || h < 0 {
		return 0, 0
	}
	return w, h
}
