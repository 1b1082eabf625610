package scale

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/roboco-io/md-img-uri/internal/asset"
)

var (
	// [\s/] after the name keeps <svgfoo> from matching while still
	// accepting an attribute-less self-closing <svg/>.
	svgTagPattern     = regexp.MustCompile(`(?is)<svg(?:[\s/][^>]*)?>`)
	widthAttrPattern  = regexp.MustCompile(`(?is)\s+width\s*=\s*(?:"[^"]*"|'[^']*')`)
	heightAttrPattern = regexp.MustCompile(`(?is)\s+height\s*=\s*(?:"[^"]*"|'[^']*')`)
)

// SVG rewrites the root element's width and height attributes so the
// document renders at maxWidth pixels. The viewBox is never touched, so
// the drawing keeps its coordinate system and renderers scale it to the
// declared size.
//
// Upscaling is refused when the document declares a width: if maxWidth
// is greater than or equal to that width, the original text passes
// through with Refused set. Documents with no detectable width are
// rewritten unconditionally.
func SVG(a *asset.Asset, maxWidth int) (*Result, error) {
	if maxWidth <= 0 {
		return nil, errors.Errorf("max width must be positive, got %d", maxWidth)
	}
	if a.Format != asset.FormatSVG {
		return nil, errors.Errorf("cannot svg-scale %s data", a.Format)
	}
	if a.Width > 0 && maxWidth >= a.Width {
		return &Result{Data: a.Data, Width: a.Width, Height: a.Height, Refused: true}, nil
	}

	info := asset.ProbeSVG(a.Data)
	var height int
	if ratio, ok := info.AspectRatio(); ok {
		height = int(math.Round(float64(maxWidth) * ratio))
		if height < 1 {
			height = 1
		}
	} else {
		// No usable proportions declared anywhere; fall back to a square.
		height = maxWidth
	}

	rewritten, err := rewriteRootSize(string(a.Data), maxWidth, height)
	if err != nil {
		return nil, err
	}
	return &Result{Data: []byte(rewritten), Width: maxWidth, Height: height}, nil
}

// rewriteRootSize replaces the width/height attributes of the first
// <svg> tag with the given pixel values. All other markup, including
// whitespace and attribute order elsewhere, is preserved byte for byte.
func rewriteRootSize(doc string, width, height int) (string, error) {
	loc := svgTagPattern.FindStringIndex(doc)
	if loc == nil {
		return "", errors.New("no <svg> root element found")
	}

	tag := doc[loc[0]:loc[1]]
	tag = widthAttrPattern.ReplaceAllString(tag, "")
	tag = heightAttrPattern.ReplaceAllString(tag, "")

	size := fmt.Sprintf(` width="%d" height="%d"`, width, height)
	if strings.HasSuffix(tag, "/>") {
		tag = strings.TrimSuffix(tag, "/>") + size + "/>"
	} else {
		tag = strings.TrimSuffix(tag, ">") + size + ">"
	}

	return doc[:loc[0]] + tag + doc[loc[1]:], nil
}
