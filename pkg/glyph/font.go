// Package glyph loads SVG stroke fonts and lays out text as polylines.
//
// Only the parts of the SVG font format a pen plotter needs are read:
// the font-face metrics and, per glyph, its code point, advance width and
// path data made of straight segments (M, L, H, V, Z and their relative
// forms). Glyph coordinates are in font units with Y pointing up; layout
// flips them into drawing coordinates where Y points down.
//
//	f, err := glyph.Load("Medias/HersheySans1.svgfont")
//	if err != nil {
//	    return err
//	}
//	strokes := f.Layout("AntonMakesGames 007", origin, 9)
package glyph

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"seehuhn.de/go/geom/vec"

	"github.com/matzehuels/hexwalk/pkg/errors"
	"github.com/matzehuels/hexwalk/pkg/fonts"
)

// DefaultCharset lists the characters kept when loading a font.
const DefaultCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 ?.-#"

// Glyph is a single character outline in font units.
type Glyph struct {
	Rune    rune
	Advance float64
	Strokes [][]vec.Vec2
}

// Font is a parsed SVG stroke font.
type Font struct {
	Family     string
	UnitsPerEm float64
	Ascent     float64
	Descent    float64
	// MissingAdvance is the advance used for characters without a glyph.
	MissingAdvance float64

	glyphs map[rune]Glyph
}

// Option configures [Parse].
type Option func(*parser)

type parser struct {
	charset string
}

// WithCharset keeps only glyphs whose character occurs in charset. An empty
// charset keeps every glyph.
func WithCharset(charset string) Option {
	return func(p *parser) { p.charset = charset }
}

// Parse reads an SVG font document. Glyphs that are ligatures, lack path
// data attributes or fall outside the charset are skipped.
func Parse(r io.Reader, opts ...Option) (*Font, error) {
	p := parser{charset: DefaultCharset}
	for _, opt := range opts {
		opt(&p)
	}

	f := &Font{UnitsPerEm: 1000, glyphs: make(map[rune]Glyph)}
	var (
		fontAdvance float64
		sawFont     bool
	)
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read svg font")
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		attrs := attrMap(se.Attr)

		switch se.Name.Local {
		case "font":
			sawFont = true
			fontAdvance = parseFloat(attrs["horiz-adv-x"], 0)
		case "font-face":
			f.Family = attrs["font-family"]
			f.UnitsPerEm = parseFloat(attrs["units-per-em"], f.UnitsPerEm)
			f.Ascent = parseFloat(attrs["ascent"], 0)
			f.Descent = parseFloat(attrs["descent"], 0)
		case "missing-glyph":
			f.MissingAdvance = parseFloat(attrs["horiz-adv-x"], fontAdvance)
		case "glyph":
			u, hasU := attrs["unicode"]
			d, hasD := attrs["d"]
			if !hasU || !hasD || utf8.RuneCountInString(u) != 1 {
				continue
			}
			ch, _ := utf8.DecodeRuneInString(u)
			if p.charset != "" && !strings.ContainsRune(p.charset, ch) {
				continue
			}
			strokes, err := ParsePath(d)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "glyph %q", u)
			}
			f.glyphs[ch] = Glyph{
				Rune:    ch,
				Advance: parseFloat(attrs["horiz-adv-x"], fontAdvance),
				Strokes: strokes,
			}
		}
	}

	if !sawFont {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no <font> element found")
	}
	if f.UnitsPerEm <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "units-per-em must be positive, got %v", f.UnitsPerEm)
	}
	if f.MissingAdvance == 0 {
		f.MissingAdvance = fontAdvance
	}
	return f, nil
}

// Load parses the SVG font at path.
func Load(path string, opts ...Option) (*Font, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "font %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open font %s", path)
	}
	defer file.Close()
	return Parse(file, opts...)
}

var (
	defaultFont     *Font
	defaultFontOnce sync.Once
)

// Default returns the embedded single-stroke font. The result is parsed
// once and shared; callers must not modify it.
func Default() *Font {
	defaultFontOnce.Do(func() {
		f, err := Parse(bytes.NewReader(fonts.HexwalkSansSVG()))
		if err != nil {
			panic("glyph: embedded font: " + err.Error())
		}
		defaultFont = f
	})
	return defaultFont
}

// Len returns the number of loaded glyphs.
func (f *Font) Len() int { return len(f.glyphs) }

// Glyph returns the glyph for r. When the font has no glyph for r it falls
// back to the other letter case.
func (f *Font) Glyph(r rune) (Glyph, bool) {
	if g, ok := f.glyphs[r]; ok {
		return g, true
	}
	for _, alt := range []rune{unicode.ToUpper(r), unicode.ToLower(r)} {
		if alt == r {
			continue
		}
		if g, ok := f.glyphs[alt]; ok {
			return g, true
		}
	}
	return Glyph{}, false
}

func attrMap(attrs []xml.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name.Local] = a.Value
	}
	return m
}

func parseFloat(s string, fallback float64) float64 {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fallback
	}
	return v
}
