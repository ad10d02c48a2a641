package riso

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
)

// ErrUnknownInk is returned when an ink name is not in the catalog and
// cannot be parsed as a color.
var ErrUnknownInk = errors.New("riso: unknown ink")

// Ink is one spot color of the print run.
type Ink struct {
	// Name identifies the drum, e.g. "fluorescent-pink".
	Name string

	// Color is the ink's body color at full coverage.
	Color RGBA

	// Angle is the explicit screen angle in degrees. NaN (the value set
	// by NewInk) selects an angle from the default cycle based on the
	// ink's position in the run, which keeps overlapping screens from
	// producing moiré.
	Angle float64
}

// NewInk creates an ink with no explicit screen angle.
func NewInk(name string, c RGBA) Ink {
	return Ink{Name: name, Color: c, Angle: math.NaN()}
}

// WithAngle returns a copy of the ink with an explicit screen angle in
// degrees.
func (k Ink) WithAngle(deg float64) Ink {
	k.Angle = deg
	return k
}

// screenAngles is the default screen-angle cycle, indexed by the ink's
// position in the run. The first four are the classic process angles;
// the rest split the remaining gaps.
var screenAngles = [8]float64{15, 75, 0, 45, 22.5, 67.5, 37.5, 52.5}

// screenAngle resolves the ink's effective screen angle given its
// position in the run.
func (k Ink) screenAngle(pos int) float64 {
	if !math.IsNaN(k.Angle) {
		return k.Angle
	}
	if pos < 0 {
		pos = 0
	}
	return screenAngles[pos%len(screenAngles)]
}

// inkCatalog maps catalog names to body colors. The entries follow the
// stock drum colors of real duplicators.
var inkCatalog = map[string]string{
	"black":            "#000000",
	"burgundy":         "#914e72",
	"medium-blue":      "#3255a4",
	"blue":             "#0078bf",
	"green":            "#00a95c",
	"hunter-green":     "#407060",
	"teal":             "#00838a",
	"purple":           "#765ba7",
	"bright-red":       "#f15060",
	"red":              "#ff665e",
	"orange":           "#ff6c2f",
	"yellow":           "#ffe800",
	"flat-gold":        "#bb8b41",
	"brown":            "#925f52",
	"fluorescent-pink": "#ff48b0",
}

// CatalogInks returns the names of all catalog inks, sorted.
func CatalogInks() []string {
	names := make([]string, 0, len(inkCatalog))
	for name := range inkCatalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseInk parses an ink specification of the form
//
//	name | name=color | name=color@angle | color | color@angle
//
// where name is a catalog ink name, color is a hex color ("#rrggbb"),
// and angle is an explicit screen angle in degrees.
//
//	ParseInk("fluorescent-pink")
//	ParseInk("sky=#9bc3eb")
//	ParseInk("#0078bf@15")
func ParseInk(spec string) (Ink, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Ink{}, fmt.Errorf("%w: empty spec", ErrUnknownInk)
	}

	var angle = math.NaN()
	if at := strings.LastIndexByte(spec, '@'); at >= 0 {
		deg, err := strconv.ParseFloat(spec[at+1:], 64)
		if err != nil {
			return Ink{}, fmt.Errorf("%w: bad angle in %q", ErrUnknownInk, spec)
		}
		angle = deg
		spec = spec[:at]
	}

	name, value := spec, ""
	if eq := strings.IndexByte(spec, '='); eq >= 0 {
		name, value = spec[:eq], spec[eq+1:]
	}

	switch {
	case value != "":
		if !isHexColor(value) {
			return Ink{}, fmt.Errorf("%w: bad color %q", ErrUnknownInk, value)
		}
		return Ink{Name: name, Color: Hex(value), Angle: angle}, nil
	case isHexColor(name):
		return Ink{Name: name, Color: Hex(name), Angle: angle}, nil
	default:
		hex, ok := inkCatalog[strings.ToLower(name)]
		if !ok {
			return Ink{}, fmt.Errorf("%w: %q", ErrUnknownInk, name)
		}
		return Ink{Name: strings.ToLower(name), Color: Hex(hex), Angle: angle}, nil
	}
}

// MustInk is like ParseInk but panics on error. Intended for statically
// known specs.
func MustInk(spec string) Ink {
	k, err := ParseInk(spec)
	if err != nil {
		panic(err)
	}
	return k
}

func isHexColor(s string) bool {
	if s == "" || s[0] != '#' {
		return false
	}
	s = s[1:]
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

// SuggestInks extracts an ink palette from an image by median-cut
// quantization. Colors close to the paper white are dropped, since the
// sheet itself provides them, so fewer than n inks may be returned.
// Inks are ordered dark to light, which tends to print darker drums
// first.
func SuggestInks(img image.Image, n int) []Ink {
	if img == nil || n <= 0 {
		return nil
	}

	q := quantize.MedianCutQuantizer{}
	palette := q.Quantize(make(color.Palette, 0, n+1), img)

	inks := make([]Ink, 0, len(palette))
	for _, c := range palette {
		body := FromColor(c)
		// An "ink" lighter than ~95% white would be invisible on stock.
		if body.R > 0.95 && body.G > 0.95 && body.B > 0.95 {
			continue
		}
		inks = append(inks, NewInk("", body))
	}

	sort.SliceStable(inks, func(i, j int) bool {
		return luma(inks[i].Color) < luma(inks[j].Color)
	})
	if len(inks) > n {
		inks = inks[:n]
	}
	for i := range inks {
		inks[i].Name = fmt.Sprintf("ink-%d", i+1)
	}
	return inks
}

func luma(c RGBA) float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}
