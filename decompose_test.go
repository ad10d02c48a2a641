package riso

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testImage builds a deterministic pixmap with varied colors and alpha.
func testImage(w, h int) *Pixmap {
	pm := NewPixmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			pm.data[i+0] = uint8((x * 37) % 256)
			pm.data[i+1] = uint8((y * 91) % 256)
			pm.data[i+2] = uint8((x*13 + y*7) % 256)
			pm.data[i+3] = 255
		}
	}
	return pm
}

func TestDecompose_DensityRange(t *testing.T) {
	src := testImage(32, 24)
	inks := []Ink{
		MustInk("fluorescent-pink"),
		MustInk("medium-blue"),
		MustInk("yellow"),
	}

	maps, err := Decompose(src, inks, White)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}
	if len(maps) != len(inks) {
		t.Fatalf("got %d maps, want %d", len(maps), len(inks))
	}

	for m, dm := range maps {
		if len(dm) != 32*24 {
			t.Fatalf("map %d has %d values, want %d", m, len(dm), 32*24)
		}
		for i, d := range dm {
			if math.IsNaN(d) || d < 0 || d > 1 {
				t.Fatalf("map %d pixel %d: density %v out of [0,1]", m, i, d)
			}
		}
	}
}

func TestDecompose_TransparentPixel(t *testing.T) {
	src := NewPixmap(2, 1)
	// Left pixel: saturated red but fully transparent.
	src.data[0], src.data[1], src.data[2], src.data[3] = 255, 0, 0, 0
	// Right pixel: the same red, opaque.
	src.data[4], src.data[5], src.data[6], src.data[7] = 255, 0, 0, 255

	inks := []Ink{MustInk("bright-red"), MustInk("black")}
	maps, err := Decompose(src, inks, White)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}

	for m, dm := range maps {
		if dm[0] != 0 {
			t.Errorf("map %d: transparent pixel density = %v, want 0", m, dm[0])
		}
	}
	// The opaque twin must carry ink, otherwise the gate ate too much.
	total := maps[0][1] + maps[1][1]
	if total == 0 {
		t.Error("opaque red pixel produced no ink at all")
	}
}

func TestDecompose_SingleInkProjection(t *testing.T) {
	src := testImage(16, 16)
	ink := MustInk("green")

	maps, err := Decompose(src, []Ink{ink}, White)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}

	absorption := vec3{
		White.R - ink.Color.R,
		White.G - ink.Color.G,
		White.B - ink.Color.B,
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			i := (y*16 + x) * 4
			alpha := float64(src.data[i+3]) / 255
			target := vec3{
				(White.R - float64(src.data[i+0])/255) * alpha,
				(White.G - float64(src.data[i+1])/255) * alpha,
				(White.B - float64(src.data[i+2])/255) * alpha,
			}
			want := singleInkDensity(target, absorption)
			got := maps[0][y*16+x]
			if math.Abs(got-want) > 1e-12 {
				t.Fatalf("pixel (%d,%d): density %v, want projection %v", x, y, got, want)
			}
		}
	}
}

func TestDecompose_DuplicateInks(t *testing.T) {
	// Two identical inks make the Gram matrix singular; the solve must
	// still stay finite and bounded.
	src := testImage(16, 16)
	inks := []Ink{MustInk("teal"), MustInk("teal")}

	maps, err := Decompose(src, inks, White)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}
	for m, dm := range maps {
		for i, d := range dm {
			if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 || d > 1 {
				t.Fatalf("map %d pixel %d: density %v not bounded", m, i, d)
			}
		}
	}
}

func TestDecompose_WhiteInk(t *testing.T) {
	// An ink equal to the reference white has a zero absorption vector;
	// the guarded diagonal must zero its density everywhere.
	src := testImage(8, 8)
	maps, err := Decompose(src, []Ink{NewInk("ghost", White)}, White)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}
	for i, d := range maps[0] {
		if d != 0 {
			t.Fatalf("pixel %d: white ink density = %v, want 0", i, d)
		}
	}
}

func TestDecompose_EmptyInks(t *testing.T) {
	maps, err := Decompose(testImage(4, 4), nil, White)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}
	if len(maps) != 0 {
		t.Errorf("got %d maps, want 0", len(maps))
	}
}

func TestDecompose_InvalidBitmap(t *testing.T) {
	tests := []struct {
		name string
		src  *Pixmap
	}{
		{"nil", nil},
		{"zero_width", NewPixmap(0, 10)},
		{"zero_height", NewPixmap(10, 0)},
		{"short_buffer", &Pixmap{width: 4, height: 4, data: make([]uint8, 7)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decompose(tc.src, []Ink{MustInk("black")}, White)
			if !errors.Is(err, ErrInvalidBitmap) {
				t.Errorf("Decompose() error = %v, want ErrInvalidBitmap", err)
			}
		})
	}
}

func TestDecompose_Deterministic(t *testing.T) {
	src := testImage(20, 20)
	inks := []Ink{MustInk("burgundy"), MustInk("blue"), MustInk("yellow")}

	a, err := Decompose(src, inks, White)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}
	b, err := Decompose(src, inks, White)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("two runs over identical input differ (-first +second):\n%s", diff)
	}
}
