package riso

import (
	"math/rand"
	"testing"
)

var benchSizes = []struct {
	name   string
	width  int
	height int
}{
	{"128x128", 128, 128},
	{"512x512", 512, 512},
	{"1024x1024", 1024, 1024},
}

// BenchmarkDecompose measures the per-pixel least-squares solve, the
// most expensive pass of the pipeline.
func BenchmarkDecompose(b *testing.B) {
	inks := []Ink{
		MustInk("fluorescent-pink"),
		MustInk("medium-blue"),
		MustInk("yellow"),
	}
	for _, size := range benchSizes {
		b.Run(size.name, func(b *testing.B) {
			src := testImage(size.width, size.height)
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Decompose(src, inks, White); err != nil {
					b.Fatal(err)
				}
			}
			b.SetBytes(int64(size.width * size.height * 4))
		})
	}
}

// BenchmarkSynthesize compares the two screening models at a common
// pitch.
func BenchmarkSynthesize(b *testing.B) {
	for _, mode := range []HalftoneMode{HalftoneAM, HalftoneFM} {
		b.Run(mode.String(), func(b *testing.B) {
			const w, h = 512, 512
			dm := uniformDensity(w, h, 0.6)
			cfg := HalftoneConfig{DotPitch: 4, Scale: 1, Mode: mode}
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Synthesize(dm, w, h, cfg, 15); err != nil {
					b.Fatal(err)
				}
			}
			b.SetBytes(int64(w * h * 4))
		})
	}
}

// BenchmarkRender runs the full pipeline with a two-ink run and all
// defects enabled.
func BenchmarkRender(b *testing.B) {
	inks := []Ink{MustInk("bright-red"), MustInk("teal")}
	cc := DefaultComposite()
	cc.NoiseThreshold = 0.2

	for _, size := range benchSizes {
		b.Run(size.name, func(b *testing.B) {
			src := testImage(size.width, size.height)
			r := NewRenderer(WithRand(rand.New(rand.NewSource(1))))
			defer r.Close()
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := r.Render(src, inks, DefaultHalftone(), cc); err != nil {
					b.Fatal(err)
				}
			}
			b.SetBytes(int64(size.width * size.height * 4))
		})
	}
}
