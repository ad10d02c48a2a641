package riso

import (
	"fmt"
	"math"

	"github.com/gogpu/riso/internal/parallel"
)

// OpacityMap holds one ink's screened dot coverage per pixel, row-major,
// in [0, 1]. Dot edges are antialiased, so values between 0 and 1 occur.
type OpacityMap []float64

// Synthesize screens a density map into an opacity map.
//
// The screen grid lives in a coordinate space rotated by angleDeg (the
// ink's screen angle plus the config's global angle). Opacity at a pixel
// is a pure function of its coordinates, the density map, and the
// config, so identical inputs always produce identical screens.
func Synthesize(dm DensityMap, width, height int, cfg HalftoneConfig, angleDeg float64) (OpacityMap, error) {
	return synthesize(dm, width, height, cfg, angleDeg, parallel.New(0))
}

func synthesize(dm DensityMap, width, height int, cfg HalftoneConfig, angleDeg float64, pool *parallel.Pool) (OpacityMap, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(dm) != width*height {
		return nil, fmt.Errorf("%w: density map has %d values, want %d", ErrInvalidBitmap, len(dm), width*height)
	}

	op := make(OpacityMap, width*height)
	sin, cos := math.Sincos((cfg.Angle + angleDeg) * math.Pi / 180)

	switch cfg.Mode {
	case HalftoneAM:
		pool.Rows(height, func(y0, y1 int) {
			synthesizeAM(op, dm, width, y0, y1, cfg, sin, cos)
		})
	case HalftoneFM:
		pool.Rows(height, func(y0, y1 int) {
			synthesizeFM(op, dm, width, height, y0, y1, cfg, sin, cos)
		})
	default:
		return nil, fmt.Errorf("%w: unknown halftone mode %d", ErrInvalidConfig, int(cfg.Mode))
	}

	return op, nil
}

// coverage is the shared antialias rule: full inside the dot, zero
// outside, and a linear ramp across a band of 2*edge around the radius.
func coverage(dist, radius, edge float64) float64 {
	switch {
	case dist < radius-edge:
		return 1
	case dist > radius+edge:
		return 0
	default:
		return (radius + edge - dist) / (2 * edge)
	}
}

// synthesizeAM renders rows [y0, y1) of an amplitude-modulated screen:
// a fixed grid of dots whose radius grows with the square root of local
// density, so dot area tracks density linearly.
func synthesizeAM(op OpacityMap, dm DensityMap, width, y0, y1 int, cfg HalftoneConfig, sin, cos float64) {
	pitch := cfg.EffectivePitch()
	edge := 0.5 / pitch

	for y := y0; y < y1; y++ {
		fy := float64(y)
		for x := 0; x < width; x++ {
			i := y*width + x
			d := clamp01(dm[i] * cfg.Scale)
			if d <= 0 {
				continue
			}

			fx := float64(x)
			rx := fx*cos + fy*sin
			ry := -fx*sin + fy*cos

			// Offset from the nearest grid-cell center, in
			// cell-fraction units.
			gx := rx / pitch
			gy := ry / pitch
			dx := gx - math.Round(gx)
			dy := gy - math.Round(gy)

			dist := math.Hypot(dx, dy)
			radius := math.Sqrt(d) * 0.5
			op[i] = coverage(dist, radius, edge)
		}
	}
}

// synthesizeFM renders rows [y0, y1) of a frequency-modulated screen:
// fixed-radius dots whose presence is decided per grid cell by comparing
// the density under the dot center against a hashed threshold.
//
// A dot can bleed past its home cell, so each pixel examines its cell
// and the 8 neighbors and keeps the maximum coverage; dots only ever add
// ink. The density sample rounds the dot center back into image
// coordinates; near the border that lands outside the image and reads
// density 0, which thins dots at the edge for some angles.
func synthesizeFM(op OpacityMap, dm DensityMap, width, height, y0, y1 int, cfg HalftoneConfig, sin, cos float64) {
	pitch := cfg.EffectivePitch()
	radius := pitch / 2
	const edge = 0.5 // half-pixel antialias band

	for y := y0; y < y1; y++ {
		fy := float64(y)
		for x := 0; x < width; x++ {
			fx := float64(x)
			rx := fx*cos + fy*sin
			ry := -fx*sin + fy*cos

			homeX := int(math.Floor(rx / pitch))
			homeY := int(math.Floor(ry / pitch))

			var best float64
			for ny := -1; ny <= 1; ny++ {
				for nx := -1; nx <= 1; nx++ {
					cx := homeX + nx
					cy := homeY + ny

					// Dot center in rotated space, then back in
					// image space for the density sample.
					ux := (float64(cx) + 0.5) * pitch
					uy := (float64(cy) + 0.5) * pitch
					ix := int(math.Round(ux*cos - uy*sin))
					iy := int(math.Round(ux*sin + uy*cos))

					var d float64
					if ix >= 0 && ix < width && iy >= 0 && iy < height {
						d = dm[iy*width+ix]
					}
					v := clamp01(d * cfg.Scale)
					if v <= cellThreshold(cx, cy) {
						continue
					}

					dist := math.Hypot(rx-ux, ry-uy)
					if c := coverage(dist, radius, edge); c > best {
						best = c
					}
				}
			}
			op[y*width+x] = best
		}
	}
}

// cellThreshold maps integer cell coordinates to a deterministic
// pseudo-random value in [0, 1) through a multiply-xor-shift mix. It is
// a pure function of its inputs: identical cells always get identical
// thresholds, so FM dot placement is reproducible without any random
// source.
func cellThreshold(cx, cy int) float64 {
	h := uint32(cx)*0x8da6b343 ^ uint32(cy)*0xd8163841
	h = (h ^ h>>13) * 0x85ebca6b
	h ^= h >> 16
	return float64(h) / (1 << 32)
}
