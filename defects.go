package riso

import (
	"math"
	"math/rand"
)

// opacityEpsilon is the coverage below which a pixel is treated as
// carrying no ink at all, both for scuffing and for compositing.
const opacityEpsilon = 0.004

// scuffSeed derives the noise seed for one ink layer. Each ink scuffs in
// a different pattern, but the same ink index always scuffs the same way.
func scuffSeed(inkIndex int) uint32 {
	return uint32(inkIndex*7919 + 31)
}

// cornerHash maps an integer lattice corner to a deterministic value in
// [0, 1), mixed with the layer seed.
func cornerHash(i, j int, seed uint32) float64 {
	h := uint32(i)*0x9e3779b1 ^ uint32(j)*0x85ebca77 ^ seed*0xc2b2ae3d
	h = (h ^ h>>15) * 0x27d4eb2f
	h ^= h >> 13
	return float64(h) / (1 << 32)
}

// smoothstep is the Hermite fade 3t^2 - 2t^3 on [0, 1].
func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// scuffNoise samples a smoothly varying noise field at an image
// coordinate: the four surrounding lattice corners are hashed and
// blended bilinearly with smoothstep weights. Pure in (x, y, cell, seed).
func scuffNoise(x, y, cell float64, seed uint32) float64 {
	lx := x / cell
	ly := y / cell
	x0 := math.Floor(lx)
	y0 := math.Floor(ly)
	tx := smoothstep(lx - x0)
	ty := smoothstep(ly - y0)

	i, j := int(x0), int(y0)
	n00 := cornerHash(i, j, seed)
	n10 := cornerHash(i+1, j, seed)
	n01 := cornerHash(i, j+1, seed)
	n11 := cornerHash(i+1, j+1, seed)

	top := n00 + (n10-n00)*tx
	bottom := n01 + (n11-n01)*tx
	return top + (bottom-top)*ty
}

// applyScuff zeroes inked pixels where the layer's noise field dips
// below the threshold, simulating patches the drum starved of ink.
// The lattice cell is tied to the dot pitch so scuffs span several dots
// rather than speckling individual pixels.
//
// The mask is fully deterministic: same ink index, pitch and threshold
// always starve the same pixels.
func applyScuff(op OpacityMap, width, height, inkIndex int, pitch, threshold float64) {
	if threshold <= 0 {
		return
	}
	scuffRows(op, width, 0, height, inkIndex, pitch, threshold)
}

// scuffRows starves rows [y0, y1); the mask is pure per pixel, so rows
// can run concurrently.
func scuffRows(op OpacityMap, width, y0, y1, inkIndex int, pitch, threshold float64) {
	seed := scuffSeed(inkIndex)
	cell := math.Max(pitch*3, 6)

	for y := y0; y < y1; y++ {
		fy := float64(y)
		for x := 0; x < width; x++ {
			i := y*width + x
			if op[i] <= opacityEpsilon {
				continue
			}
			if scuffNoise(float64(x), fy, cell, seed) < threshold {
				op[i] = 0
			}
		}
	}
}

// applyGrain perturbs every inked pixel by a uniform value in
// [-amount/2, amount/2], clamped back to [0, 1]. Grain draws fresh
// randomness from rng on every call; two renders of the same input are
// intentionally not identical unless the caller injects a fixed
// generator.
func applyGrain(op OpacityMap, amount float64, rng *rand.Rand) {
	if amount <= 0 {
		return
	}
	for i, v := range op {
		if v == 0 {
			continue
		}
		op[i] = clamp01(v + (rng.Float64()-0.5)*amount)
	}
}
