package riso

import (
	"github.com/gogpu/riso/internal/parallel"
)

// DensityMap holds one ink's solved coverage per pixel, row-major,
// with every value in [0, 1].
type DensityMap []float64

const (
	// alphaGate is the straight-alpha cutoff below which a source pixel
	// contributes no ink at all.
	alphaGate = 0.01

	// descentSweeps is the fixed number of Gauss-Seidel sweeps of the
	// per-pixel solve. The count never adapts: a fixed iteration budget
	// keeps output bit-stable across runs and bounds per-pixel cost.
	descentSweeps = 12

	// gramEpsilon guards the diagonal division for degenerate inks
	// (an ink equal to the reference white has a zero absorption vector).
	gramEpsilon = 1e-9
)

// vec3 is a per-channel RGB triple in [0, 1] units.
type vec3 [3]float64

func dot3(a, b vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Decompose splits src into one density map per ink.
//
// Each ink is modeled by its absorption vector, the per-channel
// difference between the reference white and the ink body color. For
// every pixel the solver finds non-negative coefficients d minimizing
// the squared error between the weighted sum of absorption vectors and
// the pixel's alpha-weighted deviation from white, clamping each
// coefficient to [0, 1].
//
// The solve is exact coordinate descent: the n-by-n Gram matrix of the
// ink basis is computed once, then every pixel runs descentSweeps
// Gauss-Seidel sweeps. Duplicate or near-white inks make the system
// singular; the guarded diagonal keeps the result finite and bounded
// regardless.
//
// Pixels with alpha below alphaGate yield density 0 for every ink.
func Decompose(src *Pixmap, inks []Ink, white RGBA) ([]DensityMap, error) {
	return decompose(src, inks, white, parallel.New(0))
}

func decompose(src *Pixmap, inks []Ink, white RGBA, pool *parallel.Pool) ([]DensityMap, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}

	n := len(inks)
	w, h := src.width, src.height
	maps := make([]DensityMap, n)
	for i := range maps {
		maps[i] = make(DensityMap, w*h)
	}
	if n == 0 {
		return maps, nil
	}

	// Ink absorption basis and its Gram matrix, shared by every pixel.
	basis := make([]vec3, n)
	for i, ink := range inks {
		basis[i] = vec3{
			white.R - ink.Color.R,
			white.G - ink.Color.G,
			white.B - ink.Color.B,
		}
	}
	gram := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			g := dot3(basis[i], basis[j])
			gram[i*n+j] = g
			gram[j*n+i] = g
		}
	}

	data := src.data
	pool.Rows(h, func(y0, y1 int) {
		// Per-worker scratch; the shared Gram matrix is read-only.
		b := make([]float64, n)
		d := make([]float64, n)

		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				px := y*w + x
				o := px * 4

				alpha := float64(data[o+3]) / 255
				if alpha < alphaGate {
					for i := range maps {
						maps[i][px] = 0
					}
					continue
				}

				// Alpha-weighted deviation from the reference white.
				target := vec3{
					(white.R - float64(data[o+0])/255) * alpha,
					(white.G - float64(data[o+1])/255) * alpha,
					(white.B - float64(data[o+2])/255) * alpha,
				}

				for i := 0; i < n; i++ {
					b[i] = dot3(basis[i], target)
					if gram[i*n+i] > gramEpsilon {
						d[i] = clamp01(b[i] / gram[i*n+i])
					} else {
						d[i] = 0
					}
				}

				for sweep := 0; sweep < descentSweeps; sweep++ {
					for i := 0; i < n; i++ {
						gii := gram[i*n+i]
						if gii <= gramEpsilon {
							d[i] = 0
							continue
						}
						acc := b[i]
						for j := 0; j < n; j++ {
							if j != i {
								acc -= d[j] * gram[i*n+j]
							}
						}
						d[i] = clamp01(acc / gii)
					}
				}

				for i := 0; i < n; i++ {
					maps[i][px] = d[i]
				}
			}
		}
	})

	Logger().Debug("riso: decomposed image",
		"width", w, "height", h, "inks", n, "sweeps", descentSweeps)

	return maps, nil
}

// singleInkDensity is the closed form the solver degenerates to with one
// ink: a clamped projection of the target onto the absorption vector.
// Kept for documentation and tests; Decompose reaches the same values
// through the sweep loop.
func singleInkDensity(target, absorption vec3) float64 {
	g := dot3(absorption, absorption)
	if g <= gramEpsilon {
		return 0
	}
	return clamp01(dot3(target, absorption) / g)
}
