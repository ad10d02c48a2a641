package riso

import (
	"math"
	"math/rand"
	"time"

	"github.com/gogpu/riso/internal/parallel"
)

// Renderer runs the full print pipeline. A Renderer owns a worker pool
// and a random source and can be reused across renders; it is not safe
// for concurrent Render calls because the random source is shared.
type Renderer struct {
	pool *parallel.Pool
	rng  *rand.Rand
}

// NewRenderer creates a renderer. By default it uses one worker per CPU
// and a time-seeded random source for grain and misregistration.
func NewRenderer(opts ...RendererOption) *Renderer {
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}

	rng := o.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Renderer{
		pool: parallel.New(o.workers),
		rng:  rng,
	}
}

// Close releases the renderer. Present for symmetry with other pipeline
// owners; the row pool holds no persistent goroutines.
func (r *Renderer) Close() {}

// Render presses the source image onto paper through the full pipeline:
// one decomposition pass shared by all inks, then per ink a halftone
// screen, a scuff mask, a random registration shift, grain, and a
// multiplicative transmittance blend onto the accumulating sheet.
//
// Inks are pressed in list order. Each layer rounds the sheet to 8 bits
// before the next is pressed, so reordering inks can change the output
// by a least significant bit; that matches how a real run behaves and is
// accepted.
//
// The returned pixmap has the source dimensions and alpha 255
// everywhere. An empty ink list returns the bare paper. The caller owns
// the returned pixmap; all intermediate maps are discarded.
func (r *Renderer) Render(src *Pixmap, inks []Ink, hc HalftoneConfig, cc CompositeConfig) (*Pixmap, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}
	if err := hc.Validate(); err != nil {
		return nil, err
	}
	if err := cc.Validate(); err != nil {
		return nil, err
	}

	w, h := src.width, src.height
	start := time.Now()
	log := Logger()
	log.Info("riso: render started", "width", w, "height", h, "inks", len(inks), "mode", hc.Mode.String())

	out := NewPixmap(w, h)
	paper := cc.Paper
	paper.A = 1
	out.Clear(paper)

	if len(inks) == 0 {
		return out, nil
	}

	maps, err := decompose(src, inks, White, r.pool)
	if err != nil {
		return nil, err
	}

	for idx, ink := range inks {
		angle := ink.screenAngle(idx)

		op, err := synthesize(maps[idx], w, h, hc, angle, r.pool)
		if err != nil {
			return nil, err
		}

		if cc.NoiseThreshold > 0 {
			r.pool.Rows(h, func(y0, y1 int) {
				scuffRows(op, w, y0, y1, idx, hc.DotPitch, cc.NoiseThreshold)
			})
		}

		dx, dy := registrationOffset(cc.Misregistration, r.rng)
		op = shiftMap(op, w, h, dx, dy)

		applyGrain(op, cc.Grain, r.rng)

		pressLayer(out, op, ink.Color, cc.InkOpacity)

		log.Debug("riso: layer pressed",
			"ink", ink.Name, "index", idx, "angle", angle, "dx", dx, "dy", dy)
	}

	log.Info("riso: render finished", "elapsed", time.Since(start))
	return out, nil
}

// registrationOffset draws one random plate offset, rounded to whole
// pixels. Each ink gets a fresh draw on every render; drift is a
// property of the pass, not of the ink.
func registrationOffset(magnitude float64, rng *rand.Rand) (dx, dy int) {
	if magnitude <= 0 {
		return 0, 0
	}
	dx = int(math.Round((rng.Float64()*2 - 1) * magnitude))
	dy = int(math.Round((rng.Float64()*2 - 1) * magnitude))
	return dx, dy
}

// shiftMap translates an opacity map by whole pixels. Pixels whose
// source falls outside the map become 0: a misregistered layer reveals
// paper at the trailing edge rather than wrapping around.
func shiftMap(op OpacityMap, width, height, dx, dy int) OpacityMap {
	if dx == 0 && dy == 0 {
		return op
	}
	out := make(OpacityMap, len(op))
	for y := 0; y < height; y++ {
		sy := y - dy
		if sy < 0 || sy >= height {
			continue
		}
		for x := 0; x < width; x++ {
			sx := x - dx
			if sx < 0 || sx >= width {
				continue
			}
			out[y*width+x] = op[sy*width+sx]
		}
	}
	return out
}

// pressLayer folds one ink layer onto the sheet with a multiplicative
// transmittance model: each covered channel keeps the fraction of light
// the ink film lets through. The sheet is rounded to 8 bits per layer
// and alpha stays 255 throughout.
func pressLayer(dst *Pixmap, op OpacityMap, ink RGBA, strength float64) {
	data := dst.data
	for i, v := range op {
		if v < opacityEpsilon {
			continue
		}
		o := i * 4
		tr := 1 - v*strength*(1-ink.R)
		tg := 1 - v*strength*(1-ink.G)
		tb := 1 - v*strength*(1-ink.B)
		data[o+0] = uint8(math.Round(float64(data[o+0]) * tr))
		data[o+1] = uint8(math.Round(float64(data[o+1]) * tg))
		data[o+2] = uint8(math.Round(float64(data[o+2]) * tb))
		data[o+3] = 255
	}
}
