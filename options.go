package riso

import "math/rand"

// RendererOption configures a Renderer during creation.
// Use functional options to customize Renderer behavior.
//
// Example:
//
//	// Default: one worker per CPU, time-seeded randomness
//	r := riso.NewRenderer()
//
//	// Deterministic output for tests
//	r := riso.NewRenderer(riso.WithRand(rand.New(rand.NewSource(1))))
type RendererOption func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	workers int
	rng     *rand.Rand
}

// defaultRendererOptions returns the default renderer options.
func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		workers: 0,   // 0 selects one worker per CPU
		rng:     nil, // nil selects a time-seeded source
	}
}

// WithWorkers sets the number of worker goroutines used by the
// row-parallel pipeline passes. Zero or negative selects one worker per
// CPU; one forces the whole pipeline onto the calling goroutine.
func WithWorkers(n int) RendererOption {
	return func(o *rendererOptions) {
		o.workers = n
	}
}

// WithRand sets the random source used for grain and misregistration.
// Production renders want real entropy (the default); tests inject a
// fixed generator so every render of the same input is identical.
//
// Example:
//
//	r := riso.NewRenderer(riso.WithRand(rand.New(rand.NewSource(42))))
func WithRand(rng *rand.Rand) RendererOption {
	return func(o *rendererOptions) {
		o.rng = rng
	}
}
