package riso

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a halftone or composite configuration
// would produce a degenerate pipeline (for example a non-positive dot pitch).
var ErrInvalidConfig = errors.New("riso: invalid config")

// HalftoneMode selects the screening model used to turn ink density into
// dot coverage.
type HalftoneMode int

const (
	// HalftoneAM is amplitude-modulated screening: dots sit on a fixed
	// grid and grow with local ink density.
	HalftoneAM HalftoneMode = iota

	// HalftoneFM is frequency-modulated (stochastic) screening: dots have
	// a fixed size and appear or vanish with local ink density.
	HalftoneFM
)

// String returns the conventional short name of the mode.
func (m HalftoneMode) String() string {
	switch m {
	case HalftoneAM:
		return "am"
	case HalftoneFM:
		return "fm"
	default:
		return fmt.Sprintf("HalftoneMode(%d)", int(m))
	}
}

// ParseHalftoneMode parses "am" or "fm".
func ParseHalftoneMode(s string) (HalftoneMode, error) {
	switch s {
	case "am", "AM":
		return HalftoneAM, nil
	case "fm", "FM":
		return HalftoneFM, nil
	default:
		return 0, fmt.Errorf("%w: unknown halftone mode %q", ErrInvalidConfig, s)
	}
}

// HalftoneConfig controls the screening stage.
type HalftoneConfig struct {
	// DotPitch is the screen grid pitch in pixels. Must be > 0.
	DotPitch float64

	// Angle is a global screen rotation in degrees, added to each ink's
	// own screen angle.
	Angle float64

	// Scale multiplies ink density before it is converted to dot size
	// (AM) or dot probability (FM). Typical values are 0.5 to 2.0.
	Scale float64

	// Mode selects AM or FM screening.
	Mode HalftoneMode
}

// DefaultHalftone returns the halftone settings of a standard print:
// AM screening at a 4 pixel pitch with unit density scale.
func DefaultHalftone() HalftoneConfig {
	return HalftoneConfig{DotPitch: 4, Scale: 1, Mode: HalftoneAM}
}

// EffectivePitch returns the grid pitch actually used by the screen.
//
// AM screening runs at DotPitch+1: the widened cell keeps midtone dots
// from fusing at small pitches, and tuning of the density response
// depends on it. FM screening uses DotPitch exactly.
func (c HalftoneConfig) EffectivePitch() float64 {
	if c.Mode == HalftoneAM {
		return c.DotPitch + 1
	}
	return c.DotPitch
}

// Validate reports whether the configuration is usable.
func (c HalftoneConfig) Validate() error {
	if c.DotPitch <= 0 {
		return fmt.Errorf("%w: dot pitch %g, must be > 0", ErrInvalidConfig, c.DotPitch)
	}
	if c.Scale < 0 {
		return fmt.Errorf("%w: density scale %g, must be >= 0", ErrInvalidConfig, c.Scale)
	}
	switch c.Mode {
	case HalftoneAM, HalftoneFM:
	default:
		return fmt.Errorf("%w: unknown halftone mode %d", ErrInvalidConfig, int(c.Mode))
	}
	return nil
}

// CompositeConfig controls the press stage: how the screened layers are
// laid onto the paper.
type CompositeConfig struct {
	// Misregistration is the maximum per-ink registration drift in
	// pixels. Each ink draws a fresh uniform offset in [-m, m] on every
	// render. Must be >= 0.
	Misregistration float64

	// Grain is the amplitude of the per-pixel coverage perturbation
	// applied at press time, in [0, 1]. Zero disables grain.
	Grain float64

	// InkOpacity is the absorption strength of the ink film, in [0, 1].
	// At 1 a fully covered pixel absorbs the ink's full complement.
	InkOpacity float64

	// Paper is the base sheet color the layers are pressed onto.
	Paper RGBA

	// NoiseThreshold is the scuff cutoff in [0, 0.5]: opacity pixels
	// whose scuff noise falls below it are starved to zero.
	NoiseThreshold float64
}

// DefaultComposite returns the press settings of a clean print on white
// stock: slight drift and grain, strong ink, no scuffing.
func DefaultComposite() CompositeConfig {
	return CompositeConfig{
		Misregistration: 1.5,
		Grain:           0.08,
		InkOpacity:      0.85,
		Paper:           Hex("#f7f4ec"),
		NoiseThreshold:  0,
	}
}

// Validate reports whether the configuration is usable.
func (c CompositeConfig) Validate() error {
	if c.Misregistration < 0 {
		return fmt.Errorf("%w: misregistration %g, must be >= 0", ErrInvalidConfig, c.Misregistration)
	}
	if c.Grain < 0 || c.Grain > 1 {
		return fmt.Errorf("%w: grain %g, must be in [0, 1]", ErrInvalidConfig, c.Grain)
	}
	if c.InkOpacity < 0 || c.InkOpacity > 1 {
		return fmt.Errorf("%w: ink opacity %g, must be in [0, 1]", ErrInvalidConfig, c.InkOpacity)
	}
	if c.NoiseThreshold < 0 || c.NoiseThreshold > 0.5 {
		return fmt.Errorf("%w: noise threshold %g, must be in [0, 0.5]", ErrInvalidConfig, c.NoiseThreshold)
	}
	return nil
}
