package riso

import (
	"errors"
	"testing"
)

func TestHalftoneConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*HalftoneConfig)
		wantErr bool
	}{
		{"default_ok", func(c *HalftoneConfig) {}, false},
		{"fm_ok", func(c *HalftoneConfig) { c.Mode = HalftoneFM }, false},
		{"zero_pitch", func(c *HalftoneConfig) { c.DotPitch = 0 }, true},
		{"negative_pitch", func(c *HalftoneConfig) { c.DotPitch = -1 }, true},
		{"negative_scale", func(c *HalftoneConfig) { c.Scale = -0.1 }, true},
		{"bad_mode", func(c *HalftoneConfig) { c.Mode = HalftoneMode(7) }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultHalftone()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestCompositeConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CompositeConfig)
		wantErr bool
	}{
		{"default_ok", func(c *CompositeConfig) {}, false},
		{"zero_everything", func(c *CompositeConfig) { *c = CompositeConfig{} }, false},
		{"negative_misreg", func(c *CompositeConfig) { c.Misregistration = -1 }, true},
		{"grain_too_big", func(c *CompositeConfig) { c.Grain = 1.01 }, true},
		{"opacity_too_big", func(c *CompositeConfig) { c.InkOpacity = 2 }, true},
		{"negative_opacity", func(c *CompositeConfig) { c.InkOpacity = -0.5 }, true},
		{"noise_too_big", func(c *CompositeConfig) { c.NoiseThreshold = 0.6 }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultComposite()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestHalftoneMode_String(t *testing.T) {
	if HalftoneAM.String() != "am" || HalftoneFM.String() != "fm" {
		t.Errorf("mode strings = %q/%q, want am/fm", HalftoneAM, HalftoneFM)
	}
}

func TestParseHalftoneMode(t *testing.T) {
	tests := []struct {
		in      string
		want    HalftoneMode
		wantErr bool
	}{
		{"am", HalftoneAM, false},
		{"AM", HalftoneAM, false},
		{"fm", HalftoneFM, false},
		{"FM", HalftoneFM, false},
		{"stochastic", 0, true},
		{"", 0, true},
	}
	for _, tc := range tests {
		got, err := ParseHalftoneMode(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("ParseHalftoneMode(%q) error = %v, want ErrInvalidConfig", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseHalftoneMode(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
}
