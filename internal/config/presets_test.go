package config

import (
	"sort"
	"testing"

	"github.com/san-kum/drysim/internal/radial"
)

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("blueberry")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Radius != 0.006 {
		t.Errorf("expected radius 0.006, got %f", cfg.Radius)
	}
	if cfg.Diffusivity != DefaultDiffusivity {
		t.Errorf("unset fields should keep defaults, got D=%g", cfg.Diffusivity)
	}
	if cfg.Name != "blueberry" {
		t.Errorf("expected name blueberry, got %s", cfg.Name)
	}
}

func TestGetPresetReturnsFreshCopy(t *testing.T) {
	a := GetPreset("strawberry")
	a.Radius = 1
	b := GetPreset("strawberry")
	if b.Radius != DefaultRadius {
		t.Error("preset mutated through a returned copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	if !sort.StringsAreSorted(presets) {
		t.Errorf("presets not sorted: %v", presets)
	}
}

func TestPresetsAreRunnable(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
		if missed := radial.MissedCheckpoints(cfg.Params()); len(missed) > 0 {
			t.Errorf("%s: checkpoints %v never captured", name, missed)
		}
		stable := radial.CheckStability(cfg.Params()) == nil
		if stable == (name == "unstable") {
			t.Errorf("%s: unexpected stability %v", name, stable)
		}
	}
}
