package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("built-in defaults must validate: %v", err)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	rs, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Default()
	if rs.Version != want.Version || rs.Form.Window != want.Form.Window {
		t.Errorf("Load(\"\") = %+v, want defaults", rs)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ruleset.yaml")
	yaml := `
version: "2024.2-test"
form:
  window: 7
batting:
  power_hitter_sr: 155
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	rs, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rs.Version != "2024.2-test" {
		t.Errorf("version = %q, want the file's value", rs.Version)
	}
	if rs.Form.Window != 7 {
		t.Errorf("form window = %d, want 7", rs.Form.Window)
	}
	if rs.Batting.PowerHitterSR != 155 {
		t.Errorf("power hitter SR = %v, want 155", rs.Batting.PowerHitterSR)
	}
	// Untouched keys keep their defaults.
	if rs.Bowling.WicketTakerWPM != Default().Bowling.WicketTakerWPM {
		t.Errorf("unset keys must keep defaults, got %v", rs.Bowling.WicketTakerWPM)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("CRICMETRICS_FORM_WINDOW", "9")
	rs, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rs.Form.Window != 9 {
		t.Errorf("form window = %d, want 9 from CRICMETRICS_FORM_WINDOW", rs.Form.Window)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrLoadRuleset) {
		t.Errorf("err = %v, want ErrLoadRuleset", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Ruleset)
	}{
		{"empty version", func(r *Ruleset) { r.Version = "" }},
		{"window too small", func(r *Ruleset) { r.Form.Window = 1 }},
		{"negative trend delta", func(r *Ruleset) { r.Form.TrendDelta = -0.1 }},
		{"phase boundaries out of order", func(r *Ruleset) { r.Format.PowerplayThrough = 16 }},
		{"anchor band inverted", func(r *Ruleset) { r.Batting.AnchorSRLow = 140 }},
		{"zero sample minimum", func(r *Ruleset) { r.Minimum.BallsFaced = 0 }},
		{"impact weights both zero", func(r *Ruleset) {
			r.Impact.BattingWeight = 0
			r.Impact.BowlingWeight = 0
		}},
		{"empty impact version", func(r *Ruleset) { r.Impact.Version = "" }},
	}

	for _, c := range cases {
		rs := Default()
		c.mutate(rs)
		if err := rs.Validate(); !errors.Is(err, ErrInvalidRuleset) {
			t.Errorf("%s: err = %v, want ErrInvalidRuleset", c.name, err)
		}
	}
}
