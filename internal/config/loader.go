package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Ruleset by layering, lowest precedence first:
//  1. built-in defaults (Default())
//  2. YAML file at path, when path is non-empty
//  3. environment variables with the CRICMETRICS_ prefix
//     (CRICMETRICS_FORM_WINDOW=7 → form.window)
//
// The result is validated; a broken ruleset is a startup failure, never a
// silently-defaulted run.
func Load(path string) (*Ruleset, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadRuleset, path, err)
		}
	}

	envProvider := env.Provider("CRICMETRICS_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "CRICMETRICS_"))
		// Single underscore separates sections from keys with underscores in
		// them, so only split on the first one: FORM_WINDOW → form.window,
		// MINIMUM_BALLS_FACED → minimum.balls_faced.
		return strings.Replace(s, "_", ".", 1)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadRuleset, err)
	}

	cfg := *Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadRuleset, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the ruleset for values the engine cannot run with.
func (r *Ruleset) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidRuleset, fmt.Sprintf(format, args...))
	}

	if r.Version == "" {
		return fail("version must be set")
	}
	f := r.Format
	if f.OversPerInnings < 1 || f.BallsPerOver < 1 {
		return fail("format: overs_per_innings and balls_per_over must be positive")
	}
	if f.PowerplayThrough < 1 || f.PowerplayThrough >= f.MiddleThrough || f.MiddleThrough >= f.OversPerInnings {
		return fail("format: phase boundaries must satisfy 1 <= powerplay < middle < overs_per_innings (got %d, %d, %d)",
			f.PowerplayThrough, f.MiddleThrough, f.OversPerInnings)
	}
	if r.Minimum.BallsFaced < 1 || r.Minimum.BattingInnings < 1 ||
		r.Minimum.BallsBowled < 1 || r.Minimum.BowlingInnings < 1 {
		return fail("minimum: all sample thresholds must be positive")
	}
	if r.Batting.AnchorSRLow >= r.Batting.AnchorSRHigh {
		return fail("batting: anchor_sr_low must be below anchor_sr_high")
	}
	if r.Batting.AccumulatorSRLow >= r.Batting.AccumulatorSRHigh {
		return fail("batting: accumulator_sr_low must be below accumulator_sr_high")
	}
	if r.Impact.Version == "" {
		return fail("impact: version must be set")
	}
	if r.Impact.BattingWeight < 0 || r.Impact.BowlingWeight < 0 ||
		r.Impact.BattingWeight+r.Impact.BowlingWeight == 0 {
		return fail("impact: batting_weight and bowling_weight must be non-negative and not both zero")
	}
	if r.Form.Window < 2 {
		return fail("form: window must be at least 2 (got %d)", r.Form.Window)
	}
	if r.Form.TrendDelta < 0 {
		return fail("form: trend_delta must be non-negative")
	}
	return nil
}
