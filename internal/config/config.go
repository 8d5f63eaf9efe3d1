// Package config defines the versioned analytics ruleset: format shape,
// minimum sample sizes, archetype thresholds, impact weights and form
// parameters. Every number the engine uses lives here so historical results
// stay reproducible — outputs are stamped with Ruleset.Version, and nothing
// in the engine falls back to an implicit default.
package config

// Ruleset is the full, named, versioned configuration object.
type Ruleset struct {
	// Version identifies this threshold/weight set. Classification results
	// and metric vectors carry it so reruns are comparable.
	Version string `koanf:"version"`

	Format  FormatConfig      `koanf:"format"`
	Minimum SampleThresholds  `koanf:"minimum"`
	Batting BattingThresholds `koanf:"batting"`
	Bowling BowlingThresholds `koanf:"bowling"`
	Impact  ImpactWeights     `koanf:"impact"`
	Form    FormConfig        `koanf:"form"`
}

// FormatConfig describes the match format and its phase boundaries.
// Phases are boundary-inclusive and contiguous: powerplay is overs
// 1..PowerplayThrough, middle is PowerplayThrough+1..MiddleThrough, death is
// the rest.
type FormatConfig struct {
	OversPerInnings  int `koanf:"overs_per_innings"`
	BallsPerOver     int `koanf:"balls_per_over"`
	PowerplayThrough int `koanf:"powerplay_through"`
	MiddleThrough    int `koanf:"middle_through"`
}

// SampleThresholds are the minimum sample sizes below which a player is
// explicitly Unclassified rather than given a default label.
type SampleThresholds struct {
	BallsFaced     int `koanf:"balls_faced"`
	BattingInnings int `koanf:"batting_innings"`
	BallsBowled    int `koanf:"balls_bowled"`
	BowlingInnings int `koanf:"bowling_innings"`
}

// BattingThresholds parameterize the batting archetype predicates.
type BattingThresholds struct {
	PowerHitterSR          float64 `koanf:"power_hitter_sr"`
	PowerHitterBoundaryPct float64 `koanf:"power_hitter_boundary_pct"`

	FinisherSR         float64 `koanf:"finisher_sr"`
	FinisherDeathShare float64 `koanf:"finisher_death_share"` // fraction of runs in death overs

	OpenerSR       float64 `koanf:"opener_sr"`
	OpenerPosition float64 `koanf:"opener_position"` // avg batting position at or above which the rule applies

	AnchorSRLow     float64 `koanf:"anchor_sr_low"`
	AnchorSRHigh    float64 `koanf:"anchor_sr_high"`
	AnchorFiftyRate float64 `koanf:"anchor_fifty_rate"` // % of innings reaching fifty

	AccumulatorSRLow   float64 `koanf:"accumulator_sr_low"`
	AccumulatorSRHigh  float64 `koanf:"accumulator_sr_high"`
	AccumulatorAverage float64 `koanf:"accumulator_average"`

	StabilizerPosLow  float64 `koanf:"stabilizer_pos_low"`
	StabilizerPosHigh float64 `koanf:"stabilizer_pos_high"`
	StabilizerAverage float64 `koanf:"stabilizer_average"`
}

// BowlingThresholds parameterize the bowling archetype predicates.
type BowlingThresholds struct {
	DeathEconomy        float64 `koanf:"death_economy"`
	DeathWicketsPerGame float64 `koanf:"death_wickets_per_game"`

	WicketTakerWPM float64 `koanf:"wicket_taker_wpm"` // wickets per match

	EconomistEconomy float64 `koanf:"economist_economy"`
	EconomistDotPct  float64 `koanf:"economist_dot_pct"`

	PowerplayWPM     float64 `koanf:"powerplay_wpm"`
	PowerplayEconomy float64 `koanf:"powerplay_economy"`
}

// ImpactWeights is the named weighting scheme behind the impact score.
// Versioned separately from the archetype thresholds because the two evolve
// on different cadences.
type ImpactWeights struct {
	Version string `koanf:"version"`

	BattingWeight float64 `koanf:"batting_weight"`
	BowlingWeight float64 `koanf:"bowling_weight"`

	// Banded per-match contribution scores (original scale 0–100).
	FiftyScore   float64 `koanf:"fifty_score"`
	ThirtyScore  float64 `koanf:"thirty_score"`
	TwentyScore  float64 `koanf:"twenty_score"`
	ThreeForTen  float64 `koanf:"three_wicket_score"`
	TwoWickets   float64 `koanf:"two_wicket_score"`
	OneWicket    float64 `koanf:"one_wicket_score"`
	BowlingFloor float64 `koanf:"bowling_floor"`

	// DeathPhaseBoost scales a performance by its death-overs share:
	// score × (1 + boost × deathShare), capped at 100.
	DeathPhaseBoost float64 `koanf:"death_phase_boost"`
}

// FormConfig parameterizes the rolling form and trend module.
type FormConfig struct {
	Window     int     `koanf:"window"`
	TrendDelta float64 `koanf:"trend_delta"` // relative threshold, e.g. 0.05 = 5%
}

// Default returns the built-in ruleset. The thresholds mirror published
// T20 analytics conventions; overriding any of them via file or env creates
// a distinct version that callers should bump.
func Default() *Ruleset {
	return &Ruleset{
		Version: "2024.1",
		Format: FormatConfig{
			OversPerInnings:  20,
			BallsPerOver:     6,
			PowerplayThrough: 6,
			MiddleThrough:    15,
		},
		Minimum: SampleThresholds{
			BallsFaced:     60,
			BattingInnings: 10,
			BallsBowled:    120,
			BowlingInnings: 10,
		},
		Batting: BattingThresholds{
			PowerHitterSR:          150,
			PowerHitterBoundaryPct: 18,
			FinisherSR:             140,
			FinisherDeathShare:     0.40,
			OpenerSR:               140,
			OpenerPosition:         2.5,
			AnchorSRLow:            120,
			AnchorSRHigh:           135,
			AnchorFiftyRate:        20,
			AccumulatorSRLow:       115,
			AccumulatorSRHigh:      130,
			AccumulatorAverage:     30,
			StabilizerPosLow:       3,
			StabilizerPosHigh:      5,
			StabilizerAverage:      25,
		},
		Bowling: BowlingThresholds{
			DeathEconomy:        9,
			DeathWicketsPerGame: 0.8,
			WicketTakerWPM:      1.3,
			EconomistEconomy:    7.5,
			EconomistDotPct:     45,
			PowerplayWPM:        1.0,
			PowerplayEconomy:    8,
		},
		Impact: ImpactWeights{
			Version:         "impact-v1",
			BattingWeight:   0.5,
			BowlingWeight:   0.5,
			FiftyScore:      100,
			ThirtyScore:     70,
			TwentyScore:     50,
			ThreeForTen:     100,
			TwoWickets:      70,
			OneWicket:       50,
			BowlingFloor:    20,
			DeathPhaseBoost: 0.25,
		},
		Form: FormConfig{
			Window:     5,
			TrendDelta: 0.05,
		},
	}
}
