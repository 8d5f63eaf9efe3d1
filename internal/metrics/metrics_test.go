package metrics

import (
	"reflect"
	"testing"

	"cricmetrics/internal/config"
	"cricmetrics/internal/model"
)

func TestRates_UndefinedOnEmptyDenominator(t *testing.T) {
	var bat model.BattingAggregate
	var bowl model.BowlingAggregate

	if BattingStrikeRate(bat).Valid {
		t.Error("strike rate must be undefined at zero balls faced")
	}
	if Average(bat).Valid {
		t.Error("average must be undefined at zero dismissals")
	}
	if EconomyRate(bowl, 6).Valid {
		t.Error("economy must be undefined at zero legal balls")
	}
	if BowlerAverage(bowl).Valid {
		t.Error("bowling average must be undefined at zero wickets")
	}
}

func TestRates_KnownValues(t *testing.T) {
	bat := model.BattingAggregate{Runs: 90, Balls: 60, Fours: 8, Sixes: 4, Dots: 15, Dismissals: 2}
	if sr := BattingStrikeRate(bat); !sr.Valid || sr.Value != 150 {
		t.Errorf("strike rate = %v, want 150", sr)
	}
	if avg := Average(bat); !avg.Valid || avg.Value != 45 {
		t.Errorf("average = %v, want 45", avg)
	}
	if bp := BoundaryPercent(bat); !bp.Valid || bp.Value != 20 {
		t.Errorf("boundary%% = %v, want 20", bp)
	}
	if dp := DotPercent(bat); !dp.Valid || dp.Value != 25 {
		t.Errorf("dot%% = %v, want 25", dp)
	}

	bowl := model.BowlingAggregate{Balls: 24, Runs: 32, Wickets: 2, Dots: 12}
	if eco := EconomyRate(bowl, 6); !eco.Valid || eco.Value != 8 {
		t.Errorf("economy = %v, want 8", eco)
	}
	if sr := BowlerStrikeRate(bowl); !sr.Valid || sr.Value != 12 {
		t.Errorf("bowling strike rate = %v, want 12", sr)
	}
	if dp := BowlerDotPercent(bowl); !dp.Valid || dp.Value != 50 {
		t.Errorf("bowling dot%% = %v, want 50", dp)
	}
}

func TestCompute_DeterministicAndStamped(t *testing.T) {
	rs := config.Default()
	matches := []model.PlayerMatchAggregate{
		{Player: "p", Position: 2, TeamWon: true,
			Batting: model.BattingAggregate{Innings: 1, Runs: 55, Balls: 40}},
	}
	profile := model.PlayerSeasonProfile{Player: "p", Matches: 1}
	profile.Batting.Add(matches[0].Batting)

	v1 := Compute("p", "season", matches, profile, rs)
	v2 := Compute("p", "season", matches, profile, rs)

	if v1.RulesetVersion != rs.Version {
		t.Errorf("vector version = %q, want %q", v1.RulesetVersion, rs.Version)
	}
	if !reflect.DeepEqual(v1, v2) {
		t.Error("Compute must be deterministic for identical input")
	}

	names := make([]string, len(v1.Metrics))
	for i, m := range v1.Metrics {
		names[i] = m.Name
	}
	for i, want := range []string{StrikeRate, BattingAverage, RunsPerInnings} {
		if names[i] != want {
			t.Errorf("metric[%d] = %q, want %q (order must be fixed)", i, names[i], want)
		}
	}
}

func TestImpactScore_OnlyWonMatchesCount(t *testing.T) {
	w := config.Default().Impact

	lost := model.PlayerMatchAggregate{
		TeamWon: false,
		Batting: model.BattingAggregate{Innings: 1, Runs: 95},
	}
	if s := ImpactScore([]model.PlayerMatchAggregate{lost}, w); s.Valid {
		t.Error("impact must be undefined with no won-match data")
	}

	won := model.PlayerMatchAggregate{
		TeamWon: true,
		Batting: model.BattingAggregate{Innings: 1, Runs: 55},
	}
	s := ImpactScore([]model.PlayerMatchAggregate{lost, won}, w)
	if !s.Valid || s.Value != 100 {
		t.Errorf("impact = %v, want 100 (one fifty in the only won match)", s)
	}
}

func TestImpactScore_BandsAndDeathBoost(t *testing.T) {
	w := config.Default().Impact

	// 10 runs, none at the death: banded as runs*2 = 20.
	quiet := model.PlayerMatchAggregate{
		TeamWon: true,
		Batting: model.BattingAggregate{Innings: 1, Runs: 10},
	}
	if s := ImpactScore([]model.PlayerMatchAggregate{quiet}, w); !s.Valid || s.Value != 20 {
		t.Errorf("impact = %v, want 20", s)
	}

	// 35 runs all in death overs: 70 * (1 + 0.25*1.0) = 87.5.
	finisher := model.PlayerMatchAggregate{
		TeamWon: true,
		Batting: model.BattingAggregate{Innings: 1, Runs: 35},
	}
	finisher.Batting.Phases[model.PhaseDeath].Runs = 35
	if s := ImpactScore([]model.PlayerMatchAggregate{finisher}, w); !s.Valid || s.Value != 87.5 {
		t.Errorf("impact = %v, want 87.5", s)
	}

	// Boost cannot push past 100.
	big := model.PlayerMatchAggregate{
		TeamWon: true,
		Batting: model.BattingAggregate{Innings: 1, Runs: 80},
	}
	big.Batting.Phases[model.PhaseDeath].Runs = 80
	if s := ImpactScore([]model.PlayerMatchAggregate{big}, w); !s.Valid || s.Value != 100 {
		t.Errorf("impact = %v, want capped at 100", s)
	}
}

func TestImpactScore_WeightedBattingBowling(t *testing.T) {
	w := config.Default().Impact

	allRounder := model.PlayerMatchAggregate{
		TeamWon: true,
		Batting: model.BattingAggregate{Innings: 1, Runs: 55},   // 100
		Bowling: model.BowlingAggregate{Innings: 1, Wickets: 2}, // 70
	}
	s := ImpactScore([]model.PlayerMatchAggregate{allRounder}, w)
	if !s.Valid || s.Value != 85 {
		t.Errorf("impact = %v, want 85 (equal-weight mean of 100 and 70)", s)
	}
}

func TestMatchValue_RoleGating(t *testing.T) {
	bowlerOnly := model.PlayerMatchAggregate{
		Bowling: model.BowlingAggregate{Innings: 1, Balls: 24, Runs: 20, Wickets: 2},
	}
	if v := MatchValue(bowlerOnly, "runs", 6); v.Valid {
		t.Error("per-match runs must be undefined for a player who did not bat")
	}
	if v := MatchValue(bowlerOnly, "wickets", 6); !v.Valid || v.Value != 2 {
		t.Errorf("wickets = %v, want 2", v)
	}
	if v := MatchValue(bowlerOnly, Economy, 6); !v.Valid || v.Value != 5 {
		t.Errorf("economy = %v, want 5", v)
	}
	if v := MatchValue(bowlerOnly, "no_such_metric", 6); v.Valid {
		t.Error("unknown metric must be undefined")
	}
}

func TestHigherIsBetter_Directions(t *testing.T) {
	if !HigherIsBetter(StrikeRate) {
		t.Error("strike rate improves upward")
	}
	if HigherIsBetter(Economy) {
		t.Error("economy improves downward")
	}
}
