package classify

import (
	"testing"

	"cricmetrics/internal/config"
	"cricmetrics/internal/metrics"
	"cricmetrics/internal/model"
)

// qualifiedProfile returns a profile comfortably above the default minimums
// for both roles.
func qualifiedProfile() model.PlayerSeasonProfile {
	return model.PlayerSeasonProfile{
		Player:  "p",
		Matches: 14,
		Batting: model.BattingAggregate{Innings: 14, Balls: 200, Runs: 300},
		Bowling: model.BowlingAggregate{Innings: 14, Balls: 300, Runs: 350, Wickets: 10},
	}
}

func vectorWith(entries map[string]float64) model.MetricVector {
	v := model.MetricVector{Player: "p", Window: "season", RulesetVersion: "test"}
	for _, name := range []string{
		metrics.StrikeRate, metrics.BattingAverage, metrics.BoundaryPct,
		metrics.FiftyRate, metrics.AvgPosition, metrics.DeathRunsShare,
		metrics.Economy, metrics.BowlingDotPct, metrics.WicketsPerMatch,
		metrics.PowerplayEconomy, metrics.PowerplayWicketsPM,
		metrics.DeathEconomy, metrics.DeathWicketsPM,
	} {
		if val, ok := entries[name]; ok {
			v.Put(name, model.StatOf(val))
		} else {
			v.Put(name, model.NoStat())
		}
	}
	return v
}

func TestClassify_PowerHitterBeatsFinisherOnTie(t *testing.T) {
	rs := config.Default()
	// Satisfies both the power hitter rule (SR 160, boundary% 20) and the
	// finisher rule (SR 160, death share 0.5).
	v := vectorWith(map[string]float64{
		metrics.StrikeRate:     160,
		metrics.BoundaryPct:    20,
		metrics.DeathRunsShare: 0.5,
	})

	res := Classify(v, qualifiedProfile(), rs)
	if !res.Batting.Qualified {
		t.Fatal("expected batting qualification")
	}
	if res.Batting.Archetype != ArchetypePowerHitter {
		t.Errorf("archetype = %v, want Power Hitter (lower priority number wins)", res.Batting.Archetype)
	}
}

func TestClassify_UnqualifiedBelowSampleMinimums(t *testing.T) {
	rs := config.Default()
	small := model.PlayerSeasonProfile{
		Player:  "p",
		Matches: 2,
		Batting: model.BattingAggregate{Innings: 2, Balls: 20, Runs: 60},
	}
	v := vectorWith(map[string]float64{
		metrics.StrikeRate:  300,
		metrics.BoundaryPct: 50,
	})

	res := Classify(v, small, rs)
	if res.Batting.Qualified {
		t.Error("2 innings / 20 balls must not qualify for batting classification")
	}
	if res.Batting.Archetype != ArchetypeUnclassified {
		t.Errorf("archetype = %v, want Unclassified", res.Batting.Archetype)
	}
	if res.Bowling.Qualified {
		t.Error("no bowling sample must not qualify for bowling classification")
	}
}

func TestClassify_FallbackWhenNoRuleMatches(t *testing.T) {
	rs := config.Default()
	// Modest numbers that hit no named batting archetype.
	v := vectorWith(map[string]float64{
		metrics.StrikeRate:     105,
		metrics.BattingAverage: 18,
		metrics.AvgPosition:    7,
		metrics.FiftyRate:      5,
		metrics.BoundaryPct:    8,
		metrics.DeathRunsShare: 0.1,
	})

	res := Classify(v, qualifiedProfile(), rs)
	if res.Batting.Archetype != ArchetypeBalancedBatter {
		t.Errorf("archetype = %v, want the Balanced Batter fallback", res.Batting.Archetype)
	}
}

func TestClassify_DeathSpecialistOutranksWicketTaker(t *testing.T) {
	rs := config.Default()
	v := vectorWith(map[string]float64{
		metrics.DeathEconomy:    8.5,
		metrics.DeathWicketsPM:  1.0,
		metrics.WicketsPerMatch: 1.6,
		metrics.Economy:         8.8,
		metrics.BowlingDotPct:   40,
	})

	res := Classify(v, qualifiedProfile(), rs)
	if !res.Bowling.Qualified {
		t.Fatal("expected bowling qualification")
	}
	if res.Bowling.Archetype != ArchetypeDeathSpecialist {
		t.Errorf("archetype = %v, want Death Specialist", res.Bowling.Archetype)
	}
}

func TestClassify_EconomistNeedsBothThresholds(t *testing.T) {
	rs := config.Default()
	// Economy is good but the dot percentage misses the threshold.
	v := vectorWith(map[string]float64{
		metrics.Economy:         7.0,
		metrics.BowlingDotPct:   40,
		metrics.WicketsPerMatch: 0.7,
	})

	res := Classify(v, qualifiedProfile(), rs)
	if res.Bowling.Archetype == ArchetypeEconomist {
		t.Error("economist must require both economy and dot% thresholds")
	}
	if res.Bowling.Archetype != ArchetypeAllPhaseBowler {
		t.Errorf("archetype = %v, want the All-Phase Bowler fallback", res.Bowling.Archetype)
	}
}

func TestClassify_DeterministicAndVersionStamped(t *testing.T) {
	rs := config.Default()
	v := vectorWith(map[string]float64{
		metrics.StrikeRate:  125,
		metrics.FiftyRate:   25,
		metrics.BoundaryPct: 12,
	})

	r1 := Classify(v, qualifiedProfile(), rs)
	r2 := Classify(v, qualifiedProfile(), rs)
	if r1 != r2 {
		t.Error("classification must be deterministic for identical input")
	}
	if r1.RulesetVersion != rs.Version {
		t.Errorf("result version = %q, want %q", r1.RulesetVersion, rs.Version)
	}
	if r1.Batting.Archetype != ArchetypeAnchor {
		t.Errorf("archetype = %v, want Anchor (SR 125, fifty rate 25)", r1.Batting.Archetype)
	}
}

func TestParseArchetype_RoundTrip(t *testing.T) {
	for a := ArchetypeUnclassified; a <= ArchetypeAllPhaseBowler; a++ {
		got, ok := ParseArchetype(a.String())
		if !ok || got != a {
			t.Errorf("ParseArchetype(%q) = %v, %v", a.String(), got, ok)
		}
	}
	if _, ok := ParseArchetype("Mystery Spinner"); ok {
		t.Error("unknown label must not parse")
	}
}
