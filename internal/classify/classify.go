// Package classify assigns players to batting and bowling archetypes by
// evaluating ordered threshold rules against a metric vector. The archetype
// set is closed; unknown labels cannot appear in output.
package classify

import (
	"cricmetrics/internal/config"
	"cricmetrics/internal/metrics"
	"cricmetrics/internal/model"
)

// RoleGroup separates the two independent rule families. A player can hold
// one archetype per group.
type RoleGroup int

const (
	RoleBatting RoleGroup = iota
	RoleBowling
)

func (r RoleGroup) String() string {
	if r == RoleBowling {
		return "bowling"
	}
	return "batting"
}

// Archetype is one label from the closed playing-style taxonomy.
type Archetype int

const (
	ArchetypeUnclassified Archetype = iota

	ArchetypePowerHitter
	ArchetypeFinisher
	ArchetypeAggressiveOpener
	ArchetypeAnchor
	ArchetypeAccumulator
	ArchetypeMiddleOrderStabilizer
	ArchetypeBalancedBatter

	ArchetypeDeathSpecialist
	ArchetypeWicketTaker
	ArchetypeEconomist
	ArchetypePowerplayExpert
	ArchetypeAllPhaseBowler
)

var archetypeNames = map[Archetype]string{
	ArchetypeUnclassified:          "Unclassified",
	ArchetypePowerHitter:           "Power Hitter",
	ArchetypeFinisher:              "Finisher",
	ArchetypeAggressiveOpener:      "Aggressive Opener",
	ArchetypeAnchor:                "Anchor",
	ArchetypeAccumulator:           "Accumulator",
	ArchetypeMiddleOrderStabilizer: "Middle Order Stabilizer",
	ArchetypeBalancedBatter:        "Balanced Batter",
	ArchetypeDeathSpecialist:       "Death Specialist",
	ArchetypeWicketTaker:           "Wicket Taker",
	ArchetypeEconomist:             "Economist",
	ArchetypePowerplayExpert:       "Powerplay Expert",
	ArchetypeAllPhaseBowler:        "All-Phase Bowler",
}

func (a Archetype) String() string { return archetypeNames[a] }

// ParseArchetype maps a stored label back to its Archetype. Unknown labels
// come back as Unclassified with ok=false.
func ParseArchetype(label string) (Archetype, bool) {
	for a, name := range archetypeNames {
		if name == label {
			return a, true
		}
	}
	return ArchetypeUnclassified, false
}

// Role returns the group an archetype belongs to.
func (a Archetype) Role() RoleGroup {
	switch a {
	case ArchetypeDeathSpecialist, ArchetypeWicketTaker,
		ArchetypeEconomist, ArchetypePowerplayExpert, ArchetypeAllPhaseBowler:
		return RoleBowling
	default:
		return RoleBatting
	}
}

// rule is one archetype predicate. Priority breaks ties: when several rules
// match, the lowest priority number wins, so rule ordering is explicit and
// not an accident of map iteration.
type rule struct {
	archetype Archetype
	priority  int
	match     func(v model.MetricVector, rs *config.Ruleset) bool
}

func metric(v model.MetricVector, name string) (float64, bool) {
	s, ok := v.Get(name)
	if !ok || !s.Valid {
		return 0, false
	}
	return s.Value, true
}

var battingRules = []rule{
	{ArchetypePowerHitter, 1, func(v model.MetricVector, rs *config.Ruleset) bool {
		sr, ok1 := metric(v, metrics.StrikeRate)
		bp, ok2 := metric(v, metrics.BoundaryPct)
		return ok1 && ok2 && sr >= rs.Batting.PowerHitterSR && bp >= rs.Batting.PowerHitterBoundaryPct
	}},
	{ArchetypeFinisher, 2, func(v model.MetricVector, rs *config.Ruleset) bool {
		sr, ok1 := metric(v, metrics.StrikeRate)
		ds, ok2 := metric(v, metrics.DeathRunsShare)
		return ok1 && ok2 && sr >= rs.Batting.FinisherSR && ds >= rs.Batting.FinisherDeathShare
	}},
	{ArchetypeAggressiveOpener, 3, func(v model.MetricVector, rs *config.Ruleset) bool {
		sr, ok1 := metric(v, metrics.StrikeRate)
		pos, ok2 := metric(v, metrics.AvgPosition)
		return ok1 && ok2 && sr >= rs.Batting.OpenerSR && pos <= rs.Batting.OpenerPosition
	}},
	{ArchetypeAnchor, 4, func(v model.MetricVector, rs *config.Ruleset) bool {
		sr, ok1 := metric(v, metrics.StrikeRate)
		fr, ok2 := metric(v, metrics.FiftyRate)
		return ok1 && ok2 &&
			sr >= rs.Batting.AnchorSRLow && sr <= rs.Batting.AnchorSRHigh &&
			fr >= rs.Batting.AnchorFiftyRate
	}},
	{ArchetypeAccumulator, 5, func(v model.MetricVector, rs *config.Ruleset) bool {
		sr, ok1 := metric(v, metrics.StrikeRate)
		avg, ok2 := metric(v, metrics.BattingAverage)
		return ok1 && ok2 &&
			sr >= rs.Batting.AccumulatorSRLow && sr <= rs.Batting.AccumulatorSRHigh &&
			avg >= rs.Batting.AccumulatorAverage
	}},
	{ArchetypeMiddleOrderStabilizer, 6, func(v model.MetricVector, rs *config.Ruleset) bool {
		pos, ok1 := metric(v, metrics.AvgPosition)
		avg, ok2 := metric(v, metrics.BattingAverage)
		return ok1 && ok2 &&
			pos >= rs.Batting.StabilizerPosLow && pos <= rs.Batting.StabilizerPosHigh &&
			avg >= rs.Batting.StabilizerAverage
	}},
	{ArchetypeBalancedBatter, 7, func(v model.MetricVector, rs *config.Ruleset) bool {
		return true
	}},
}

var bowlingRules = []rule{
	{ArchetypeDeathSpecialist, 1, func(v model.MetricVector, rs *config.Ruleset) bool {
		eco, ok1 := metric(v, metrics.DeathEconomy)
		wpm, ok2 := metric(v, metrics.DeathWicketsPM)
		return ok1 && ok2 && eco <= rs.Bowling.DeathEconomy && wpm >= rs.Bowling.DeathWicketsPerGame
	}},
	{ArchetypeWicketTaker, 2, func(v model.MetricVector, rs *config.Ruleset) bool {
		wpm, ok := metric(v, metrics.WicketsPerMatch)
		return ok && wpm >= rs.Bowling.WicketTakerWPM
	}},
	{ArchetypeEconomist, 3, func(v model.MetricVector, rs *config.Ruleset) bool {
		eco, ok1 := metric(v, metrics.Economy)
		dot, ok2 := metric(v, metrics.BowlingDotPct)
		return ok1 && ok2 && eco <= rs.Bowling.EconomistEconomy && dot >= rs.Bowling.EconomistDotPct
	}},
	{ArchetypePowerplayExpert, 4, func(v model.MetricVector, rs *config.Ruleset) bool {
		wpm, ok1 := metric(v, metrics.PowerplayWicketsPM)
		eco, ok2 := metric(v, metrics.PowerplayEconomy)
		return ok1 && ok2 && wpm >= rs.Bowling.PowerplayWPM && eco <= rs.Bowling.PowerplayEconomy
	}},
	{ArchetypeAllPhaseBowler, 5, func(v model.MetricVector, rs *config.Ruleset) bool {
		return true
	}},
}

// Outcome is one group's classification verdict. Qualified is false when the
// player's sample size is below the ruleset minimums, in which case the
// archetype is Unclassified.
type Outcome struct {
	Qualified bool
	Archetype Archetype
}

// Result is the full classification for one player under one ruleset.
type Result struct {
	Player         string
	RulesetVersion string
	Batting        Outcome
	Bowling        Outcome
	Impact         model.Stat
}

// Classify evaluates both rule groups for a player. Qualification is by
// profile sample size; a qualified player always gets a label (the fallback
// rules match everything), and the same vector always produces the same
// result.
func Classify(v model.MetricVector, profile model.PlayerSeasonProfile, rs *config.Ruleset) Result {
	res := Result{
		Player:         v.Player,
		RulesetVersion: rs.Version,
	}
	if s, ok := v.Get(metrics.ImpactScoreName); ok {
		res.Impact = s
	}

	if profile.Batting.Balls >= rs.Minimum.BallsFaced &&
		profile.Batting.Innings >= rs.Minimum.BattingInnings {
		res.Batting = Outcome{Qualified: true, Archetype: apply(battingRules, v, rs)}
	}
	if profile.Bowling.Balls >= rs.Minimum.BallsBowled &&
		profile.Bowling.Innings >= rs.Minimum.BowlingInnings {
		res.Bowling = Outcome{Qualified: true, Archetype: apply(bowlingRules, v, rs)}
	}
	return res
}

func apply(rules []rule, v model.MetricVector, rs *config.Ruleset) Archetype {
	best := ArchetypeUnclassified
	bestPrio := 0
	for _, r := range rules {
		if !r.match(v, rs) {
			continue
		}
		if best == ArchetypeUnclassified || r.priority < bestPrio {
			best = r.archetype
			bestPrio = r.priority
		}
	}
	return best
}
