// Package metrics derives rate statistics and the impact score from player
// aggregates. Every function is a pure fold over its inputs: same aggregates
// and ruleset in, same vector out.
package metrics

import (
	"math"

	"cricmetrics/internal/config"
	"cricmetrics/internal/model"
)

// Metric names, in the order Compute emits them. Stored and exported values
// key on these strings, so they never change meaning between versions.
const (
	StrikeRate         = "strike_rate"
	BattingAverage     = "batting_average"
	RunsPerInnings     = "runs_per_innings"
	BoundaryPct        = "boundary_pct"
	BattingDotPct      = "dot_pct"
	FiftyRate          = "fifty_rate"
	AvgPosition        = "avg_position"
	DeathRunsShare     = "death_runs_share"
	PowerplayStrikeRt  = "powerplay_strike_rate"
	DeathStrikeRt      = "death_strike_rate"
	Economy            = "economy"
	BowlingAverage     = "bowling_average"
	BowlingStrikeRate  = "bowling_strike_rate"
	WicketsPerMatch    = "wickets_per_match"
	BowlingDotPct      = "dot_ball_pct"
	PowerplayEconomy   = "powerplay_economy"
	PowerplayWicketsPM = "powerplay_wickets_per_match"
	DeathEconomy       = "death_economy"
	DeathWicketsPM     = "death_wickets_per_match"
	ImpactScoreName    = "impact_score"
)

// BattingStrikeRate is runs per 100 balls faced. Undefined at zero balls.
func BattingStrikeRate(b model.BattingAggregate) model.Stat {
	return model.Ratio(float64(b.Runs), float64(b.Balls), 100)
}

// Average is runs per dismissal. A never-dismissed batter has no average,
// not an infinite one.
func Average(b model.BattingAggregate) model.Stat {
	return model.Ratio(float64(b.Runs), float64(b.Dismissals), 1)
}

// BoundaryPercent is the share of balls faced hit for four or six.
func BoundaryPercent(b model.BattingAggregate) model.Stat {
	return model.Ratio(float64(b.Fours+b.Sixes), float64(b.Balls), 100)
}

// DotPercent is the share of balls faced scored off for nothing.
func DotPercent(b model.BattingAggregate) model.Stat {
	return model.Ratio(float64(b.Dots), float64(b.Balls), 100)
}

// EconomyRate is runs conceded per over of legal deliveries.
func EconomyRate(w model.BowlingAggregate, ballsPerOver int) model.Stat {
	return model.Ratio(float64(w.Runs)*float64(ballsPerOver), float64(w.Balls), 1)
}

// BowlerAverage is runs conceded per wicket taken.
func BowlerAverage(w model.BowlingAggregate) model.Stat {
	return model.Ratio(float64(w.Runs), float64(w.Wickets), 1)
}

// BowlerStrikeRate is legal balls bowled per wicket taken.
func BowlerStrikeRate(w model.BowlingAggregate) model.Stat {
	return model.Ratio(float64(w.Balls), float64(w.Wickets), 1)
}

// BowlerDotPercent is the share of legal deliveries conceding nothing.
func BowlerDotPercent(w model.BowlingAggregate) model.Stat {
	return model.Ratio(float64(w.Dots), float64(w.Balls), 100)
}

func phaseStrikeRate(p model.PhaseBatting) model.Stat {
	return model.Ratio(float64(p.Runs), float64(p.Balls), 100)
}

func phaseEconomy(p model.PhaseBowling, ballsPerOver int) model.Stat {
	return model.Ratio(float64(p.Runs)*float64(ballsPerOver), float64(p.Balls), 1)
}

// Compute builds the full ordered metric vector for one player over the given
// matches. The vector is stamped with the ruleset version so persisted runs
// remain comparable.
func Compute(player, window string, matches []model.PlayerMatchAggregate, profile model.PlayerSeasonProfile, rs *config.Ruleset) model.MetricVector {
	v := model.MetricVector{
		Player:         player,
		Window:         window,
		RulesetVersion: rs.Version,
	}
	bat := profile.Batting
	bowl := profile.Bowling
	bpo := rs.Format.BallsPerOver

	v.Put(StrikeRate, BattingStrikeRate(bat))
	v.Put(BattingAverage, Average(bat))
	v.Put(RunsPerInnings, model.Ratio(float64(bat.Runs), float64(bat.Innings), 1))
	v.Put(BoundaryPct, BoundaryPercent(bat))
	v.Put(BattingDotPct, DotPercent(bat))
	v.Put(FiftyRate, model.Ratio(float64(bat.Fifties+bat.Hundreds), float64(bat.Innings), 100))
	v.Put(AvgPosition, averagePosition(matches))
	v.Put(DeathRunsShare, model.Ratio(float64(bat.Phases[model.PhaseDeath].Runs), float64(bat.Runs), 1))
	v.Put(PowerplayStrikeRt, phaseStrikeRate(bat.Phases[model.PhasePowerplay]))
	v.Put(DeathStrikeRt, phaseStrikeRate(bat.Phases[model.PhaseDeath]))

	v.Put(Economy, EconomyRate(bowl, bpo))
	v.Put(BowlingAverage, BowlerAverage(bowl))
	v.Put(BowlingStrikeRate, BowlerStrikeRate(bowl))
	v.Put(WicketsPerMatch, model.Ratio(float64(bowl.Wickets), float64(bowl.Innings), 1))
	v.Put(BowlingDotPct, BowlerDotPercent(bowl))
	v.Put(PowerplayEconomy, phaseEconomy(bowl.Phases[model.PhasePowerplay], bpo))
	v.Put(PowerplayWicketsPM, model.Ratio(float64(bowl.Phases[model.PhasePowerplay].Wickets), float64(bowl.Innings), 1))
	v.Put(DeathEconomy, phaseEconomy(bowl.Phases[model.PhaseDeath], bpo))
	v.Put(DeathWicketsPM, model.Ratio(float64(bowl.Phases[model.PhaseDeath].Wickets), float64(bowl.Innings), 1))

	v.Put(ImpactScoreName, ImpactScore(matches, rs.Impact))

	return v
}

func averagePosition(matches []model.PlayerMatchAggregate) model.Stat {
	var sum, n float64
	for _, m := range matches {
		if m.Position > 0 {
			sum += float64(m.Position)
			n++
		}
	}
	return model.Ratio(sum, n, 1)
}

// MatchValue extracts a single-match value of a metric for form tracking.
// Undefined when the player's match sample cannot support it (a batter who
// did not bowl has no per-match economy).
func MatchValue(a model.PlayerMatchAggregate, name string, ballsPerOver int) model.Stat {
	switch name {
	case "runs":
		if a.Batting.Innings == 0 {
			return model.NoStat()
		}
		return model.StatOf(float64(a.Batting.Runs))
	case StrikeRate:
		return BattingStrikeRate(a.Batting)
	case BoundaryPct:
		return BoundaryPercent(a.Batting)
	case BattingDotPct:
		return DotPercent(a.Batting)
	case "wickets":
		if a.Bowling.Innings == 0 {
			return model.NoStat()
		}
		return model.StatOf(float64(a.Bowling.Wickets))
	case Economy:
		return EconomyRate(a.Bowling, ballsPerOver)
	case BowlingDotPct:
		return BowlerDotPercent(a.Bowling)
	default:
		return model.NoStat()
	}
}

// HigherIsBetter reports the improvement direction of a metric, for trend
// detection. Economy and dot-percent-against metrics improve downward.
func HigherIsBetter(name string) bool {
	switch name {
	case Economy, BowlingAverage, BowlingStrikeRate, BattingDotPct,
		PowerplayEconomy, DeathEconomy:
		return false
	default:
		return true
	}
}

// ImpactScore measures contribution to wins: only matches the player's team
// won count. Each won match yields a banded 0–100 batting and/or bowling
// contribution, boosted by the player's death-overs share and capped at 100,
// and the per-side means are combined with the configured weights.
//
// Undefined when the player has no won-match contribution at all.
func ImpactScore(matches []model.PlayerMatchAggregate, w config.ImpactWeights) model.Stat {
	var batSum, bowlSum float64
	var batN, bowlN int

	for _, m := range matches {
		if !m.TeamWon {
			continue
		}
		if m.Batting.Innings > 0 {
			batSum += battingContribution(m.Batting, w)
			batN++
		}
		if m.Bowling.Innings > 0 {
			bowlSum += bowlingContribution(m.Bowling, w)
			bowlN++
		}
	}

	switch {
	case batN > 0 && bowlN > 0:
		bat := batSum / float64(batN)
		bowl := bowlSum / float64(bowlN)
		return model.StatOf((w.BattingWeight*bat + w.BowlingWeight*bowl) /
			(w.BattingWeight + w.BowlingWeight))
	case batN > 0:
		return model.StatOf(batSum / float64(batN))
	case bowlN > 0:
		return model.StatOf(bowlSum / float64(bowlN))
	default:
		return model.NoStat()
	}
}

func battingContribution(b model.BattingAggregate, w config.ImpactWeights) float64 {
	var score float64
	switch {
	case b.Runs >= 50:
		score = w.FiftyScore
	case b.Runs >= 30:
		score = w.ThirtyScore
	case b.Runs >= 20:
		score = w.TwentyScore
	default:
		score = float64(b.Runs) * 2
	}
	if b.Runs > 0 {
		share := float64(b.Phases[model.PhaseDeath].Runs) / float64(b.Runs)
		score *= 1 + w.DeathPhaseBoost*share
	}
	return math.Min(score, 100)
}

func bowlingContribution(b model.BowlingAggregate, w config.ImpactWeights) float64 {
	var score float64
	switch {
	case b.Wickets >= 3:
		score = w.ThreeForTen
	case b.Wickets == 2:
		score = w.TwoWickets
	case b.Wickets == 1:
		score = w.OneWicket
	default:
		score = w.BowlingFloor
	}
	if b.Wickets > 0 {
		share := float64(b.Phases[model.PhaseDeath].Wickets) / float64(b.Wickets)
		score *= 1 + w.DeathPhaseBoost*share
	}
	return math.Min(score, 100)
}
