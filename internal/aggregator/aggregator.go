package aggregator

import (
	"fmt"
	"sort"

	"cricmetrics/internal/config"
	"cricmetrics/internal/model"
)

// ValidationError describes one rejected delivery. Invalid deliveries are
// collected and skipped; they never abort the batch or leak into another
// player's aggregate.
type ValidationError struct {
	MatchID string
	Innings int
	Over    int
	Ball    int
	Reason  string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("match %s innings %d over %d ball %d: %s",
		e.MatchID, e.Innings, e.Over, e.Ball, e.Reason)
}

// PhaseFor maps a 1-based over number to its innings phase. Boundaries are
// inclusive: overs 1..PowerplayThrough are powerplay, ..MiddleThrough middle,
// the rest death.
func PhaseFor(over int, f config.FormatConfig) model.Phase {
	switch {
	case over <= f.PowerplayThrough:
		return model.PhasePowerplay
	case over <= f.MiddleThrough:
		return model.PhaseMiddle
	default:
		return model.PhaseDeath
	}
}

func validate(d model.Delivery, f config.FormatConfig) string {
	switch {
	case d.MatchID == "":
		return "missing match id"
	case d.Innings < 1:
		return fmt.Sprintf("invalid innings %d", d.Innings)
	case d.Over < 1 || d.Over > f.OversPerInnings:
		return fmt.Sprintf("over %d out of range 1–%d", d.Over, f.OversPerInnings)
	case d.Ball < 1:
		return fmt.Sprintf("invalid ball %d", d.Ball)
	case d.Batter == "" || d.Bowler == "":
		return "missing batter or bowler"
	case d.RunsBat < 0 || d.Extras < 0:
		return "negative runs"
	}
	return ""
}

// Aggregate folds a match's delivery log into per-player match aggregates.
//
// Extras attribution: wides are charged to the bowler but are not a ball
// faced; byes/leg-byes count to neither the batter nor the bowler; no-balls
// are a ball faced and charged to the bowler but not a legal delivery.
// Run-outs (and other non-bowler dismissal kinds) end the batter's innings
// without crediting the bowler.
//
// Malformed deliveries are returned as ValidationErrors and excluded;
// everything derivable from the remaining valid log is still produced.
func Aggregate(raw *model.RawMatch, f config.FormatConfig) ([]model.PlayerMatchAggregate, []ValidationError, error) {
	if raw == nil {
		return nil, nil, fmt.Errorf("nil RawMatch")
	}

	info := raw.Info

	// ---- Pass 1: validate, assign batting order positions. ----

	var errs []ValidationError
	valid := make([]model.Delivery, 0, len(raw.Deliveries))
	for _, d := range raw.Deliveries {
		if reason := validate(d, f); reason != "" {
			errs = append(errs, ValidationError{
				MatchID: info.MatchID,
				Innings: d.Innings,
				Over:    d.Over,
				Ball:    d.Ball,
				Reason:  reason,
			})
			continue
		}
		valid = append(valid, d)
	}

	// Batting position = order of first appearance at the crease within an
	// innings (striker or non-striker).
	type inningsPlayer struct {
		innings int
		player  string
	}
	positions := make(map[inningsPlayer]int)
	nextPos := make(map[int]int)
	appear := func(innings int, player string) {
		if player == "" {
			return
		}
		key := inningsPlayer{innings, player}
		if _, seen := positions[key]; !seen {
			nextPos[innings]++
			positions[key] = nextPos[innings]
		}
	}
	for _, d := range valid {
		appear(d.Innings, d.Batter)
		appear(d.Innings, d.NonStriker)
	}

	// ---- Pass 2: per-player accumulators. ----

	accums := make(map[string]*model.PlayerMatchAggregate)
	get := func(player, team string) *model.PlayerMatchAggregate {
		a := accums[player]
		if a == nil {
			a = &model.PlayerMatchAggregate{
				MatchID:   info.MatchID,
				MatchDate: info.MatchDate,
				Player:    player,
				Team:      team,
				TeamWon:   info.Winner != "" && info.Winner == team,
			}
			accums[player] = a
		}
		return a
	}
	otherTeam := func(team string) string {
		if team == info.Team1 {
			return info.Team2
		}
		return info.Team1
	}

	for _, d := range valid {
		phase := PhaseFor(d.Over, f)

		// Batter accounting.
		bat := get(d.Batter, d.BattingTeam)
		if bat.Batting.Innings == 0 {
			bat.Batting.Innings = 1
			bat.Position = positions[inningsPlayer{d.Innings, d.Batter}]
		}
		if d.CountsAsBallFaced() {
			bat.Batting.Balls++
			bat.Batting.Phases[phase].Balls++
			if d.RunsBat == 0 {
				bat.Batting.Dots++
				bat.Batting.Phases[phase].Dots++
			}
		}
		bat.Batting.Runs += d.RunsBat
		bat.Batting.Phases[phase].Runs += d.RunsBat
		switch d.RunsBat {
		case 4:
			bat.Batting.Fours++
			bat.Batting.Phases[phase].Fours++
		case 6:
			bat.Batting.Sixes++
			bat.Batting.Phases[phase].Sixes++
		}

		// Non-striker at the crease counts as an innings even without
		// facing a ball (run out at the non-striker's end is possible).
		if d.NonStriker != "" {
			ns := get(d.NonStriker, d.BattingTeam)
			if ns.Batting.Innings == 0 {
				ns.Batting.Innings = 1
				ns.Position = positions[inningsPlayer{d.Innings, d.NonStriker}]
			}
		}

		// Bowler accounting.
		bowl := get(d.Bowler, otherTeam(d.BattingTeam))
		if bowl.Bowling.Innings == 0 {
			bowl.Bowling.Innings = 1
		}
		runs := d.BowlerRuns()
		bowl.Bowling.Runs += runs
		bowl.Bowling.Phases[phase].Runs += runs
		if d.IsLegal() {
			bowl.Bowling.Balls++
			bowl.Bowling.Phases[phase].Balls++
			if runs == 0 {
				bowl.Bowling.Dots++
				bowl.Bowling.Phases[phase].Dots++
			}
		}
		switch d.ExtraKind {
		case model.ExtraWide:
			bowl.Bowling.Wides++
		case model.ExtraNoBall:
			bowl.Bowling.NoBalls++
		}

		// Wicket attribution.
		for _, w := range d.Wickets {
			if w.Kind.OutForBatter() && w.PlayerOut != "" {
				out := get(w.PlayerOut, d.BattingTeam)
				if out.Batting.Innings == 0 {
					out.Batting.Innings = 1
					out.Position = positions[inningsPlayer{d.Innings, w.PlayerOut}]
				}
				out.Batting.Dismissals++
			}
			if w.Kind.CreditsBowler() {
				bowl.Bowling.Wickets++
				bowl.Bowling.Phases[phase].Wickets++
			}
		}
	}

	// ---- Pass 3: roll up milestones and not-out flags. ----

	out := make([]model.PlayerMatchAggregate, 0, len(accums))
	for _, a := range accums {
		if a.Batting.Innings > 0 {
			a.NotOut = a.Batting.Dismissals == 0
			if a.Batting.Runs >= 100 {
				a.Batting.Hundreds = 1
			} else if a.Batting.Runs >= 50 {
				a.Batting.Fifties = 1
			}
		}
		out = append(out, *a)
	}

	// Stable output: runs desc, then wickets desc, then name.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Batting.Runs != out[j].Batting.Runs {
			return out[i].Batting.Runs > out[j].Batting.Runs
		}
		if out[i].Bowling.Wickets != out[j].Bowling.Wickets {
			return out[i].Bowling.Wickets > out[j].Bowling.Wickets
		}
		return out[i].Player < out[j].Player
	})

	return out, errs, nil
}

// BuildSeasonProfile sums a player's match aggregates pointwise. The result
// is reproducible from the underlying delivery log: profile = Σ match
// aggregates, no double counting, no gaps.
func BuildSeasonProfile(player string, matches []model.PlayerMatchAggregate) model.PlayerSeasonProfile {
	p := model.PlayerSeasonProfile{Player: player}
	for _, m := range matches {
		if m.Player != player {
			continue
		}
		p.Matches++
		p.Batting.Add(m.Batting)
		p.Bowling.Add(m.Bowling)
	}
	return p
}
