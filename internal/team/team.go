// Package team derives team-level profiles from stored match results:
// win/loss record, scoring summary, venue splits and toss conversion.
package team

import (
	"sort"

	"cricmetrics/internal/model"
)

// Record is a team's overall win/loss ledger. Matches with no winner (ties,
// washouts) are counted as no-results, not losses.
type Record struct {
	Team      string
	Matches   int
	Wins      int
	Losses    int
	NoResults int
	WinPct    model.Stat
}

// BuildRecord folds match results into a record. Matches not involving the
// team are ignored.
func BuildRecord(team string, matches []model.MatchInfo) Record {
	r := Record{Team: team}
	for _, m := range matches {
		if m.Team1 != team && m.Team2 != team {
			continue
		}
		r.Matches++
		switch {
		case m.Winner == team:
			r.Wins++
		case m.Winner == "":
			r.NoResults++
		default:
			r.Losses++
		}
	}
	r.WinPct = model.Ratio(float64(r.Wins), float64(r.Matches), 100)
	return r
}

// VenueRecord is one ground's slice of a team's record.
type VenueRecord struct {
	Venue   string
	City    string
	Matches int
	Wins    int
	WinPct  model.Stat
}

// ByVenue groups a team's matches by ground. Venues with fewer than
// minMatches appearances are dropped as noise; output is best win% first.
func ByVenue(team string, matches []model.MatchInfo, minMatches int) []VenueRecord {
	type key struct{ venue, city string }
	byKey := make(map[key]*VenueRecord)
	for _, m := range matches {
		if m.Team1 != team && m.Team2 != team {
			continue
		}
		k := key{m.Venue, m.City}
		v := byKey[k]
		if v == nil {
			v = &VenueRecord{Venue: m.Venue, City: m.City}
			byKey[k] = v
		}
		v.Matches++
		if m.Winner == team {
			v.Wins++
		}
	}

	out := make([]VenueRecord, 0, len(byKey))
	for _, v := range byKey {
		if v.Matches < minMatches {
			continue
		}
		v.WinPct = model.Ratio(float64(v.Wins), float64(v.Matches), 100)
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WinPct.Value != out[j].WinPct.Value {
			return out[i].WinPct.Value > out[j].WinPct.Value
		}
		if out[i].Matches != out[j].Matches {
			return out[i].Matches > out[j].Matches
		}
		return out[i].Venue < out[j].Venue
	})
	return out
}

// TossImpact measures how often winning the toss converts into winning the
// match.
type TossImpact struct {
	TossWins  int
	MatchWins int
	WinRate   model.Stat
}

// TossRecord counts the matches where the team won the toss and how many of
// those it went on to win.
func TossRecord(team string, matches []model.MatchInfo) TossImpact {
	var t TossImpact
	for _, m := range matches {
		if m.TossWinner != team {
			continue
		}
		t.TossWins++
		if m.Winner == team {
			t.MatchWins++
		}
	}
	t.WinRate = model.Ratio(float64(t.MatchWins), float64(t.TossWins), 100)
	return t
}

// Batsman is one row of a team's leading run scorers.
type Batsman struct {
	Player  string
	Runs    int
	Innings int
}

// InningsTotals summarises a team's per-match batting totals.
type InningsTotals struct {
	AvgScore     model.Stat
	HighestScore int
}

// SummarizeTotals reduces per-match team totals to the profile headline
// numbers. AvgScore is undefined when no innings are stored.
func SummarizeTotals(totals []int) InningsTotals {
	var s InningsTotals
	var sum int
	for _, t := range totals {
		sum += t
		if t > s.HighestScore {
			s.HighestScore = t
		}
	}
	s.AvgScore = model.Ratio(float64(sum), float64(len(totals)), 1)
	return s
}
