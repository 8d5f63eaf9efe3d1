// Package report renders match scorecards, player profiles and
// classification tables for the terminal.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"cricmetrics/internal/classify"
	"cricmetrics/internal/form"
	"cricmetrics/internal/model"
	"cricmetrics/internal/team"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintMatchSummary prints a one-line summary header for the match.
func PrintMatchSummary(w io.Writer, m model.MatchInfo) {
	result := "no result"
	switch m.ResultType {
	case "runs":
		result = fmt.Sprintf("%s won by %d runs", m.Winner, m.ResultMargin)
	case "wickets":
		result = fmt.Sprintf("%s won by %d wickets", m.Winner, m.ResultMargin)
	case "tie":
		result = "tied"
	default:
		if m.Winner != "" {
			result = m.Winner + " won"
		}
	}
	fmt.Fprintf(w, "\n%s vs %s  |  %s, %s  |  %s  |  %s  |  ID: %s\n\n",
		m.Team1, m.Team2, m.Venue, m.MatchDate, m.Stage, result, shortID(m.MatchID))
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// overs renders a ball count in overs.balls notation ("3.4" = 3 overs 4 balls).
func overs(balls, ballsPerOver int) string {
	if ballsPerOver < 1 {
		ballsPerOver = 6
	}
	return fmt.Sprintf("%d.%d", balls/ballsPerOver, balls%ballsPerOver)
}

// PrintBattingScorecard prints the batting card in batting-order position.
// If focusPlayer is non-empty, that player's row is marked with ">".
func PrintBattingScorecard(w io.Writer, aggs []model.PlayerMatchAggregate, focusPlayer string) {
	var batters []model.PlayerMatchAggregate
	for _, a := range aggs {
		if a.Batting.Innings > 0 {
			batters = append(batters, a)
		}
	}
	sort.Slice(batters, func(i, j int) bool {
		if batters[i].Team != batters[j].Team {
			return batters[i].Team < batters[j].Team
		}
		return batters[i].Position < batters[j].Position
	})

	table := newTable(w)
	table.Header(" ", "BATTER", "TEAM", "POS", "R", "B", "4s", "6s", "SR", "STATUS")

	for _, a := range batters {
		marker := " "
		if focusPlayer != "" && a.Player == focusPlayer {
			marker = ">"
		}
		status := "out"
		if a.NotOut {
			status = "not out"
		}
		table.Append(
			marker,
			a.Player,
			a.Team,
			strconv.Itoa(a.Position),
			strconv.Itoa(a.Batting.Runs),
			strconv.Itoa(a.Batting.Balls),
			strconv.Itoa(a.Batting.Fours),
			strconv.Itoa(a.Batting.Sixes),
			model.Ratio(float64(a.Batting.Runs), float64(a.Batting.Balls), 100).String(),
			status,
		)
	}
	table.Render()
}

// PrintBowlingScorecard prints the bowling card, most wickets first.
func PrintBowlingScorecard(w io.Writer, aggs []model.PlayerMatchAggregate, ballsPerOver int, focusPlayer string) {
	var bowlers []model.PlayerMatchAggregate
	for _, a := range aggs {
		if a.Bowling.Innings > 0 {
			bowlers = append(bowlers, a)
		}
	}
	sort.Slice(bowlers, func(i, j int) bool {
		if bowlers[i].Bowling.Wickets != bowlers[j].Bowling.Wickets {
			return bowlers[i].Bowling.Wickets > bowlers[j].Bowling.Wickets
		}
		return bowlers[i].Bowling.Runs < bowlers[j].Bowling.Runs
	})

	table := newTable(w)
	table.Header(" ", "BOWLER", "TEAM", "O", "R", "W", "ECON", "DOT%", "WD", "NB")

	for _, a := range bowlers {
		marker := " "
		if focusPlayer != "" && a.Player == focusPlayer {
			marker = ">"
		}
		b := a.Bowling
		table.Append(
			marker,
			a.Player,
			a.Team,
			overs(b.Balls, ballsPerOver),
			strconv.Itoa(b.Runs),
			strconv.Itoa(b.Wickets),
			model.Ratio(float64(b.Runs)*float64(ballsPerOver), float64(b.Balls), 1).String(),
			model.Ratio(float64(b.Dots), float64(b.Balls), 100).String(),
			strconv.Itoa(b.Wides),
			strconv.Itoa(b.NoBalls),
		)
	}
	table.Render()
}

// PrintMetricVector prints every metric of a player's vector in emit order.
// Undefined metrics render as "—".
func PrintMetricVector(w io.Writer, v model.MetricVector) {
	fmt.Fprintf(w, "\nPlayer: %s  |  Window: %s  |  Ruleset: %s\n\n",
		v.Player, v.Window, v.RulesetVersion)

	table := newTable(w)
	table.Header("METRIC", "VALUE")
	for _, m := range v.Metrics {
		table.Append(m.Name, m.Stat.String())
	}
	table.Render()
}

// PrintPhaseTable prints the powerplay/middle/death splits of a season
// profile side by side.
func PrintPhaseTable(w io.Writer, p model.PlayerSeasonProfile, ballsPerOver int) {
	table := newTable(w)
	table.Header("PHASE", "BAT_R", "BAT_B", "BAT_SR", "BOWL_O", "BOWL_R", "W", "ECON")

	for phase := model.PhasePowerplay; phase < model.NumPhases; phase++ {
		bat := p.Batting.Phases[phase]
		bowl := p.Bowling.Phases[phase]
		table.Append(
			phase.String(),
			strconv.Itoa(bat.Runs),
			strconv.Itoa(bat.Balls),
			model.Ratio(float64(bat.Runs), float64(bat.Balls), 100).String(),
			overs(bowl.Balls, ballsPerOver),
			strconv.Itoa(bowl.Runs),
			strconv.Itoa(bowl.Wickets),
			model.Ratio(float64(bowl.Runs)*float64(ballsPerOver), float64(bowl.Balls), 1).String(),
		)
	}
	table.Render()
}

func outcomeLabel(o classify.Outcome) string {
	if !o.Qualified {
		return "— (sample too small)"
	}
	return o.Archetype.String()
}

// PrintClassificationTable prints classification results for many players.
func PrintClassificationTable(w io.Writer, results []classify.Result, focusPlayer string) {
	table := newTable(w)
	table.Header(" ", "PLAYER", "BATTING", "BOWLING", "IMPACT")

	for _, r := range results {
		marker := " "
		if focusPlayer != "" && r.Player == focusPlayer {
			marker = ">"
		}
		table.Append(
			marker,
			r.Player,
			outcomeLabel(r.Batting),
			outcomeLabel(r.Bowling),
			r.Impact.String(),
		)
	}
	table.Render()
}

// PrintTeamProfile prints a team's overall record, scoring summary and toss
// conversion.
func PrintTeamProfile(w io.Writer, rec team.Record, totals team.InningsTotals, toss team.TossImpact) {
	fmt.Fprintf(w, "\nTeam: %s\n\n", rec.Team)

	table := newTable(w)
	table.Header("P", "W", "L", "NR", "WIN%", "AVG SCORE", "HIGHEST")
	table.Append(
		strconv.Itoa(rec.Matches),
		strconv.Itoa(rec.Wins),
		strconv.Itoa(rec.Losses),
		strconv.Itoa(rec.NoResults),
		rec.WinPct.String(),
		totals.AvgScore.String(),
		strconv.Itoa(totals.HighestScore),
	)
	table.Render()

	fmt.Fprintf(w, "\nToss: won %d, converted %d into match wins (win rate %s)\n",
		toss.TossWins, toss.MatchWins, toss.WinRate)
}

// PrintTeamVenues prints a team's per-ground record, best win% first.
func PrintTeamVenues(w io.Writer, venues []team.VenueRecord) {
	table := newTable(w)
	table.Header("VENUE", "CITY", "P", "W", "WIN%")
	for _, v := range venues {
		table.Append(
			v.Venue,
			v.City,
			strconv.Itoa(v.Matches),
			strconv.Itoa(v.Wins),
			v.WinPct.String(),
		)
	}
	table.Render()
}

// PrintTeamBatsmen prints a team's leading run scorers.
func PrintTeamBatsmen(w io.Writer, batsmen []team.Batsman) {
	table := newTable(w)
	table.Header("PLAYER", "RUNS", "INNS")
	for _, b := range batsmen {
		table.Append(b.Player, strconv.Itoa(b.Runs), strconv.Itoa(b.Innings))
	}
	table.Render()
}

// PrintFormTable prints a player's rolling form series with the trend verdict
// underneath. Partial windows are flagged with "*".
func PrintFormTable(w io.Writer, series model.FormSeries, windows []form.Window, trend form.Trend) {
	fmt.Fprintf(w, "\nPlayer: %s  |  Metric: %s  |  Matches: %d\n\n",
		series.Player, series.Metric, len(series.Points))

	table := newTable(w)
	table.Header(" ", "DATE", "MATCH", "VALUE", "ROLL_MEAN", "STDDEV", "CONSISTENCY")

	for _, win := range windows {
		p := series.Points[win.End]
		marker := " "
		if win.Partial {
			marker = "*"
		}
		table.Append(
			marker,
			p.MatchDate,
			shortID(p.MatchID),
			fmt.Sprintf("%.2f", p.Value),
			fmt.Sprintf("%.2f", win.Mean),
			fmt.Sprintf("%.2f", win.StdDev),
			win.Consistency.String(),
		)
	}
	table.Render()

	fmt.Fprintf(w, "\nTrend: %s   (* = window not yet full)\n\n", trend)
}
