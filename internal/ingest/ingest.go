// Package ingest parses Cricsheet ball-by-ball match JSON into the internal
// delivery log. Parsing is lossless for everything the engine consumes;
// fielding credits and umpire metadata are dropped.
package ingest

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"cricmetrics/internal/model"
)

// Cricsheet JSON shape (https://cricsheet.org/format/json/). Only the fields
// the engine needs are declared; the decoder drops the rest.
type matchJSON struct {
	Info    infoJSON      `json:"info"`
	Innings []inningsJSON `json:"innings"`
}

type infoJSON struct {
	Event         eventJSON       `json:"event"`
	Season        json.RawMessage `json:"season"` // string ("2020/21") or number
	Dates         []string        `json:"dates"`
	City          string          `json:"city"`
	Venue         string          `json:"venue"`
	Teams         []string        `json:"teams"`
	Toss          tossJSON        `json:"toss"`
	Outcome       outcomeJSON     `json:"outcome"`
	PlayerOfMatch []string        `json:"player_of_match"`
}

type eventJSON struct {
	Name  string `json:"name"`
	Stage string `json:"stage"`
}

type tossJSON struct {
	Winner   string `json:"winner"`
	Decision string `json:"decision"`
}

type outcomeJSON struct {
	Winner string         `json:"winner"`
	Result string         `json:"result"` // "tie" / "no result" when no winner
	By     map[string]int `json:"by"`     // {"runs": 10} or {"wickets": 6}
}

type inningsJSON struct {
	Team  string     `json:"team"`
	Overs []overJSON `json:"overs"`
}

type overJSON struct {
	Over       int            `json:"over"` // 0-based in the source format
	Deliveries []deliveryJSON `json:"deliveries"`
}

type deliveryJSON struct {
	Batter     string         `json:"batter"`
	Bowler     string         `json:"bowler"`
	NonStriker string         `json:"non_striker"`
	Runs       runsJSON       `json:"runs"`
	Extras     map[string]int `json:"extras"`
	Wickets    []wicketJSON   `json:"wickets"`
}

type runsJSON struct {
	Batter int `json:"batter"`
	Extras int `json:"extras"`
	Total  int `json:"total"`
}

type wicketJSON struct {
	PlayerOut string `json:"player_out"`
	Kind      string `json:"kind"`
}

// ParseMatch decodes one Cricsheet match file. The match ID is the SHA-256 of
// the file contents, so re-ingesting the same file is a no-op upstream and a
// modified file is a new match.
func ParseMatch(data []byte) (*model.RawMatch, error) {
	var m matchJSON
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode match json: %w", err)
	}
	if len(m.Info.Teams) != 2 {
		return nil, fmt.Errorf("expected 2 teams, got %d", len(m.Info.Teams))
	}
	if len(m.Innings) == 0 {
		return nil, fmt.Errorf("match has no innings")
	}

	info := model.MatchInfo{
		MatchID:      fmt.Sprintf("%x", sha256.Sum256(data)),
		Season:       parseSeason(m.Info.Season),
		Venue:        m.Info.Venue,
		City:         m.Info.City,
		Team1:        m.Info.Teams[0],
		Team2:        m.Info.Teams[1],
		TossWinner:   m.Info.Toss.Winner,
		TossDecision: m.Info.Toss.Decision,
		Winner:       m.Info.Outcome.Winner,
		Stage:        stage(m.Info.Event.Stage),
	}
	if len(m.Info.Dates) > 0 {
		info.MatchDate = m.Info.Dates[0]
	}
	if len(m.Info.PlayerOfMatch) > 0 {
		info.PlayerOfMatch = m.Info.PlayerOfMatch[0]
	}
	switch {
	case m.Info.Outcome.Winner == "":
		info.ResultType = m.Info.Outcome.Result
	case m.Info.Outcome.By["runs"] > 0:
		info.ResultType = "runs"
		info.ResultMargin = m.Info.Outcome.By["runs"]
	case m.Info.Outcome.By["wickets"] > 0:
		info.ResultType = "wickets"
		info.ResultMargin = m.Info.Outcome.By["wickets"]
	default:
		info.ResultType = "won"
	}

	raw := &model.RawMatch{Info: info}
	for i, inn := range m.Innings {
		for _, over := range inn.Overs {
			for ball, d := range over.Deliveries {
				raw.Deliveries = append(raw.Deliveries, convert(info.MatchID, i+1, over.Over+1, ball+1, inn.Team, d))
			}
		}
	}
	return raw, nil
}

func convert(matchID string, innings, over, ball int, team string, d deliveryJSON) model.Delivery {
	out := model.Delivery{
		MatchID:     matchID,
		Innings:     innings,
		Over:        over,
		Ball:        ball,
		BattingTeam: team,
		Batter:      d.Batter,
		NonStriker:  d.NonStriker,
		Bowler:      d.Bowler,
		RunsBat:     d.Runs.Batter,
		Extras:      d.Runs.Extras,
		ExtraKind:   extraKind(d.Extras),
	}
	for _, w := range d.Wickets {
		out.Wickets = append(out.Wickets, model.Wicket{
			PlayerOut: w.PlayerOut,
			Kind:      model.ParseDismissal(w.Kind),
		})
	}
	return out
}

// extraKind picks the dominant extra on the delivery. A wide or no-ball
// determines legality, so those win over byes/leg-byes when both appear
// (e.g. a no-ball with byes run).
func extraKind(extras map[string]int) model.ExtraKind {
	switch {
	case extras["wides"] > 0:
		return model.ExtraWide
	case extras["noballs"] > 0:
		return model.ExtraNoBall
	case extras["byes"] > 0:
		return model.ExtraBye
	case extras["legbyes"] > 0:
		return model.ExtraLegBye
	case extras["penalty"] > 0:
		return model.ExtraPenalty
	default:
		return model.ExtraNone
	}
}

// parseSeason normalizes the season field, which Cricsheet encodes either as
// a number or as a split-year string like "2020/21". The starting year wins.
func parseSeason(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	if i := strings.IndexByte(s, '/'); i > 0 {
		s = s[:i]
	}
	n, _ = strconv.Atoi(strings.TrimSpace(s))
	return n
}

func stage(s string) string {
	if s == "" {
		return "League"
	}
	return s
}
