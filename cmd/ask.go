package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"cricmetrics/internal/aggregator"
	"cricmetrics/internal/classify"
	"cricmetrics/internal/metrics"
	"cricmetrics/internal/model"
	"cricmetrics/internal/storage"
)

const askSystemPrompt = `You are a T20 cricket performance analyst. You are given structured data
from a ball-by-ball analytics tool and a question from a coach or analyst.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- A null metric means the sample could not support it; say "no data" rather than guessing.
- If the data is insufficient to answer confidently, say so explicitly.
- Be concise and actionable.

Metrics glossary:
- strike_rate: runs per 100 balls faced. T20 par is ~130; >150 is elite hitting.
- batting_average: runs per dismissal. >30 is strong in T20.
- boundary_pct: % of balls faced hit for four or six.
- dot_pct: % of balls faced scored off for nothing. Lower = better rotation.
- fifty_rate: % of innings reaching fifty.
- avg_position: mean batting-order position (1-2 = opener, 5+ = finisher territory).
- death_runs_share: fraction of runs scored in overs 16-20.
- economy: runs conceded per over. <7.5 is excellent, >9 expensive.
- bowling_average / bowling_strike_rate: runs and balls per wicket. Lower = better.
- wickets_per_match: bowling threat level. >1.3 marks a wicket taker.
- dot_ball_pct: % of legal deliveries conceding nothing. >45% builds pressure.
- powerplay_*/death_*: the same metrics restricted to overs 1-6 / 16-20.
- impact_score: 0-100 banded contribution to team wins, death-overs boosted.
- consistency: 100 minus the coefficient of variation; higher = steadier output.`

var (
	askModel  string
	askAPIKey string
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "AI-powered grounded analysis (requires ANTHROPIC_API_KEY)",
}

var askPlayerCmd = &cobra.Command{
	Use:   "player <name> <question>",
	Short: "Ask a question about a player's season",
	Args:  cobra.ExactArgs(2),
	RunE:  runAskPlayer,
}

var askMatchCmd = &cobra.Command{
	Use:   "match <id-prefix> <question>",
	Short: "Ask a question about a single match",
	Args:  cobra.ExactArgs(2),
	RunE:  runAskMatch,
}

func init() {
	askCmd.PersistentFlags().StringVar(&askModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	askCmd.PersistentFlags().StringVar(&askAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")

	askCmd.AddCommand(askPlayerCmd)
	askCmd.AddCommand(askMatchCmd)
}

func runAskPlayer(cmd *cobra.Command, args []string) error {
	name, question := args[0], args[1]

	rs, err := loadRuleset()
	if err != nil {
		return err
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matches, err := db.GetPlayerMatchAggregates(name)
	if err != nil {
		return fmt.Errorf("query aggregates: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no stored matches for player %q", name)
	}

	profile := aggregator.BuildSeasonProfile(name, matches)
	vector := metrics.Compute(name, "season", matches, profile, rs)
	result := classify.Classify(vector, profile, rs)

	contextJSON, err := buildPlayerContext(profile, vector, result)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	return callAnthropic(cmd.Context(), askAPIKey, askModel, contextJSON, question)
}

func runAskMatch(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	match, err := db.GetMatchByPrefix(args[0])
	if err != nil {
		return fmt.Errorf("find match: %w", err)
	}
	if match == nil {
		return fmt.Errorf("no match found with ID prefix %q", args[0])
	}
	question := args[1]

	aggs, err := db.GetMatchAggregates(match.MatchID)
	if err != nil {
		return fmt.Errorf("query aggregates: %w", err)
	}

	contextJSON, err := buildMatchContext(match, aggs)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	return callAnthropic(cmd.Context(), askAPIKey, askModel, contextJSON, question)
}

func statJSON(s model.Stat) *float64 {
	if !s.Valid {
		return nil
	}
	v := s.Value
	return &v
}

// buildPlayerContext serialises a player's season into compact JSON.
func buildPlayerContext(profile model.PlayerSeasonProfile, v model.MetricVector, res classify.Result) (string, error) {
	ms := make(map[string]*float64, len(v.Metrics))
	for _, m := range v.Metrics {
		ms[m.Name] = statJSON(m.Stat)
	}

	phases := make(map[string]any, model.NumPhases)
	for p := model.PhasePowerplay; p < model.NumPhases; p++ {
		phases[p.String()] = map[string]any{
			"bat_runs":     profile.Batting.Phases[p].Runs,
			"bat_balls":    profile.Batting.Phases[p].Balls,
			"bowl_balls":   profile.Bowling.Phases[p].Balls,
			"bowl_runs":    profile.Bowling.Phases[p].Runs,
			"bowl_wickets": profile.Bowling.Phases[p].Wickets,
		}
	}

	doc := map[string]any{
		"subject":          "player",
		"player":           profile.Player,
		"matches_analyzed": profile.Matches,
		"ruleset_version":  v.RulesetVersion,
		"totals": map[string]any{
			"runs":       profile.Batting.Runs,
			"balls":      profile.Batting.Balls,
			"dismissals": profile.Batting.Dismissals,
			"fifties":    profile.Batting.Fifties,
			"hundreds":   profile.Batting.Hundreds,
			"wickets":    profile.Bowling.Wickets,
			"overs_legal_balls": profile.Bowling.Balls,
		},
		"metrics": ms,
		"phases":  phases,
		"classification": map[string]any{
			"batting_qualified": res.Batting.Qualified,
			"batting_archetype": res.Batting.Archetype.String(),
			"bowling_qualified": res.Bowling.Qualified,
			"bowling_archetype": res.Bowling.Archetype.String(),
			"impact_score":      statJSON(res.Impact),
		},
	}

	b, err := json.Marshal(doc)
	return string(b), err
}

// buildMatchContext serialises one match's scorecard into compact JSON.
func buildMatchContext(m *model.MatchInfo, aggs []model.PlayerMatchAggregate) (string, error) {
	type playerEntry struct {
		Name    string `json:"name"`
		Team    string `json:"team"`
		Pos     int    `json:"position,omitempty"`
		Runs    int    `json:"runs"`
		Balls   int    `json:"balls"`
		Fours   int    `json:"fours"`
		Sixes   int    `json:"sixes"`
		NotOut  bool   `json:"not_out"`
		Wickets int    `json:"wickets"`
		Conceded int   `json:"runs_conceded"`
		BallsBowled int `json:"balls_bowled"`
	}

	players := make([]playerEntry, 0, len(aggs))
	for _, a := range aggs {
		players = append(players, playerEntry{
			Name:        a.Player,
			Team:        a.Team,
			Pos:         a.Position,
			Runs:        a.Batting.Runs,
			Balls:       a.Batting.Balls,
			Fours:       a.Batting.Fours,
			Sixes:       a.Batting.Sixes,
			NotOut:      a.NotOut,
			Wickets:     a.Bowling.Wickets,
			Conceded:    a.Bowling.Runs,
			BallsBowled: a.Bowling.Balls,
		})
	}

	doc := map[string]any{
		"subject":         "match",
		"teams":           []string{m.Team1, m.Team2},
		"date":            m.MatchDate,
		"venue":           m.Venue,
		"stage":           m.Stage,
		"winner":          m.Winner,
		"result_type":     m.ResultType,
		"result_margin":   m.ResultMargin,
		"player_of_match": m.PlayerOfMatch,
		"players":         players,
	}

	b, err := json.Marshal(doc)
	return string(b), err
}

// callAnthropic streams a response from the Anthropic API and prints it to stdout.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(os.Stdout, "\n─── AI Analysis ─────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: askSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(os.Stdout, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed — check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
