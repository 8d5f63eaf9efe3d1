package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"cricmetrics/internal/classify"
	"cricmetrics/internal/model"
)

// MatchExists returns true when a match with the given ID is already stored.
// Match IDs are content hashes, so this doubles as the re-ingest check.
func (db *DB) MatchExists(matchID string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE match_id = ?", matchID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertMatch inserts a match record. INSERT OR REPLACE keeps ingestion
// idempotent.
func (db *DB) InsertMatch(info model.MatchInfo) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO matches(
			match_id, season, match_date, venue, city, team1, team2,
			toss_winner, toss_decision, winner, result_type, result_margin,
			player_of_match, stage
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		info.MatchID, info.Season, info.MatchDate, info.Venue, info.City,
		info.Team1, info.Team2, info.TossWinner, info.TossDecision,
		info.Winner, info.ResultType, info.ResultMargin,
		info.PlayerOfMatch, info.Stage,
	)
	return err
}

// statsColumns is the player_match_stats column list shared by the insert and
// select paths so the two can never drift apart.
const statsColumns = `match_id, player, team, position, not_out, team_won,
	bat_innings, runs, balls, fours, sixes, bat_dots, dismissals, fifties, hundreds,
	pp_runs, pp_balls, pp_fours, pp_sixes, pp_dots,
	mid_runs, mid_balls, mid_fours, mid_sixes, mid_dots,
	death_runs, death_balls, death_fours, death_sixes, death_dots,
	bowl_innings, balls_bowled, runs_conceded, wickets, bowl_dots, wides, noballs,
	pp_balls_bowled, pp_runs_conceded, pp_wickets, pp_bowl_dots,
	mid_balls_bowled, mid_runs_conceded, mid_wickets, mid_bowl_dots,
	death_balls_bowled, death_runs_conceded, death_wickets, death_bowl_dots`

const statsPlaceholders = `?,?,?,?,?,?,` +
	`?,?,?,?,?,?,?,?,?,` +
	`?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,` +
	`?,?,?,?,?,?,?,` +
	`?,?,?,?,?,?,?,?,?,?,?,?`

func statsArgs(a model.PlayerMatchAggregate) []any {
	args := []any{
		a.MatchID, a.Player, a.Team, a.Position, boolInt(a.NotOut), boolInt(a.TeamWon),
		a.Batting.Innings, a.Batting.Runs, a.Batting.Balls, a.Batting.Fours,
		a.Batting.Sixes, a.Batting.Dots, a.Batting.Dismissals,
		a.Batting.Fifties, a.Batting.Hundreds,
	}
	for _, p := range a.Batting.Phases {
		args = append(args, p.Runs, p.Balls, p.Fours, p.Sixes, p.Dots)
	}
	args = append(args,
		a.Bowling.Innings, a.Bowling.Balls, a.Bowling.Runs, a.Bowling.Wickets,
		a.Bowling.Dots, a.Bowling.Wides, a.Bowling.NoBalls,
	)
	for _, p := range a.Bowling.Phases {
		args = append(args, p.Balls, p.Runs, p.Wickets, p.Dots)
	}
	return args
}

func scanAggregate(rows *sql.Rows, matchDate *string) (model.PlayerMatchAggregate, error) {
	var a model.PlayerMatchAggregate
	var notOut, teamWon int
	dest := []any{
		&a.MatchID, &a.Player, &a.Team, &a.Position, &notOut, &teamWon,
		&a.Batting.Innings, &a.Batting.Runs, &a.Batting.Balls, &a.Batting.Fours,
		&a.Batting.Sixes, &a.Batting.Dots, &a.Batting.Dismissals,
		&a.Batting.Fifties, &a.Batting.Hundreds,
	}
	for i := range a.Batting.Phases {
		p := &a.Batting.Phases[i]
		dest = append(dest, &p.Runs, &p.Balls, &p.Fours, &p.Sixes, &p.Dots)
	}
	dest = append(dest,
		&a.Bowling.Innings, &a.Bowling.Balls, &a.Bowling.Runs, &a.Bowling.Wickets,
		&a.Bowling.Dots, &a.Bowling.Wides, &a.Bowling.NoBalls,
	)
	for i := range a.Bowling.Phases {
		p := &a.Bowling.Phases[i]
		dest = append(dest, &p.Balls, &p.Runs, &p.Wickets, &p.Dots)
	}
	if matchDate != nil {
		dest = append(dest, matchDate)
	}
	if err := rows.Scan(dest...); err != nil {
		return a, err
	}
	a.NotOut = notOut != 0
	a.TeamWon = teamWon != 0
	return a, nil
}

// InsertPlayerMatchAggregates bulk-inserts player aggregates in a transaction.
func (db *DB) InsertPlayerMatchAggregates(aggs []model.PlayerMatchAggregate) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT OR REPLACE INTO player_match_stats(%s) VALUES (%s)",
		statsColumns, statsPlaceholders))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range aggs {
		if _, err := stmt.Exec(statsArgs(a)...); err != nil {
			return fmt.Errorf("insert player_match_stats for %s: %w", a.Player, err)
		}
	}
	return tx.Commit()
}

const matchColumns = `match_id, season, match_date, venue, city, team1, team2,
	toss_winner, toss_decision, winner, result_type, result_margin,
	player_of_match, stage`

func scanMatch(scan func(...any) error) (model.MatchInfo, error) {
	var m model.MatchInfo
	err := scan(
		&m.MatchID, &m.Season, &m.MatchDate, &m.Venue, &m.City,
		&m.Team1, &m.Team2, &m.TossWinner, &m.TossDecision,
		&m.Winner, &m.ResultType, &m.ResultMargin,
		&m.PlayerOfMatch, &m.Stage,
	)
	return m, err
}

// ListMatches returns all stored matches, most recent first.
func (db *DB) ListMatches() ([]model.MatchInfo, error) {
	rows, err := db.conn.Query(fmt.Sprintf(
		"SELECT %s FROM matches ORDER BY match_date DESC, match_id", matchColumns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchInfo
	for rows.Next() {
		m, err := scanMatch(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetMatchByPrefix finds the first match whose ID starts with the given
// prefix. Returns (nil, nil) when no match does.
func (db *DB) GetMatchByPrefix(prefix string) (*model.MatchInfo, error) {
	row := db.conn.QueryRow(fmt.Sprintf(
		"SELECT %s FROM matches WHERE match_id LIKE ? LIMIT 1", matchColumns),
		prefix+"%")
	m, err := scanMatch(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMatchAggregates returns every player's aggregate for one match, best
// batting first.
func (db *DB) GetMatchAggregates(matchID string) ([]model.PlayerMatchAggregate, error) {
	rows, err := db.conn.Query(fmt.Sprintf(`
		SELECT %s FROM player_match_stats
		WHERE match_id = ?
		ORDER BY runs DESC, wickets DESC, player`, statsColumns), matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PlayerMatchAggregate
	for rows.Next() {
		a, err := scanAggregate(rows, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetPlayerMatchAggregates returns one player's aggregates across all stored
// matches in chronological order, the shape the form module consumes.
func (db *DB) GetPlayerMatchAggregates(player string) ([]model.PlayerMatchAggregate, error) {
	rows, err := db.conn.Query(fmt.Sprintf(`
		SELECT %s, m.match_date
		FROM player_match_stats p
		JOIN matches m ON m.match_id = p.match_id
		WHERE p.player = ?
		ORDER BY m.match_date, m.match_id`, prefixed(statsColumns, "p.")), player)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PlayerMatchAggregate
	for rows.Next() {
		var date string
		a, err := scanAggregate(rows, &date)
		if err != nil {
			return nil, err
		}
		a.MatchDate = date
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListPlayers returns the distinct player names in the store, sorted.
func (db *DB) ListPlayers() ([]string, error) {
	rows, err := db.conn.Query("SELECT DISTINCT player FROM player_match_stats ORDER BY player")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpsertClassification stores a classification result keyed on
// (player, ruleset version), so rethreshold runs never clobber history.
func (db *DB) UpsertClassification(res classify.Result) error {
	impact := sql.NullFloat64{Float64: res.Impact.Value, Valid: res.Impact.Valid}
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO classifications(
			player, ruleset_version,
			batting_qualified, batting_archetype,
			bowling_qualified, bowling_archetype,
			impact_score
		) VALUES (?,?,?,?,?,?,?)`,
		res.Player, res.RulesetVersion,
		boolInt(res.Batting.Qualified), res.Batting.Archetype.String(),
		boolInt(res.Bowling.Qualified), res.Bowling.Archetype.String(),
		impact,
	)
	return err
}

// GetClassifications returns all stored results for one ruleset version,
// sorted by player name.
func (db *DB) GetClassifications(rulesetVersion string) ([]classify.Result, error) {
	rows, err := db.conn.Query(`
		SELECT player, ruleset_version,
		       batting_qualified, batting_archetype,
		       bowling_qualified, bowling_archetype,
		       impact_score
		FROM classifications WHERE ruleset_version = ?
		ORDER BY player`, rulesetVersion)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []classify.Result
	for rows.Next() {
		var res classify.Result
		var batQ, bowlQ int
		var batLabel, bowlLabel string
		var impact sql.NullFloat64
		if err := rows.Scan(&res.Player, &res.RulesetVersion,
			&batQ, &batLabel, &bowlQ, &bowlLabel, &impact); err != nil {
			return nil, err
		}
		res.Batting.Qualified = batQ != 0
		res.Batting.Archetype, _ = classify.ParseArchetype(batLabel)
		res.Bowling.Qualified = bowlQ != 0
		res.Bowling.Archetype, _ = classify.ParseArchetype(bowlLabel)
		if impact.Valid {
			res.Impact = model.StatOf(impact.Float64)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// QueryRaw runs an arbitrary query and returns the column names and rows as
// strings, for the sql command. NULLs render as "—".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		raw := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range raw {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "—"
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

// prefixed qualifies every column in a comma-separated list with a table
// alias, for joined queries.
func prefixed(cols, alias string) string {
	parts := strings.Split(cols, ",")
	for i, c := range parts {
		parts[i] = alias + strings.TrimSpace(c)
	}
	return strings.Join(parts, ", ")
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
