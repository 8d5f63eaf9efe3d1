package storage

import (
	"fmt"

	"cricmetrics/internal/model"
	"cricmetrics/internal/team"
)

// GetTeamMatches returns every stored match a team played, oldest first.
// season 0 means all seasons.
func (db *DB) GetTeamMatches(teamName string, season int) ([]model.MatchInfo, error) {
	query := fmt.Sprintf("SELECT %s FROM matches WHERE (team1 = ? OR team2 = ?)", matchColumns)
	args := []any{teamName, teamName}
	if season > 0 {
		query += " AND season = ?"
		args = append(args, season)
	}
	query += " ORDER BY match_date, match_id"

	rows, err := db.conn.Query(query, args...)
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

// GetTeamInningsTotals returns the team's total runs per match in
// chronological order. season 0 means all seasons.
func (db *DB) GetTeamInningsTotals(teamName string, season int) ([]int, error) {
	query := `
		SELECT SUM(p.runs)
		FROM player_match_stats p
		JOIN matches m ON m.match_id = p.match_id
		WHERE p.team = ?`
	args := []any{teamName}
	if season > 0 {
		query += " AND m.season = ?"
		args = append(args, season)
	}
	query += " GROUP BY p.match_id ORDER BY m.match_date, m.match_id"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var total int
		if err := rows.Scan(&total); err != nil {
			return nil, err
		}
		out = append(out, total)
	}
	return out, rows.Err()
}

// GetTeamTopBatsmen returns the team's leading run scorers, most runs first.
// season 0 means all seasons.
func (db *DB) GetTeamTopBatsmen(teamName string, season, limit int) ([]team.Batsman, error) {
	query := `
		SELECT p.player, SUM(p.runs), SUM(p.bat_innings)
		FROM player_match_stats p
		JOIN matches m ON m.match_id = p.match_id
		WHERE p.team = ?`
	args := []any{teamName}
	if season > 0 {
		query += " AND m.season = ?"
		args = append(args, season)
	}
	query += " GROUP BY p.player ORDER BY SUM(p.runs) DESC, p.player LIMIT ?"
	args = append(args, limit)

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []team.Batsman
	for rows.Next() {
		var b team.Batsman
		if err := rows.Scan(&b.Player, &b.Runs, &b.Innings); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Counts reports the stored row counts per table, for the drop confirmation.
func (db *DB) Counts() (matches, playerRows, classifications int, err error) {
	if err = db.conn.QueryRow("SELECT COUNT(1) FROM matches").Scan(&matches); err != nil {
		return 0, 0, 0, err
	}
	if err = db.conn.QueryRow("SELECT COUNT(1) FROM player_match_stats").Scan(&playerRows); err != nil {
		return 0, 0, 0, err
	}
	if err = db.conn.QueryRow("SELECT COUNT(1) FROM classifications").Scan(&classifications); err != nil {
		return 0, 0, 0, err
	}
	return matches, playerRows, classifications, nil
}
