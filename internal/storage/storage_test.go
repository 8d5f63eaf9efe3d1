package storage

import (
	"testing"

	"cricmetrics/internal/classify"
	"cricmetrics/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testMatch(id, date string) model.MatchInfo {
	return model.MatchInfo{
		MatchID:      id,
		Season:       2024,
		MatchDate:    date,
		Venue:        "Wankhede Stadium",
		City:         "Mumbai",
		Team1:        "Alpha",
		Team2:        "Beta",
		TossWinner:   "Alpha",
		TossDecision: "bat",
		Winner:       "Alpha",
		ResultType:   "runs",
		ResultMargin: 18,
		Stage:        "League",
	}
}

func testAggregate(matchID, player string, runs, wickets int) model.PlayerMatchAggregate {
	a := model.PlayerMatchAggregate{
		MatchID:  matchID,
		Player:   player,
		Team:     "Alpha",
		Position: 3,
		NotOut:   runs > 40,
		TeamWon:  true,
		Batting:  model.BattingAggregate{Innings: 1, Runs: runs, Balls: runs / 2, Fours: 3},
		Bowling:  model.BowlingAggregate{Innings: 1, Balls: 24, Runs: 30, Wickets: wickets},
	}
	a.Batting.Phases[model.PhaseDeath].Runs = runs / 4
	a.Bowling.Phases[model.PhasePowerplay].Wickets = wickets
	return a
}

func TestMatchRoundTrip(t *testing.T) {
	db := openMemDB(t)

	info := testMatch("hash-one", "2024-04-01")
	if err := db.InsertMatch(info); err != nil {
		t.Fatalf("insert match: %v", err)
	}

	exists, err := db.MatchExists("hash-one")
	if err != nil || !exists {
		t.Fatalf("MatchExists = %v, %v; want true", exists, err)
	}

	got, err := db.GetMatchByPrefix("hash-o")
	if err != nil {
		t.Fatalf("get by prefix: %v", err)
	}
	if got == nil || *got != info {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, info)
	}

	missing, err := db.GetMatchByPrefix("zzz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Error("prefix with no match must return nil, nil")
	}
}

func TestAggregateRoundTripAndOrdering(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertMatch(testMatch("m1", "2024-04-02")); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertMatch(testMatch("m2", "2024-04-01")); err != nil {
		t.Fatal(err)
	}

	aggs := []model.PlayerMatchAggregate{
		testAggregate("m1", "Sharma", 60, 0),
		testAggregate("m1", "Patel", 12, 3),
		testAggregate("m2", "Sharma", 31, 1),
	}
	if err := db.InsertPlayerMatchAggregates(aggs); err != nil {
		t.Fatalf("insert aggregates: %v", err)
	}

	// Match view: best batting first.
	byMatch, err := db.GetMatchAggregates("m1")
	if err != nil {
		t.Fatalf("get match aggregates: %v", err)
	}
	if len(byMatch) != 2 || byMatch[0].Player != "Sharma" {
		t.Errorf("match aggregates order wrong: %+v", byMatch)
	}
	if byMatch[0].Batting.Phases[model.PhaseDeath].Runs != 15 {
		t.Errorf("death phase runs = %d, want 15 (phase splits must round trip)",
			byMatch[0].Batting.Phases[model.PhaseDeath].Runs)
	}

	// Player view: chronological, oldest first.
	byPlayer, err := db.GetPlayerMatchAggregates("Sharma")
	if err != nil {
		t.Fatalf("get player aggregates: %v", err)
	}
	if len(byPlayer) != 2 {
		t.Fatalf("player aggregates = %d rows, want 2", len(byPlayer))
	}
	if byPlayer[0].MatchID != "m2" || byPlayer[1].MatchID != "m1" {
		t.Errorf("chronological order wrong: %s then %s", byPlayer[0].MatchID, byPlayer[1].MatchID)
	}
	if byPlayer[0].MatchDate != "2024-04-01" {
		t.Errorf("match date = %q, want joined from matches table", byPlayer[0].MatchDate)
	}

	// Re-inserting the same rows must not duplicate.
	if err := db.InsertPlayerMatchAggregates(aggs); err != nil {
		t.Fatalf("re-insert: %v", err)
	}
	again, _ := db.GetPlayerMatchAggregates("Sharma")
	if len(again) != 2 {
		t.Errorf("after re-insert: %d rows, want 2", len(again))
	}

	players, err := db.ListPlayers()
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(players) != 2 || players[0] != "Patel" || players[1] != "Sharma" {
		t.Errorf("players = %v, want [Patel Sharma]", players)
	}
}

func TestClassificationUpsert(t *testing.T) {
	db := openMemDB(t)

	res := classify.Result{
		Player:         "Sharma",
		RulesetVersion: "2024.1",
		Batting:        classify.Outcome{Qualified: true, Archetype: classify.ArchetypePowerHitter},
		Bowling:        classify.Outcome{},
		Impact:         model.StatOf(72.5),
	}
	if err := db.UpsertClassification(res); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// Rerun under the same version replaces the row.
	res.Batting.Archetype = classify.ArchetypeAnchor
	res.Impact = model.NoStat()
	if err := db.UpsertClassification(res); err != nil {
		t.Fatalf("upsert again: %v", err)
	}

	got, err := db.GetClassifications("2024.1")
	if err != nil {
		t.Fatalf("get classifications: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("rows = %d, want 1 (same player+version must replace)", len(got))
	}
	if got[0].Batting.Archetype != classify.ArchetypeAnchor {
		t.Errorf("archetype = %v, want Anchor", got[0].Batting.Archetype)
	}
	if got[0].Impact.Valid {
		t.Error("undefined impact must round trip as undefined, not zero")
	}
	if got[0].Bowling.Qualified {
		t.Error("unqualified bowling outcome must round trip as unqualified")
	}

	// A different ruleset version is a separate row.
	res.RulesetVersion = "2024.2"
	if err := db.UpsertClassification(res); err != nil {
		t.Fatal(err)
	}
	other, _ := db.GetClassifications("2024.2")
	if len(other) != 1 {
		t.Errorf("rows for 2024.2 = %d, want 1", len(other))
	}
}

func TestTeamQueries(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertMatch(testMatch("m1", "2024-04-02")); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertMatch(testMatch("m2", "2024-04-01")); err != nil {
		t.Fatal(err)
	}
	aggs := []model.PlayerMatchAggregate{
		testAggregate("m1", "Sharma", 60, 0),
		testAggregate("m1", "Patel", 12, 3),
		testAggregate("m2", "Sharma", 31, 1),
	}
	if err := db.InsertPlayerMatchAggregates(aggs); err != nil {
		t.Fatal(err)
	}

	matches, err := db.GetTeamMatches("Alpha", 0)
	if err != nil {
		t.Fatalf("get team matches: %v", err)
	}
	if len(matches) != 2 || matches[0].MatchID != "m2" {
		t.Errorf("team matches = %+v, want 2 rows oldest first", matches)
	}

	// Season filter excludes everything outside the season.
	other, err := db.GetTeamMatches("Alpha", 2023)
	if err != nil {
		t.Fatalf("get team matches (season): %v", err)
	}
	if len(other) != 0 {
		t.Errorf("season 2023 matches = %d, want 0", len(other))
	}

	totals, err := db.GetTeamInningsTotals("Alpha", 0)
	if err != nil {
		t.Fatalf("get innings totals: %v", err)
	}
	// m2 first (older): 31; m1: 60 + 12 = 72.
	if len(totals) != 2 || totals[0] != 31 || totals[1] != 72 {
		t.Errorf("innings totals = %v, want [31 72]", totals)
	}

	batsmen, err := db.GetTeamTopBatsmen("Alpha", 0, 5)
	if err != nil {
		t.Fatalf("get top batsmen: %v", err)
	}
	if len(batsmen) != 2 || batsmen[0].Player != "Sharma" || batsmen[0].Runs != 91 {
		t.Errorf("top batsmen = %+v, want Sharma with 91 runs first", batsmen)
	}
	if batsmen[0].Innings != 2 || batsmen[1].Runs != 12 {
		t.Errorf("batsmen rows = %+v", batsmen)
	}

	// The limit caps the list.
	one, err := db.GetTeamTopBatsmen("Alpha", 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(one) != 1 {
		t.Errorf("limited batsmen = %d rows, want 1", len(one))
	}
}

func TestCounts(t *testing.T) {
	db := openMemDB(t)

	m, p, c, err := db.Counts()
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if m != 0 || p != 0 || c != 0 {
		t.Errorf("empty db counts = %d/%d/%d, want all zero", m, p, c)
	}

	if err := db.InsertMatch(testMatch("m1", "2024-04-01")); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertPlayerMatchAggregates([]model.PlayerMatchAggregate{
		testAggregate("m1", "Sharma", 60, 0),
		testAggregate("m1", "Patel", 12, 3),
	}); err != nil {
		t.Fatal(err)
	}
	if err := db.UpsertClassification(classify.Result{
		Player: "Sharma", RulesetVersion: "2024.1",
	}); err != nil {
		t.Fatal(err)
	}

	m, p, c, err = db.Counts()
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if m != 1 || p != 2 || c != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/2/1", m, p, c)
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertMatch(testMatch("m1", "2024-04-01")); err != nil {
		t.Fatal(err)
	}

	cols, rows, err := db.QueryRaw("SELECT match_id, winner FROM matches")
	if err != nil {
		t.Fatalf("query raw: %v", err)
	}
	if len(cols) != 2 || cols[0] != "match_id" {
		t.Errorf("cols = %v", cols)
	}
	if len(rows) != 1 || rows[0][0] != "m1" || rows[0][1] != "Alpha" {
		t.Errorf("rows = %v", rows)
	}
}
