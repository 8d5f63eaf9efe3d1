package team

import (
	"math"
	"testing"

	"cricmetrics/internal/model"
)

func result(venue, city, tossWinner, winner string) model.MatchInfo {
	return model.MatchInfo{
		Team1:      "Alpha",
		Team2:      "Beta",
		Venue:      venue,
		City:       city,
		TossWinner: tossWinner,
		Winner:     winner,
	}
}

func TestBuildRecord(t *testing.T) {
	matches := []model.MatchInfo{
		result("Eden Gardens", "Kolkata", "Alpha", "Alpha"),
		result("Eden Gardens", "Kolkata", "Beta", "Beta"),
		result("Chepauk", "Chennai", "Alpha", ""), // washout
		{Team1: "Gamma", Team2: "Delta", Winner: "Gamma"},
	}

	r := BuildRecord("Alpha", matches)
	if r.Matches != 3 || r.Wins != 1 || r.Losses != 1 || r.NoResults != 1 {
		t.Errorf("record = %+v, want 3 played / 1 win / 1 loss / 1 no-result", r)
	}
	if !r.WinPct.Valid || math.Abs(r.WinPct.Value-100.0/3) > 1e-9 {
		t.Errorf("win%% = %v, want 33.33", r.WinPct)
	}
}

func TestBuildRecord_EmptyUndefined(t *testing.T) {
	r := BuildRecord("Alpha", nil)
	if r.WinPct.Valid {
		t.Error("win%% must be undefined with no matches")
	}
}

func TestByVenue_MinFilterAndOrder(t *testing.T) {
	var matches []model.MatchInfo
	// Eden Gardens: 3 played, 2 won. Chepauk: 3 played, 1 won.
	matches = append(matches,
		result("Eden Gardens", "Kolkata", "Alpha", "Alpha"),
		result("Eden Gardens", "Kolkata", "Alpha", "Alpha"),
		result("Eden Gardens", "Kolkata", "Alpha", "Beta"),
		result("Chepauk", "Chennai", "Alpha", "Alpha"),
		result("Chepauk", "Chennai", "Alpha", "Beta"),
		result("Chepauk", "Chennai", "Alpha", "Beta"),
		result("Kotla", "Delhi", "Alpha", "Alpha"), // below the minimum
	)

	venues := ByVenue("Alpha", matches, 3)
	if len(venues) != 2 {
		t.Fatalf("venues = %d, want 2 (Kotla has only 1 match)", len(venues))
	}
	if venues[0].Venue != "Eden Gardens" {
		t.Errorf("first venue = %q, want the best win%% first", venues[0].Venue)
	}
	want := 100 * 2.0 / 3
	if math.Abs(venues[0].WinPct.Value-want) > 1e-9 {
		t.Errorf("win%% = %v, want %v", venues[0].WinPct.Value, want)
	}
	if venues[1].Venue != "Chepauk" || venues[1].Wins != 1 {
		t.Errorf("second venue = %+v, want Chepauk with 1 win", venues[1])
	}
}

func TestTossRecord(t *testing.T) {
	matches := []model.MatchInfo{
		result("Eden Gardens", "Kolkata", "Alpha", "Alpha"),
		result("Eden Gardens", "Kolkata", "Alpha", "Beta"),
		result("Chepauk", "Chennai", "Beta", "Alpha"), // toss lost, win ignored
	}

	toss := TossRecord("Alpha", matches)
	if toss.TossWins != 2 || toss.MatchWins != 1 {
		t.Errorf("toss = %+v, want 2 tosses won, 1 converted", toss)
	}
	if !toss.WinRate.Valid || toss.WinRate.Value != 50 {
		t.Errorf("win rate = %v, want 50", toss.WinRate)
	}

	none := TossRecord("Gamma", matches)
	if none.WinRate.Valid {
		t.Error("win rate must be undefined when the team never won the toss")
	}
}

func TestSummarizeTotals(t *testing.T) {
	s := SummarizeTotals([]int{160, 180, 140})
	if !s.AvgScore.Valid || s.AvgScore.Value != 160 {
		t.Errorf("avg score = %v, want 160", s.AvgScore)
	}
	if s.HighestScore != 180 {
		t.Errorf("highest score = %d, want 180", s.HighestScore)
	}

	if SummarizeTotals(nil).AvgScore.Valid {
		t.Error("avg score must be undefined with no innings")
	}
}
