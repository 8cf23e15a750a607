package standings

import "testing"

func TestSummarize(t *testing.T) {
	seq1, seq2 := 1, 2
	results := []MatchResult{
		{
			MatchID: "m1", PlayerID: "p1", OpponentID: "rival",
			IsWin: true, MatchPoints: 5,
			SetsWon: 2, SetsLost: 0, GamesWon: 12, GamesLost: 4,
			CountsForStandings: true, ResultSequence: &seq1,
		},
		{
			MatchID: "m2", PlayerID: "p1", OpponentID: "rival",
			IsWin: false, MatchPoints: 2,
			SetsWon: 1, SetsLost: 2, GamesWon: 15, GamesLost: 18,
			CountsForStandings: true, ResultSequence: &seq2,
		},
		{
			// Uncounted result still feeds the record and rivalry history.
			MatchID: "m3", PlayerID: "p1", OpponentID: "other",
			IsWin: false, MatchPoints: 1,
			SetsWon: 0, SetsLost: 2, GamesWon: 3, GamesLost: 12,
		},
	}

	s := Summarize(results)

	if s.MatchesPlayed != 3 || s.Wins != 1 || s.Losses != 2 {
		t.Fatalf("record: got %d played %d-%d", s.MatchesPlayed, s.Wins, s.Losses)
	}
	if s.TotalPoints != 7 {
		t.Fatalf("total points: got %d, want 7 (counted rows only)", s.TotalPoints)
	}
	if s.CountedWins != 1 || s.CountedLosses != 1 {
		t.Fatalf("counted record: got %d-%d, want 1-1", s.CountedWins, s.CountedLosses)
	}

	if s.SetsWon != 3 || s.SetsLost != 4 {
		t.Fatalf("all-match sets: got %d-%d, want 3-4", s.SetsWon, s.SetsLost)
	}
	if s.CountedSetsWon != 3 || s.CountedSetsLost != 2 {
		t.Fatalf("counted sets: got %d-%d, want 3-2", s.CountedSetsWon, s.CountedSetsLost)
	}
	if s.CountedGamesWon != 27 || s.CountedGamesLost != 22 {
		t.Fatalf("counted games: got %d-%d, want 27-22", s.CountedGamesWon, s.CountedGamesLost)
	}

	if got := s.HeadToHead["rival"]; got.Wins != 1 || got.Losses != 1 {
		t.Fatalf("rival h2h: got %+v, want 1-1", got)
	}
	if got := s.HeadToHead["other"]; got.Wins != 0 || got.Losses != 1 {
		t.Fatalf("other h2h: got %+v, want 0-1", got)
	}
}

func TestSummaryPercentages(t *testing.T) {
	s := Summary{CountedSetsWon: 5, CountedSetsLost: 3, CountedGamesWon: 40, CountedGamesLost: 24}

	setPct, ok := s.SetWinPct()
	if !ok || setPct != 0.625 {
		t.Fatalf("set pct: got %v ok=%t, want 0.625", setPct, ok)
	}
	gamePct, ok := s.GameWinPct()
	if !ok || gamePct != 0.625 {
		t.Fatalf("game pct: got %v ok=%t, want 0.625", gamePct, ok)
	}

	empty := Summary{}
	if _, ok := empty.SetWinPct(); ok {
		t.Fatalf("expected no set pct for empty summary")
	}
	if _, ok := empty.GameWinPct(); ok {
		t.Fatalf("expected no game pct for empty summary")
	}
}
