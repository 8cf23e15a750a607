package standings

// Summary is the aggregate view of one player's result history after
// selection. Record and set/game totals cover all matches; the counted
// fields cover only the best-N subset and feed percentage tiebreakers.
type Summary struct {
	Wins          int
	Losses        int
	MatchesPlayed int

	CountedWins   int
	CountedLosses int
	TotalPoints   int

	SetsWon   int
	SetsLost  int
	GamesWon  int
	GamesLost int

	CountedSetsWon   int
	CountedSetsLost  int
	CountedGamesWon  int
	CountedGamesLost int

	HeadToHead map[string]H2HRecord
}

// Summarize reduces a player's full history (counted flags already set)
// into a fresh Summary. The head-to-head map deliberately spans every
// match, counted or not: points reflect the best N, rivalry history does
// not.
func Summarize(results []MatchResult) Summary {
	s := Summary{HeadToHead: make(map[string]H2HRecord)}

	for _, r := range results {
		s.MatchesPlayed++
		s.SetsWon += r.SetsWon
		s.SetsLost += r.SetsLost
		s.GamesWon += r.GamesWon
		s.GamesLost += r.GamesLost

		if r.IsWin {
			s.Wins++
		} else {
			s.Losses++
		}

		if r.OpponentID != "" {
			record := s.HeadToHead[r.OpponentID]
			if r.IsWin {
				record.Wins++
			} else {
				record.Losses++
			}
			s.HeadToHead[r.OpponentID] = record
		}

		if !r.CountsForStandings {
			continue
		}
		s.TotalPoints += r.MatchPoints
		s.CountedSetsWon += r.SetsWon
		s.CountedSetsLost += r.SetsLost
		s.CountedGamesWon += r.GamesWon
		s.CountedGamesLost += r.GamesLost
		if r.IsWin {
			s.CountedWins++
		} else {
			s.CountedLosses++
		}
	}

	return s
}

// SetWinPct is the counted-only set percentage. ok is false when the
// player has no counted sets at all.
func (s Summary) SetWinPct() (float64, bool) {
	total := s.CountedSetsWon + s.CountedSetsLost
	if total == 0 {
		return 0, false
	}
	return float64(s.CountedSetsWon) / float64(total), true
}

// GameWinPct is the counted-only game percentage.
func (s Summary) GameWinPct() (float64, bool) {
	total := s.CountedGamesWon + s.CountedGamesLost
	if total == 0 {
		return 0, false
	}
	return float64(s.CountedGamesWon) / float64(total), true
}
