package usecase

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/NxTech4021/dl-backend-sub007/internal/domain/standings"
)

// StandingRow is the display shape consumed by reporting collaborators.
// Percentages are preformatted; a player with no counted sets shows
// "N/A" rather than a misleading zero.
type StandingRow struct {
	Rank           int    `json:"rank"`
	PlayerID       string `json:"playerId"`
	PlayerName     string `json:"playerName"`
	TotalPoints    int    `json:"totalPoints"`
	Record         string `json:"record"`
	ResultsCounted string `json:"resultsCounted"`
	SetsWon        int    `json:"setsWon"`
	SetsLost       int    `json:"setsLost"`
	SetWinPct      string `json:"setWinPct"`
	GamesWon       int    `json:"gamesWon"`
	GamesLost      int    `json:"gamesLost"`
	GameWinPct     string `json:"gameWinPct"`
}

// ListStandings returns the ranked rows for one division+season. A
// division with no data yields an empty list, not an error.
func (s *StandingsService) ListStandings(ctx context.Context, key standings.Key) ([]StandingRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ListStandings")
	defer span.End()

	if key.IsZero() {
		return nil, errors.Wrap(ErrInvalidInput, "division and season ids are required")
	}

	items, err := s.standingRepo.ListByKey(ctx, key)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "list standings for %s", key), ErrStandingsUnavailable)
	}

	out := make([]StandingRow, 0, len(items))
	for _, item := range items {
		out = append(out, StandingRow{
			Rank:           item.Rank,
			PlayerID:       item.PlayerID,
			PlayerName:     item.PlayerName,
			TotalPoints:    item.TotalPoints,
			Record:         fmt.Sprintf("%d-%d", item.Wins, item.Losses),
			ResultsCounted: formatResultsCounted(item.CountedWins, item.CountedLosses),
			SetsWon:        item.SetsWon,
			SetsLost:       item.SetsLost,
			SetWinPct:      formatWinPct(item.CountedSetsWon, item.CountedSetsLost),
			GamesWon:       item.GamesWon,
			GamesLost:      item.GamesLost,
			GameWinPct:     formatWinPct(item.CountedGamesWon, item.CountedGamesLost),
		})
	}
	return out, nil
}

// ListPlayerResults returns a player's chronological result rows with
// counted flags, for history display.
func (s *StandingsService) ListPlayerResults(ctx context.Context, key standings.Key, playerID string) ([]standings.MatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ListPlayerResults")
	defer span.End()

	if key.IsZero() || playerID == "" {
		return nil, errors.Wrap(ErrInvalidInput, "division, season and player ids are required")
	}

	items, err := s.resultRepo.ListByKeyAndPlayer(ctx, key, playerID)
	if err != nil {
		return nil, errors.Wrapf(err, "list results for player %s in %s", playerID, key)
	}
	return items, nil
}

func formatResultsCounted(wins, losses int) string {
	if losses == 0 {
		return pluralize(wins, "win")
	}
	return pluralize(wins, "win") + " + " + pluralize(losses, "loss")
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	if noun == "loss" {
		return fmt.Sprintf("%d losses", n)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func formatWinPct(won, lost int) string {
	total := won + lost
	if total == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", float64(won)/float64(total)*100)
}
