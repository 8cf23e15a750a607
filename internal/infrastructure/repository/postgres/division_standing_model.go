package postgres

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/NxTech4021/dl-backend-sub007/internal/domain/standings"
)

type divisionStandingTableModel struct {
	ID         int64  `db:"id"`
	DivisionID string `db:"division_id"`
	SeasonID   string `db:"season_id"`
	PlayerID   string `db:"player_id"`
	PlayerName string `db:"player_name"`
	Rank       int    `db:"rank"`

	Wins          int `db:"wins"`
	Losses        int `db:"losses"`
	MatchesPlayed int `db:"matches_played"`
	CountedWins   int `db:"counted_wins"`
	CountedLosses int `db:"counted_losses"`

	TotalPoints int `db:"total_points"`

	SetsWon   int `db:"sets_won"`
	SetsLost  int `db:"sets_lost"`
	GamesWon  int `db:"games_won"`
	GamesLost int `db:"games_lost"`

	CountedSetsWon   int `db:"counted_sets_won"`
	CountedSetsLost  int `db:"counted_sets_lost"`
	CountedGamesWon  int `db:"counted_games_won"`
	CountedGamesLost int `db:"counted_games_lost"`

	HeadToHead []byte `db:"head_to_head"`

	CalculatedAt time.Time  `db:"calculated_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type divisionStandingInsertModel struct {
	DivisionID string `db:"division_id"`
	SeasonID   string `db:"season_id"`
	PlayerID   string `db:"player_id"`
	PlayerName string `db:"player_name"`
	Rank       int    `db:"rank"`

	Wins          int `db:"wins"`
	Losses        int `db:"losses"`
	MatchesPlayed int `db:"matches_played"`
	CountedWins   int `db:"counted_wins"`
	CountedLosses int `db:"counted_losses"`

	TotalPoints int `db:"total_points"`

	SetsWon   int `db:"sets_won"`
	SetsLost  int `db:"sets_lost"`
	GamesWon  int `db:"games_won"`
	GamesLost int `db:"games_lost"`

	CountedSetsWon   int `db:"counted_sets_won"`
	CountedSetsLost  int `db:"counted_sets_lost"`
	CountedGamesWon  int `db:"counted_games_won"`
	CountedGamesLost int `db:"counted_games_lost"`

	HeadToHead []byte `db:"head_to_head"`

	CalculatedAt time.Time `db:"calculated_at"`
}

func divisionStandingToInsertModel(item standings.DivisionStanding) (divisionStandingInsertModel, error) {
	h2h := item.HeadToHead
	if h2h == nil {
		h2h = map[string]standings.H2HRecord{}
	}
	encoded, err := sonic.Marshal(h2h)
	if err != nil {
		return divisionStandingInsertModel{}, errors.Wrapf(err, "encode head-to-head for player %s", item.PlayerID)
	}

	return divisionStandingInsertModel{
		DivisionID:       item.DivisionID,
		SeasonID:         item.SeasonID,
		PlayerID:         item.PlayerID,
		PlayerName:       item.PlayerName,
		Rank:             item.Rank,
		Wins:             item.Wins,
		Losses:           item.Losses,
		MatchesPlayed:    item.MatchesPlayed,
		CountedWins:      item.CountedWins,
		CountedLosses:    item.CountedLosses,
		TotalPoints:      item.TotalPoints,
		SetsWon:          item.SetsWon,
		SetsLost:         item.SetsLost,
		GamesWon:         item.GamesWon,
		GamesLost:        item.GamesLost,
		CountedSetsWon:   item.CountedSetsWon,
		CountedSetsLost:  item.CountedSetsLost,
		CountedGamesWon:  item.CountedGamesWon,
		CountedGamesLost: item.CountedGamesLost,
		HeadToHead:       encoded,
		CalculatedAt:     item.CalculatedAt,
	}, nil
}

func divisionStandingFromRow(row divisionStandingTableModel) (standings.DivisionStanding, error) {
	h2h := map[string]standings.H2HRecord{}
	if len(row.HeadToHead) > 0 {
		if err := sonic.Unmarshal(row.HeadToHead, &h2h); err != nil {
			return standings.DivisionStanding{}, errors.Wrapf(err, "decode head-to-head for player %s", row.PlayerID)
		}
	}

	return standings.DivisionStanding{
		DivisionID:       row.DivisionID,
		SeasonID:         row.SeasonID,
		PlayerID:         row.PlayerID,
		PlayerName:       row.PlayerName,
		Rank:             row.Rank,
		Wins:             row.Wins,
		Losses:           row.Losses,
		MatchesPlayed:    row.MatchesPlayed,
		CountedWins:      row.CountedWins,
		CountedLosses:    row.CountedLosses,
		TotalPoints:      row.TotalPoints,
		SetsWon:          row.SetsWon,
		SetsLost:         row.SetsLost,
		GamesWon:         row.GamesWon,
		GamesLost:        row.GamesLost,
		CountedSetsWon:   row.CountedSetsWon,
		CountedSetsLost:  row.CountedSetsLost,
		CountedGamesWon:  row.CountedGamesWon,
		CountedGamesLost: row.CountedGamesLost,
		HeadToHead:       h2h,
		CalculatedAt:     row.CalculatedAt,
	}, nil
}
