package postgres

import "time"

type matchResultTableModel struct {
	ID                  int64      `db:"id"`
	MatchID             string     `db:"match_id"`
	PlayerID            string     `db:"player_id"`
	DivisionID          string     `db:"division_id"`
	SeasonID            string     `db:"season_id"`
	OpponentID          string     `db:"opponent_id"`
	PlayedAt            time.Time  `db:"played_at"`
	SetsWon             int        `db:"sets_won"`
	SetsLost            int        `db:"sets_lost"`
	GamesWon            int        `db:"games_won"`
	GamesLost           int        `db:"games_lost"`
	ParticipationPoints int        `db:"participation_points"`
	SetsWonPoints       int        `db:"sets_won_points"`
	WinBonusPoints      int        `db:"win_bonus_points"`
	MatchPoints         int        `db:"match_points"`
	Margin              int        `db:"margin"`
	IsWin               bool       `db:"is_win"`
	CountsForStandings  bool       `db:"counts_for_standings"`
	ResultSequence      *int       `db:"result_sequence"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
}

type matchResultInsertModel struct {
	MatchID             string    `db:"match_id"`
	PlayerID            string    `db:"player_id"`
	DivisionID          string    `db:"division_id"`
	SeasonID            string    `db:"season_id"`
	OpponentID          string    `db:"opponent_id"`
	PlayedAt            time.Time `db:"played_at"`
	SetsWon             int       `db:"sets_won"`
	SetsLost            int       `db:"sets_lost"`
	GamesWon            int       `db:"games_won"`
	GamesLost           int       `db:"games_lost"`
	ParticipationPoints int       `db:"participation_points"`
	SetsWonPoints       int       `db:"sets_won_points"`
	WinBonusPoints      int       `db:"win_bonus_points"`
	MatchPoints         int       `db:"match_points"`
	Margin              int       `db:"margin"`
	IsWin               bool      `db:"is_win"`
	CountsForStandings  bool      `db:"counts_for_standings"`
	ResultSequence      *int      `db:"result_sequence"`
}
