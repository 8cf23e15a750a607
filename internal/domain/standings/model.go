package standings

import "time"

// Key scopes standings computation. Players are only ranked against
// others sharing the same division+season.
type Key struct {
	DivisionID string
	SeasonID   string
}

func (k Key) String() string {
	return k.DivisionID + ":" + k.SeasonID
}

func (k Key) IsZero() bool {
	return k.DivisionID == "" || k.SeasonID == ""
}

// MatchResult is one row per (match, player). Point fields are fixed at
// match completion; the counted flag and sequence are rewritten on every
// recalculation pass and never mutated outside one.
type MatchResult struct {
	MatchID    string
	PlayerID   string
	DivisionID string
	SeasonID   string
	OpponentID string
	PlayedAt   time.Time

	SetsWon   int
	SetsLost  int
	GamesWon  int
	GamesLost int

	ParticipationPoints int
	SetsWonPoints       int
	WinBonusPoints      int
	MatchPoints         int
	Margin              int

	IsWin              bool
	CountsForStandings bool
	ResultSequence     *int
}

func (r MatchResult) Key() Key {
	return Key{DivisionID: r.DivisionID, SeasonID: r.SeasonID}
}

// H2HRecord tallies one rivalry from the perspective of the owning player.
type H2HRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// DivisionStanding is one row per (player, division, season). Rows are
// fully overwritten on each recalculation; nothing is patched in place.
type DivisionStanding struct {
	DivisionID string
	SeasonID   string
	PlayerID   string
	PlayerName string
	Rank       int

	Wins          int
	Losses        int
	MatchesPlayed int
	CountedWins   int
	CountedLosses int

	TotalPoints int

	SetsWon   int
	SetsLost  int
	GamesWon  int
	GamesLost int

	CountedSetsWon   int
	CountedSetsLost  int
	CountedGamesWon  int
	CountedGamesLost int

	// HeadToHead covers the player's complete match history against each
	// opponent, independent of which results count toward points.
	HeadToHead map[string]H2HRecord

	CalculatedAt time.Time
}
