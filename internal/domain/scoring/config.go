package scoring

// Config carries the point weights applied per match. It is passed
// explicitly into the calculator so seasons can tune weights without
// touching package state.
type Config struct {
	ParticipationPoints int
	WinBonusPoints      int
	// DecidingTiebreakCountsGames controls how a deciding tiebreak
	// segment feeds the game totals: when true its raw points are added
	// as games, when false the segment counts as a single game for its
	// winner.
	DecidingTiebreakCountsGames bool
}

func DefaultConfig() Config {
	return Config{
		ParticipationPoints: 1,
		WinBonusPoints:      2,
	}
}
