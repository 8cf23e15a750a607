package standings

import "context"

// ResultMark is the per-result outcome of a recalculation pass: which
// rows count and in what sequence.
type ResultMark struct {
	MatchID            string
	PlayerID           string
	CountsForStandings bool
	ResultSequence     *int
}

type ResultRepository interface {
	ListByKey(ctx context.Context, key Key) ([]MatchResult, error)
	ListByKeyAndPlayer(ctx context.Context, key Key, playerID string) ([]MatchResult, error)
	// ReplaceMatch swaps all result rows of one match atomically, making
	// repeated ingestion of the same completed match idempotent.
	ReplaceMatch(ctx context.Context, matchID string, results []MatchResult) error
	DeleteByMatch(ctx context.Context, matchID string) (Key, bool, error)
	ListKeys(ctx context.Context) ([]Key, error)
}

type StandingRepository interface {
	ListByKey(ctx context.Context, key Key) ([]DivisionStanding, error)
	// ApplyRecalculation overwrites the division's standings rows and
	// rewrites every result's counted mark in a single transaction. A
	// failure leaves the previous standings untouched.
	ApplyRecalculation(ctx context.Context, key Key, items []DivisionStanding, marks []ResultMark) error
}
