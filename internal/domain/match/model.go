package match

import "time"

// Status is the final state reported by the match lifecycle workflow.
// Only completed matches enter the standings engine; voided matches
// trigger removal of their result rows.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusVoided    Status = "voided"
)

// Format selects which score parser applies.
type Format string

const (
	// FormatSets scores matches as a list of sets, each holding games.
	FormatSets Format = "sets"
	// FormatGames scores matches as a list of games, each holding points.
	FormatGames Format = "games"
)

type Team string

const (
	TeamOne Team = "team1"
	TeamTwo Team = "team2"
)

type Participant struct {
	PlayerID string
	Team     Team
}

// SetScore holds games won by each side in one set. A deciding tiebreak
// segment (a match tiebreak played in place of a full final set) carries
// raw points instead of games and is flagged as such.
type SetScore struct {
	Team1            int
	Team2            int
	DecidingTiebreak bool
}

// GameScore holds points won by each side in one game, for point-based
// formats where the game is the scoring unit.
type GameScore struct {
	Team1 int
	Team2 int
}

// Match is a finalized match record as delivered by the (external)
// match lifecycle collaborator.
type Match struct {
	ID           string
	DivisionID   string
	SeasonID     string
	PlayedAt     time.Time
	Status       Status
	Format       Format
	Participants []Participant
	Sets         []SetScore
	Games        []GameScore
}

// IsDoubles reports whether the match has four participants.
func (m Match) IsDoubles() bool {
	return len(m.Participants) == 4
}
