package scoring

import (
	"fmt"

	"github.com/NxTech4021/dl-backend-sub007/internal/domain/match"
)

// Breakdown is the per-participant point award for one match.
type Breakdown struct {
	PlayerID   string
	OpponentID string
	Team       match.Team
	IsWin      bool

	ParticipationPoints int
	SetsWonPoints       int
	WinBonusPoints      int
	MatchPoints         int

	// Margin is the signed game differential between the participant's
	// team and the opposing team.
	Margin int

	SetsWon   int
	SetsLost  int
	GamesWon  int
	GamesLost int
}

// CalculatePoints converts a parsed outcome plus the participant list
// into one breakdown per participant. Matches are singles (two
// participants) or doubles (four), split across two equal sides.
// Participants without team labels are split by list order into two
// halves; any other shape fails with ErrInvalidTeamAssignment.
func CalculatePoints(outcome Outcome, participants []match.Participant, cfg Config) ([]Breakdown, error) {
	team1, team2, err := splitTeams(participants)
	if err != nil {
		return nil, err
	}

	out := make([]Breakdown, 0, len(participants))
	for _, p := range team1 {
		out = append(out, buildBreakdown(p.PlayerID, match.TeamOne, outcome, team1, team2, cfg))
	}
	for _, p := range team2 {
		out = append(out, buildBreakdown(p.PlayerID, match.TeamTwo, outcome, team1, team2, cfg))
	}
	return out, nil
}

func buildBreakdown(playerID string, team match.Team, outcome Outcome, team1, team2 []match.Participant, cfg Config) Breakdown {
	ownUnits, oppUnits := outcome.Team1Units, outcome.Team2Units
	ownGames, oppGames := outcome.Team1Games, outcome.Team2Games
	won := outcome.Winner == SideTeam1
	if team == match.TeamTwo {
		ownUnits, oppUnits = oppUnits, ownUnits
		ownGames, oppGames = oppGames, ownGames
		won = outcome.Winner == SideTeam2
	}

	b := Breakdown{
		PlayerID:            playerID,
		OpponentID:          opponentFor(team, team1, team2),
		Team:                team,
		IsWin:               won,
		ParticipationPoints: cfg.ParticipationPoints,
		SetsWonPoints:       ownUnits,
		Margin:              ownGames - oppGames,
		SetsWon:             ownUnits,
		SetsLost:            oppUnits,
		GamesWon:            ownGames,
		GamesLost:           oppGames,
	}
	if won {
		b.WinBonusPoints = cfg.WinBonusPoints
	}
	b.MatchPoints = b.ParticipationPoints + b.SetsWonPoints + b.WinBonusPoints
	return b
}

// opponentFor resolves the recorded opponent: the other participant in
// singles, the first-listed participant of the opposing team in doubles.
// The doubles convention is fixed; no cross-pairing is attempted.
func opponentFor(team match.Team, team1, team2 []match.Participant) string {
	opposing := team2
	if team == match.TeamTwo {
		opposing = team1
	}
	if len(opposing) == 0 {
		return ""
	}
	return opposing[0].PlayerID
}

func splitTeams(participants []match.Participant) ([]match.Participant, []match.Participant, error) {
	if len(participants) != 2 && len(participants) != 4 {
		return nil, nil, fmt.Errorf("%w: %d participant(s), want 2 for singles or 4 for doubles", ErrInvalidTeamAssignment, len(participants))
	}

	labeled := true
	for _, p := range participants {
		if p.Team != match.TeamOne && p.Team != match.TeamTwo {
			labeled = false
			break
		}
	}

	var team1, team2 []match.Participant
	if labeled {
		for _, p := range participants {
			if p.Team == match.TeamOne {
				team1 = append(team1, p)
			} else {
				team2 = append(team2, p)
			}
		}
	} else {
		// Fallback: no usable labels, split by list order into halves.
		half := len(participants) / 2
		team1 = append(team1, participants[:half]...)
		team2 = append(team2, participants[half:]...)
	}

	if len(team1) != len(team2) {
		return nil, nil, fmt.Errorf("%w: %d vs %d participants per side", ErrInvalidTeamAssignment, len(team1), len(team2))
	}
	return team1, team2, nil
}
