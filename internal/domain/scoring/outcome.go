package scoring

import (
	"fmt"

	"github.com/NxTech4021/dl-backend-sub007/internal/domain/match"
)

type Side int

const (
	SideNone Side = iota
	SideTeam1
	SideTeam2
)

// Outcome is a match score reduced to team-level totals. Units are the
// scoring unit of the format (sets for set-based matches, games for
// game-based matches) and drive point awards; games drive the margin.
type Outcome struct {
	Team1Units int
	Team2Units int
	Team1Games int
	Team2Games int
	Winner     Side
}

// ParseOutcome dispatches on the match format.
func ParseOutcome(m match.Match, cfg Config) (Outcome, error) {
	switch m.Format {
	case match.FormatGames:
		return ParseGameScores(m.Games)
	case match.FormatSets, "":
		return ParseSetScores(m.Sets, cfg)
	default:
		return Outcome{}, fmt.Errorf("unknown match format %q", m.Format)
	}
}

// ParseSetScores determines per-set winners and sums games won by each
// team. A deciding tiebreak set contributes its points as games or as a
// single game for its winner, per cfg.
func ParseSetScores(sets []match.SetScore, cfg Config) (Outcome, error) {
	if len(sets) == 0 {
		return Outcome{}, ErrNoScores
	}

	out := Outcome{}
	for i, set := range sets {
		if set.Team1 == set.Team2 {
			return Outcome{}, fmt.Errorf("%w: set %d is drawn %d-%d", ErrUnresolvedWinner, i+1, set.Team1, set.Team2)
		}

		if set.Team1 > set.Team2 {
			out.Team1Units++
		} else {
			out.Team2Units++
		}

		if set.DecidingTiebreak && !cfg.DecidingTiebreakCountsGames {
			if set.Team1 > set.Team2 {
				out.Team1Games++
			} else {
				out.Team2Games++
			}
			continue
		}
		out.Team1Games += set.Team1
		out.Team2Games += set.Team2
	}

	return resolveWinner(out)
}

// ParseGameScores determines per-game winners for point-based formats.
// The game is both the scoring unit and the margin unit.
func ParseGameScores(games []match.GameScore) (Outcome, error) {
	if len(games) == 0 {
		return Outcome{}, ErrNoScores
	}

	out := Outcome{}
	for i, game := range games {
		if game.Team1 == game.Team2 {
			return Outcome{}, fmt.Errorf("%w: game %d is drawn %d-%d", ErrUnresolvedWinner, i+1, game.Team1, game.Team2)
		}
		if game.Team1 > game.Team2 {
			out.Team1Units++
		} else {
			out.Team2Units++
		}
	}
	out.Team1Games = out.Team1Units
	out.Team2Games = out.Team2Units

	return resolveWinner(out)
}

// maxUnitsPerSide bounds a best-of-three match: no side can win more
// than two sets (or games, for game-scored formats).
const maxUnitsPerSide = 2

func resolveWinner(out Outcome) (Outcome, error) {
	if out.Team1Units > maxUnitsPerSide || out.Team2Units > maxUnitsPerSide {
		return Outcome{}, fmt.Errorf("%w: %d-%d units", ErrScoreOutOfRange, out.Team1Units, out.Team2Units)
	}
	switch {
	case out.Team1Units > out.Team2Units:
		out.Winner = SideTeam1
	case out.Team2Units > out.Team1Units:
		out.Winner = SideTeam2
	default:
		return Outcome{}, fmt.Errorf("%w: %d-%d units", ErrUnresolvedWinner, out.Team1Units, out.Team2Units)
	}
	return out, nil
}
