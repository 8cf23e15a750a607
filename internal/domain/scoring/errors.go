package scoring

import "errors"

var (
	// ErrInvalidTeamAssignment is returned when participants cannot be
	// split into two non-empty teams. The calculator never guesses a
	// winner for such input.
	ErrInvalidTeamAssignment = errors.New("invalid team assignment")
	// ErrNoScores is returned when a match carries no score rows for
	// its declared format.
	ErrNoScores = errors.New("match has no scores")
	// ErrUnresolvedWinner is returned when the score totals do not
	// resolve a winning side.
	ErrUnresolvedWinner = errors.New("score does not resolve a winner")
	// ErrScoreOutOfRange is returned when a side wins more than two
	// scoring units. Matches are best of three; the point award per
	// participant stays within 1..5 only under that bound.
	ErrScoreOutOfRange = errors.New("score exceeds best-of-three bounds")
)
