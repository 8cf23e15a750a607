package player

import "context"

type Repository interface {
	ListByDivisionSeason(ctx context.Context, divisionID, seasonID string) ([]Player, error)
}
