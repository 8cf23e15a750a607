package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/NxTech4021/dl-backend-sub007/internal/domain/player"
	qb "github.com/NxTech4021/dl-backend-sub007/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByDivisionSeason(ctx context.Context, divisionID, seasonID string) ([]player.Player, error) {
	query, args, err := qb.Select("player_id", "display_name").From("division_players").
		Where(
			qb.Eq("division_id", divisionID),
			qb.Eq("season_id", seasonID),
		).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list division players query: %w", err)
	}

	var rows []struct {
		PlayerID    string `db:"player_id"`
		DisplayName string `db:"display_name"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list division players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{ID: row.PlayerID, DisplayName: row.DisplayName})
	}
	return out, nil
}
