package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/NxTech4021/dl-backend-sub007/internal/domain/standings"
	qb "github.com/NxTech4021/dl-backend-sub007/internal/platform/querybuilder"
)

const divisionStandingUpsertSuffix = `ON CONFLICT (division_id, season_id, player_id) DO UPDATE SET
	player_name = EXCLUDED.player_name,
	rank = EXCLUDED.rank,
	wins = EXCLUDED.wins,
	losses = EXCLUDED.losses,
	matches_played = EXCLUDED.matches_played,
	counted_wins = EXCLUDED.counted_wins,
	counted_losses = EXCLUDED.counted_losses,
	total_points = EXCLUDED.total_points,
	sets_won = EXCLUDED.sets_won,
	sets_lost = EXCLUDED.sets_lost,
	games_won = EXCLUDED.games_won,
	games_lost = EXCLUDED.games_lost,
	counted_sets_won = EXCLUDED.counted_sets_won,
	counted_sets_lost = EXCLUDED.counted_sets_lost,
	counted_games_won = EXCLUDED.counted_games_won,
	counted_games_lost = EXCLUDED.counted_games_lost,
	head_to_head = EXCLUDED.head_to_head,
	calculated_at = EXCLUDED.calculated_at,
	updated_at = NOW(),
	deleted_at = NULL`

type DivisionStandingRepository struct {
	db *sqlx.DB
}

func NewDivisionStandingRepository(db *sqlx.DB) *DivisionStandingRepository {
	return &DivisionStandingRepository{db: db}
}

func (r *DivisionStandingRepository) ListByKey(ctx context.Context, key standings.Key) ([]standings.DivisionStanding, error) {
	query, args, err := qb.Select("*").From("division_standings").
		Where(
			qb.Eq("division_id", key.DivisionID),
			qb.Eq("season_id", key.SeasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("rank", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []divisionStandingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list division standings: %w", err)
	}

	out := make([]standings.DivisionStanding, 0, len(rows))
	for _, row := range rows {
		item, err := divisionStandingFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// ApplyRecalculation replaces the standings table for one division+season
// and rewrites the counted marks on the underlying results in the same
// transaction, so readers never observe standings that disagree with the
// marks that produced them.
func (r *DivisionStandingRepository) ApplyRecalculation(ctx context.Context, key standings.Key, items []standings.DivisionStanding, marks []standings.ResultMark) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx apply recalculation: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	retireQuery, retireArgs, err := qb.Update("division_standings").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("division_id", key.DivisionID),
			qb.Eq("season_id", key.SeasonID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build retire standings query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, retireQuery, retireArgs...); err != nil {
		return fmt.Errorf("retire standings for %s: %w", key, err)
	}

	for _, item := range items {
		insertModel, err := divisionStandingToInsertModel(item)
		if err != nil {
			return err
		}
		query, args, err := qb.InsertModel("division_standings", insertModel, divisionStandingUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert standing query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert standing player=%s in %s: %w", item.PlayerID, key, err)
		}
	}

	clearQuery, clearArgs, err := qb.Update("match_results").
		Set("counts_for_standings", false).
		Set("result_sequence", nil).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("division_id", key.DivisionID),
			qb.Eq("season_id", key.SeasonID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear result marks query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear result marks for %s: %w", key, err)
	}

	for _, mark := range marks {
		if !mark.CountsForStandings {
			continue
		}
		markQuery, markArgs, err := qb.Update("match_results").
			Set("counts_for_standings", true).
			Set("result_sequence", mark.ResultSequence).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("match_id", mark.MatchID),
				qb.Eq("player_id", mark.PlayerID),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build apply result mark query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, markQuery, markArgs...); err != nil {
			return fmt.Errorf("apply result mark match=%s player=%s: %w", mark.MatchID, mark.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit apply recalculation tx: %w", err)
	}
	return nil
}
