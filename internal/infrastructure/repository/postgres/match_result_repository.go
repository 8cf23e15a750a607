package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/NxTech4021/dl-backend-sub007/internal/domain/standings"
	qb "github.com/NxTech4021/dl-backend-sub007/internal/platform/querybuilder"
)

type MatchResultRepository struct {
	db *sqlx.DB
}

func NewMatchResultRepository(db *sqlx.DB) *MatchResultRepository {
	return &MatchResultRepository{db: db}
}

func (r *MatchResultRepository) ListByKey(ctx context.Context, key standings.Key) ([]standings.MatchResult, error) {
	query, args, err := qb.Select("*").From("match_results").
		Where(
			qb.Eq("division_id", key.DivisionID),
			qb.Eq("season_id", key.SeasonID),
		).
		OrderBy("played_at", "match_id", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match results query: %w", err)
	}

	var rows []matchResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match results: %w", err)
	}
	return matchResultsFromRows(rows), nil
}

func (r *MatchResultRepository) ListByKeyAndPlayer(ctx context.Context, key standings.Key, playerID string) ([]standings.MatchResult, error) {
	query, args, err := qb.Select("*").From("match_results").
		Where(
			qb.Eq("division_id", key.DivisionID),
			qb.Eq("season_id", key.SeasonID),
			qb.Eq("player_id", playerID),
		).
		OrderBy("played_at", "match_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player results query: %w", err)
	}

	var rows []matchResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player results: %w", err)
	}
	return matchResultsFromRows(rows), nil
}

func (r *MatchResultRepository) ReplaceMatch(ctx context.Context, matchID string, results []standings.MatchResult) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace match results: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("match_results").
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match results query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete match results match=%s: %w", matchID, err)
	}

	for _, item := range results {
		insertModel := matchResultInsertModel{
			MatchID:             item.MatchID,
			PlayerID:            item.PlayerID,
			DivisionID:          item.DivisionID,
			SeasonID:            item.SeasonID,
			OpponentID:          item.OpponentID,
			PlayedAt:            item.PlayedAt,
			SetsWon:             item.SetsWon,
			SetsLost:            item.SetsLost,
			GamesWon:            item.GamesWon,
			GamesLost:           item.GamesLost,
			ParticipationPoints: item.ParticipationPoints,
			SetsWonPoints:       item.SetsWonPoints,
			WinBonusPoints:      item.WinBonusPoints,
			MatchPoints:         item.MatchPoints,
			Margin:              item.Margin,
			IsWin:               item.IsWin,
			CountsForStandings:  item.CountsForStandings,
			ResultSequence:      item.ResultSequence,
		}
		query, args, err := qb.InsertModel("match_results", insertModel, "")
		if err != nil {
			return fmt.Errorf("build insert match result query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert match result match=%s player=%s: %w", item.MatchID, item.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace match results tx: %w", err)
	}
	return nil
}

func (r *MatchResultRepository) DeleteByMatch(ctx context.Context, matchID string) (standings.Key, bool, error) {
	keyQuery, keyArgs, err := qb.Select("division_id", "season_id").From("match_results").
		Where(qb.Eq("match_id", matchID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return standings.Key{}, false, fmt.Errorf("build lookup match key query: %w", err)
	}

	var keyRow struct {
		DivisionID string `db:"division_id"`
		SeasonID   string `db:"season_id"`
	}
	if err := r.db.GetContext(ctx, &keyRow, keyQuery, keyArgs...); err != nil {
		if isNotFound(err) {
			return standings.Key{}, false, nil
		}
		return standings.Key{}, false, fmt.Errorf("lookup match key match=%s: %w", matchID, err)
	}

	deleteQuery, deleteArgs, err := qb.DeleteFrom("match_results").
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return standings.Key{}, false, fmt.Errorf("build delete match results query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return standings.Key{}, false, fmt.Errorf("delete match results match=%s: %w", matchID, err)
	}

	return standings.Key{DivisionID: keyRow.DivisionID, SeasonID: keyRow.SeasonID}, true, nil
}

func (r *MatchResultRepository) ListKeys(ctx context.Context) ([]standings.Key, error) {
	query, args, err := qb.Select("DISTINCT division_id", "season_id").From("match_results").
		OrderBy("division_id", "season_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list keys query: %w", err)
	}

	var rows []struct {
		DivisionID string `db:"division_id"`
		SeasonID   string `db:"season_id"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list division+season keys: %w", err)
	}

	out := make([]standings.Key, 0, len(rows))
	for _, row := range rows {
		out = append(out, standings.Key{DivisionID: row.DivisionID, SeasonID: row.SeasonID})
	}
	return out, nil
}

func matchResultsFromRows(rows []matchResultTableModel) []standings.MatchResult {
	out := make([]standings.MatchResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, standings.MatchResult{
			MatchID:             row.MatchID,
			PlayerID:            row.PlayerID,
			DivisionID:          row.DivisionID,
			SeasonID:            row.SeasonID,
			OpponentID:          row.OpponentID,
			PlayedAt:            row.PlayedAt,
			SetsWon:             row.SetsWon,
			SetsLost:            row.SetsLost,
			GamesWon:            row.GamesWon,
			GamesLost:           row.GamesLost,
			ParticipationPoints: row.ParticipationPoints,
			SetsWonPoints:       row.SetsWonPoints,
			WinBonusPoints:      row.WinBonusPoints,
			MatchPoints:         row.MatchPoints,
			Margin:              row.Margin,
			IsWin:               row.IsWin,
			CountsForStandings:  row.CountsForStandings,
			ResultSequence:      row.ResultSequence,
		})
	}
	return out
}
