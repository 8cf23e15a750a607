package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/NxTech4021/dl-backend-sub007/internal/domain/match"
	"github.com/NxTech4021/dl-backend-sub007/internal/domain/player"
	"github.com/NxTech4021/dl-backend-sub007/internal/domain/scoring"
	"github.com/NxTech4021/dl-backend-sub007/internal/domain/standings"
	"github.com/NxTech4021/dl-backend-sub007/internal/platform/logging"
	"github.com/NxTech4021/dl-backend-sub007/internal/platform/resilience"
)

// StandingsService is the recalculation orchestrator. It owns no
// computation of its own: points, selection, aggregation and ranking
// are pure domain functions; this service feeds them batched store
// data and persists the outcome atomically per division+season.
type StandingsService struct {
	resultRepo   standings.ResultRepository
	standingRepo standings.StandingRepository
	playerRepo   player.Repository

	scoringCfg   scoring.Config
	selectionCfg standings.SelectionConfig
	ranker       *standings.Ranker

	// recalcLocks serializes recalculation per key; different keys run
	// in parallel freely.
	recalcLocks resilience.KeyedMutex
	maxWorkers  int

	logger *logging.Logger
	now    func() time.Time
}

func NewStandingsService(
	resultRepo standings.ResultRepository,
	standingRepo standings.StandingRepository,
	playerRepo player.Repository,
	scoringCfg scoring.Config,
	selectionCfg standings.SelectionConfig,
	ranker *standings.Ranker,
	maxWorkers int,
	logger *logging.Logger,
) *StandingsService {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsService{
		resultRepo:   resultRepo,
		standingRepo: standingRepo,
		playerRepo:   playerRepo,
		scoringCfg:   scoringCfg,
		selectionCfg: selectionCfg,
		ranker:       ranker,
		maxWorkers:   maxWorkers,
		logger:       logger,
		now:          time.Now,
	}
}

// RecordCompletedMatch converts a finalized match into per-player result
// rows and recalculates the division. Re-ingesting the same match
// replaces its rows, so the operation is idempotent.
func (s *StandingsService) RecordCompletedMatch(ctx context.Context, m match.Match) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.RecordCompletedMatch")
	defer span.End()

	if m.ID == "" || m.DivisionID == "" || m.SeasonID == "" {
		return errors.Wrap(ErrInvalidInput, "match, division and season ids are required")
	}
	if m.PlayedAt.IsZero() {
		return errors.Wrap(ErrInvalidInput, "match play date is required")
	}
	if m.Status != match.StatusCompleted {
		return errors.Wrapf(ErrInvalidInput, "match %s is not completed (status=%s)", m.ID, m.Status)
	}

	outcome, err := scoring.ParseOutcome(m, s.scoringCfg)
	if err != nil {
		return errors.Wrapf(err, "parse outcome for match %s", m.ID)
	}
	breakdowns, err := scoring.CalculatePoints(outcome, m.Participants, s.scoringCfg)
	if err != nil {
		return errors.Wrapf(err, "calculate points for match %s", m.ID)
	}

	rows := make([]standings.MatchResult, 0, len(breakdowns))
	for _, b := range breakdowns {
		rows = append(rows, standings.MatchResult{
			MatchID:             m.ID,
			PlayerID:            b.PlayerID,
			DivisionID:          m.DivisionID,
			SeasonID:            m.SeasonID,
			OpponentID:          b.OpponentID,
			PlayedAt:            m.PlayedAt.UTC(),
			SetsWon:             b.SetsWon,
			SetsLost:            b.SetsLost,
			GamesWon:            b.GamesWon,
			GamesLost:           b.GamesLost,
			ParticipationPoints: b.ParticipationPoints,
			SetsWonPoints:       b.SetsWonPoints,
			WinBonusPoints:      b.WinBonusPoints,
			MatchPoints:         b.MatchPoints,
			Margin:              b.Margin,
			IsWin:               b.IsWin,
		})
	}

	if err := s.resultRepo.ReplaceMatch(ctx, m.ID, rows); err != nil {
		return errors.Wrapf(err, "store result rows for match %s", m.ID)
	}

	return s.Recalculate(ctx, standings.Key{DivisionID: m.DivisionID, SeasonID: m.SeasonID})
}

// VoidMatch removes a voided/reversed match's result rows and
// recalculates the affected division.
func (s *StandingsService) VoidMatch(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.VoidMatch")
	defer span.End()

	if matchID == "" {
		return errors.Wrap(ErrInvalidInput, "match id is required")
	}

	key, found, err := s.resultRepo.DeleteByMatch(ctx, matchID)
	if err != nil {
		return errors.Wrapf(err, "delete result rows for match %s", matchID)
	}
	if !found {
		return errors.Wrapf(ErrNotFound, "match %s has no result rows", matchID)
	}

	return s.Recalculate(ctx, key)
}

// Recalculate rebuilds one division+season from scratch: two batched
// reads, pure in-memory computation, one transactional write. Safe to
// re-run; serialized against itself per key.
func (s *StandingsService) Recalculate(ctx context.Context, key standings.Key) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Recalculate")
	defer span.End()

	if key.IsZero() {
		return errors.Wrap(ErrInvalidInput, "division and season ids are required")
	}

	s.recalcLocks.Lock(key.String())
	defer s.recalcLocks.Unlock(key.String())

	started := s.now()

	var (
		results    []standings.MatchResult
		players    []player.Player
		resultsErr error
		playersErr error
	)
	var wg conc.WaitGroup
	wg.Go(func() {
		results, resultsErr = s.resultRepo.ListByKey(ctx, key)
	})
	wg.Go(func() {
		players, playersErr = s.playerRepo.ListByDivisionSeason(ctx, key.DivisionID, key.SeasonID)
	})
	wg.Wait()

	if resultsErr != nil {
		return errors.Mark(errors.Wrapf(resultsErr, "load match results for %s", key), ErrStandingsUnavailable)
	}
	if playersErr != nil {
		return errors.Mark(errors.Wrapf(playersErr, "load players for %s", key), ErrStandingsUnavailable)
	}

	items, marks := s.compute(key, results, players)

	if err := s.standingRepo.ApplyRecalculation(ctx, key, items, marks); err != nil {
		return errors.Mark(errors.Wrapf(err, "apply recalculation for %s", key), ErrStandingsUnavailable)
	}

	s.logger.InfoContext(ctx, "division recalculated",
		"division_id", key.DivisionID,
		"season_id", key.SeasonID,
		"players", len(items),
		"results", len(results),
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return nil
}

// compute runs the pure pipeline over in-memory data and returns the
// full replacement standings plus the counted mark for every result.
func (s *StandingsService) compute(key standings.Key, results []standings.MatchResult, players []player.Player) ([]standings.DivisionStanding, []standings.ResultMark) {
	nameByID := make(map[string]string, len(players))
	for _, p := range players {
		nameByID[p.ID] = p.DisplayName
	}

	byPlayer := make(map[string][]standings.MatchResult)
	playerIDs := make([]string, 0)
	for _, r := range results {
		if _, seen := byPlayer[r.PlayerID]; !seen {
			playerIDs = append(playerIDs, r.PlayerID)
		}
		byPlayer[r.PlayerID] = append(byPlayer[r.PlayerID], r)
	}
	sort.Strings(playerIDs)

	marks := make([]standings.ResultMark, 0, len(results))
	summaries := make(map[string]standings.Summary, len(playerIDs))
	metrics := make([]standings.Metrics, 0, len(playerIDs))

	for _, playerID := range playerIDs {
		selected := standings.SelectCounted(byPlayer[playerID], s.selectionCfg)
		for _, r := range selected {
			marks = append(marks, standings.ResultMark{
				MatchID:            r.MatchID,
				PlayerID:           r.PlayerID,
				CountsForStandings: r.CountsForStandings,
				ResultSequence:     r.ResultSequence,
			})
		}

		summary := standings.Summarize(selected)
		summaries[playerID] = summary

		name := nameByID[playerID]
		if name == "" {
			name = playerID
		}
		setPct, _ := summary.SetWinPct()
		gamePct, _ := summary.GameWinPct()
		metrics = append(metrics, standings.Metrics{
			PlayerID:    playerID,
			PlayerName:  name,
			TotalPoints: summary.TotalPoints,
			SetWinPct:   setPct,
			GameWinPct:  gamePct,
			HeadToHead:  summary.HeadToHead,
		})
	}

	calculatedAt := s.now().UTC()
	items := make([]standings.DivisionStanding, 0, len(metrics))
	for _, ranked := range s.ranker.Rank(metrics) {
		summary := summaries[ranked.PlayerID]
		items = append(items, standings.DivisionStanding{
			DivisionID:       key.DivisionID,
			SeasonID:         key.SeasonID,
			PlayerID:         ranked.PlayerID,
			PlayerName:       ranked.PlayerName,
			Rank:             ranked.Rank,
			Wins:             summary.Wins,
			Losses:           summary.Losses,
			MatchesPlayed:    summary.MatchesPlayed,
			CountedWins:      summary.CountedWins,
			CountedLosses:    summary.CountedLosses,
			TotalPoints:      summary.TotalPoints,
			SetsWon:          summary.SetsWon,
			SetsLost:         summary.SetsLost,
			GamesWon:         summary.GamesWon,
			GamesLost:        summary.GamesLost,
			CountedSetsWon:   summary.CountedSetsWon,
			CountedSetsLost:  summary.CountedSetsLost,
			CountedGamesWon:  summary.CountedGamesWon,
			CountedGamesLost: summary.CountedGamesLost,
			HeadToHead:       summary.HeadToHead,
			CalculatedAt:     calculatedAt,
		})
	}

	return items, marks
}

type BatchRecalcResult struct {
	Total      int      `json:"total"`
	Succeeded  int      `json:"succeeded"`
	Failed     int      `json:"failed"`
	FailedKeys []string `json:"failed_keys,omitempty"`
}

// RecalculateAll reruns every known division+season on a bounded worker
// pool. A failure in one division is logged and isolated; the rest of
// the batch continues.
func (s *StandingsService) RecalculateAll(ctx context.Context) (BatchRecalcResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.RecalculateAll")
	defer span.End()

	keys, err := s.resultRepo.ListKeys(ctx)
	if err != nil {
		return BatchRecalcResult{}, errors.Wrap(err, "list division+season keys")
	}
	return s.recalculateBatch(ctx, keys), nil
}

func (s *StandingsService) recalculateBatch(ctx context.Context, keys []standings.Key) BatchRecalcResult {
	result := BatchRecalcResult{Total: len(keys)}
	if len(keys) == 0 {
		return result
	}

	pool, err := ants.NewPool(s.maxWorkers)
	if err != nil {
		pool = nil
	}
	if pool != nil {
		defer pool.Release()
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		combined error
	)
	record := func(key standings.Key, runErr error) {
		mu.Lock()
		defer mu.Unlock()
		if runErr == nil {
			result.Succeeded++
			return
		}
		result.Failed++
		result.FailedKeys = append(result.FailedKeys, key.String())
		combined = errors.CombineErrors(combined, errors.Wrapf(runErr, "recalculate %s", key))
		s.logger.ErrorContext(ctx, "division recalculation failed",
			"division_id", key.DivisionID,
			"season_id", key.SeasonID,
			"error", runErr,
		)
	}

	for _, key := range keys {
		key := key
		run := func() {
			defer wg.Done()
			record(key, s.Recalculate(ctx, key))
		}
		wg.Add(1)
		if pool == nil {
			go run()
			continue
		}
		if submitErr := pool.Submit(run); submitErr != nil {
			wg.Done()
			record(key, submitErr)
		}
	}
	wg.Wait()

	sort.Strings(result.FailedKeys)
	if combined != nil {
		s.logger.WarnContext(ctx, "batch recalculation finished with failures",
			"failed", result.Failed,
			"total", result.Total,
			"error", combined,
		)
	}
	return result
}
