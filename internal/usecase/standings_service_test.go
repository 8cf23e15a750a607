package usecase

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/language"

	"github.com/NxTech4021/dl-backend-sub007/internal/domain/match"
	"github.com/NxTech4021/dl-backend-sub007/internal/domain/player"
	"github.com/NxTech4021/dl-backend-sub007/internal/domain/scoring"
	"github.com/NxTech4021/dl-backend-sub007/internal/domain/standings"
	"github.com/NxTech4021/dl-backend-sub007/internal/platform/logging"
)

type stubResultRepo struct {
	mu      sync.Mutex
	matches map[string][]standings.MatchResult
	listErr error
}

func newStubResultRepo() *stubResultRepo {
	return &stubResultRepo{matches: make(map[string][]standings.MatchResult)}
}

func (r *stubResultRepo) ListByKey(_ context.Context, key standings.Key) ([]standings.MatchResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []standings.MatchResult
	for _, rows := range r.matches {
		for _, item := range rows {
			if item.Key() == key {
				out = append(out, item)
			}
		}
	}
	return out, nil
}

func (r *stubResultRepo) ListByKeyAndPlayer(ctx context.Context, key standings.Key, playerID string) ([]standings.MatchResult, error) {
	rows, err := r.ListByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	var out []standings.MatchResult
	for _, item := range rows {
		if item.PlayerID == playerID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubResultRepo) ReplaceMatch(_ context.Context, matchID string, results []standings.MatchResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches[matchID] = append([]standings.MatchResult(nil), results...)
	return nil
}

func (r *stubResultRepo) DeleteByMatch(_ context.Context, matchID string) (standings.Key, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows, ok := r.matches[matchID]
	if !ok || len(rows) == 0 {
		return standings.Key{}, false, nil
	}
	key := rows[0].Key()
	delete(r.matches, matchID)
	return key, true, nil
}

func (r *stubResultRepo) ListKeys(_ context.Context) ([]standings.Key, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[standings.Key]struct{})
	var out []standings.Key
	for _, rows := range r.matches {
		for _, item := range rows {
			if _, ok := seen[item.Key()]; !ok {
				seen[item.Key()] = struct{}{}
				out = append(out, item.Key())
			}
		}
	}
	return out, nil
}

type stubStandingRepo struct {
	mu       sync.Mutex
	byKey    map[standings.Key][]standings.DivisionStanding
	marks    map[standings.Key][]standings.ResultMark
	applies  int
	applyErr func(key standings.Key) error
}

func newStubStandingRepo() *stubStandingRepo {
	return &stubStandingRepo{
		byKey: make(map[standings.Key][]standings.DivisionStanding),
		marks: make(map[standings.Key][]standings.ResultMark),
	}
}

func (r *stubStandingRepo) ListByKey(_ context.Context, key standings.Key) ([]standings.DivisionStanding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]standings.DivisionStanding(nil), r.byKey[key]...), nil
}

func (r *stubStandingRepo) ApplyRecalculation(_ context.Context, key standings.Key, items []standings.DivisionStanding, marks []standings.ResultMark) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.applyErr != nil {
		if err := r.applyErr(key); err != nil {
			return err
		}
	}
	r.applies++
	r.byKey[key] = append([]standings.DivisionStanding(nil), items...)
	r.marks[key] = append([]standings.ResultMark(nil), marks...)
	return nil
}

type stubPlayerRepo struct {
	players []player.Player
}

func (r *stubPlayerRepo) ListByDivisionSeason(_ context.Context, _, _ string) ([]player.Player, error) {
	return r.players, nil
}

func newTestService(resultRepo *stubResultRepo, standingRepo *stubStandingRepo, players ...player.Player) *StandingsService {
	svc := NewStandingsService(
		resultRepo,
		standingRepo,
		&stubPlayerRepo{players: players},
		scoring.DefaultConfig(),
		standings.DefaultSelectionConfig(),
		standings.NewRanker(language.English),
		2,
		logging.NewNop(),
	)
	svc.now = func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func completedMatch(id string, playedAt time.Time, winnerID, loserID string, sets []match.SetScore) match.Match {
	return match.Match{
		ID:         id,
		DivisionID: "d1",
		SeasonID:   "s1",
		PlayedAt:   playedAt,
		Status:     match.StatusCompleted,
		Participants: []match.Participant{
			{PlayerID: winnerID, Team: match.TeamOne},
			{PlayerID: loserID, Team: match.TeamTwo},
		},
		Sets: sets,
	}
}

func straightSets() []match.SetScore {
	return []match.SetScore{{Team1: 6, Team2: 2}, {Team1: 6, Team2: 2}}
}

func TestRecordCompletedMatch_ComputesStandings(t *testing.T) {
	resultRepo := newStubResultRepo()
	standingRepo := newStubStandingRepo()
	svc := newTestService(resultRepo, standingRepo,
		player.Player{ID: "alice", DisplayName: "Alice"},
		player.Player{ID: "bob", DisplayName: "Bob"},
	)

	m := completedMatch("m1", time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC), "alice", "bob", straightSets())
	if err := svc.RecordCompletedMatch(context.Background(), m); err != nil {
		t.Fatalf("record match: %v", err)
	}

	key := standings.Key{DivisionID: "d1", SeasonID: "s1"}
	items := standingRepo.byKey[key]
	if len(items) != 2 {
		t.Fatalf("expected 2 standings rows, got %d", len(items))
	}

	first := items[0]
	if first.PlayerID != "alice" || first.Rank != 1 {
		t.Fatalf("expected alice at rank 1, got %s at %d", first.PlayerID, first.Rank)
	}
	if first.TotalPoints != 5 || first.Wins != 1 {
		t.Fatalf("alice standing: points=%d wins=%d, want 5 and 1", first.TotalPoints, first.Wins)
	}
	if first.PlayerName != "Alice" {
		t.Fatalf("expected display name from roster, got %q", first.PlayerName)
	}

	second := items[1]
	if second.PlayerID != "bob" || second.Rank != 2 || second.TotalPoints != 1 {
		t.Fatalf("bob standing: got %s rank=%d points=%d", second.PlayerID, second.Rank, second.TotalPoints)
	}

	if len(standingRepo.marks[key]) != 2 {
		t.Fatalf("expected 2 result marks, got %d", len(standingRepo.marks[key]))
	}
	for _, mark := range standingRepo.marks[key] {
		if !mark.CountsForStandings {
			t.Fatalf("expected every result of a single match to count, got %+v", mark)
		}
	}
}

func TestRecordCompletedMatch_Idempotent(t *testing.T) {
	resultRepo := newStubResultRepo()
	standingRepo := newStubStandingRepo()
	svc := newTestService(resultRepo, standingRepo)

	m := completedMatch("m1", time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC), "alice", "bob", straightSets())
	if err := svc.RecordCompletedMatch(context.Background(), m); err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	key := standings.Key{DivisionID: "d1", SeasonID: "s1"}
	firstRun := append([]standings.DivisionStanding(nil), standingRepo.byKey[key]...)

	if err := svc.RecordCompletedMatch(context.Background(), m); err != nil {
		t.Fatalf("second ingest: %v", err)
	}

	if len(resultRepo.matches["m1"]) != 2 {
		t.Fatalf("expected re-ingestion to replace rows, got %d", len(resultRepo.matches["m1"]))
	}
	secondRun := standingRepo.byKey[key]
	if !reflect.DeepEqual(firstRun, secondRun) {
		t.Fatalf("standings changed on re-ingest:\n%+v\n%+v", firstRun, secondRun)
	}
}

func TestRecordCompletedMatch_Validation(t *testing.T) {
	svc := newTestService(newStubResultRepo(), newStubStandingRepo())
	playedAt := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

	m := completedMatch("", playedAt, "alice", "bob", straightSets())
	if err := svc.RecordCompletedMatch(context.Background(), m); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing id, got %v", err)
	}

	m = completedMatch("m1", time.Time{}, "alice", "bob", straightSets())
	if err := svc.RecordCompletedMatch(context.Background(), m); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero play date, got %v", err)
	}

	m = completedMatch("m1", playedAt, "alice", "bob", straightSets())
	m.Status = match.StatusVoided
	if err := svc.RecordCompletedMatch(context.Background(), m); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-completed status, got %v", err)
	}

	m = completedMatch("m1", playedAt, "alice", "bob", nil)
	if err := svc.RecordCompletedMatch(context.Background(), m); !errors.Is(err, scoring.ErrNoScores) {
		t.Fatalf("expected ErrNoScores for empty score list, got %v", err)
	}
}

func TestVoidMatch(t *testing.T) {
	resultRepo := newStubResultRepo()
	standingRepo := newStubStandingRepo()
	svc := newTestService(resultRepo, standingRepo)

	m := completedMatch("m1", time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC), "alice", "bob", straightSets())
	if err := svc.RecordCompletedMatch(context.Background(), m); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	if err := svc.VoidMatch(context.Background(), "m1"); err != nil {
		t.Fatalf("void: %v", err)
	}

	key := standings.Key{DivisionID: "d1", SeasonID: "s1"}
	if len(standingRepo.byKey[key]) != 0 {
		t.Fatalf("expected empty standings after voiding the only match, got %d rows", len(standingRepo.byKey[key]))
	}

	if err := svc.VoidMatch(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown match, got %v", err)
	}
}

func TestRecalculate_TotalPointsSumCountedOnly(t *testing.T) {
	resultRepo := newStubResultRepo()
	standingRepo := newStubStandingRepo()
	svc := newTestService(resultRepo, standingRepo)

	base := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("m%d", i)
		m := completedMatch(id, base.AddDate(0, 0, i), "alice", fmt.Sprintf("opp%d", i), straightSets())
		if err := svc.RecordCompletedMatch(context.Background(), m); err != nil {
			t.Fatalf("ingest %s: %v", id, err)
		}
	}

	key := standings.Key{DivisionID: "d1", SeasonID: "s1"}
	var alice *standings.DivisionStanding
	for i := range standingRepo.byKey[key] {
		if standingRepo.byKey[key][i].PlayerID == "alice" {
			alice = &standingRepo.byKey[key][i]
		}
	}
	if alice == nil {
		t.Fatalf("alice missing from standings")
	}

	// 8 wins at 5 points each, only 6 count.
	if alice.TotalPoints != 30 {
		t.Fatalf("total points: got %d, want 30", alice.TotalPoints)
	}
	if alice.Wins != 8 || alice.CountedWins != 6 {
		t.Fatalf("record: got %d wins / %d counted, want 8 / 6", alice.Wins, alice.CountedWins)
	}
	if alice.Rank != 1 {
		t.Fatalf("expected alice at rank 1, got %d", alice.Rank)
	}
}

func TestRecalculateAll_FailureIsolation(t *testing.T) {
	resultRepo := newStubResultRepo()
	standingRepo := newStubStandingRepo()
	badKey := standings.Key{DivisionID: "d-bad", SeasonID: "s1"}
	standingRepo.applyErr = func(key standings.Key) error {
		if key == badKey {
			return errors.New("storage offline")
		}
		return nil
	}
	svc := newTestService(resultRepo, standingRepo)

	playedAt := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	good := completedMatch("m-good", playedAt, "alice", "bob", straightSets())
	bad := completedMatch("m-bad", playedAt, "cara", "dave", straightSets())
	bad.DivisionID = "d-bad"

	seed := func(m match.Match) {
		rows := []standings.MatchResult{
			{MatchID: m.ID, PlayerID: m.Participants[0].PlayerID, DivisionID: m.DivisionID, SeasonID: m.SeasonID, PlayedAt: m.PlayedAt, IsWin: true, MatchPoints: 5},
			{MatchID: m.ID, PlayerID: m.Participants[1].PlayerID, DivisionID: m.DivisionID, SeasonID: m.SeasonID, PlayedAt: m.PlayedAt, MatchPoints: 1},
		}
		if err := resultRepo.ReplaceMatch(context.Background(), m.ID, rows); err != nil {
			t.Fatalf("seed %s: %v", m.ID, err)
		}
	}
	seed(good)
	seed(bad)

	result, err := svc.RecalculateAll(context.Background())
	if err != nil {
		t.Fatalf("recalculate all: %v", err)
	}

	if result.Total != 2 || result.Succeeded != 1 || result.Failed != 1 {
		t.Fatalf("batch result: %+v", result)
	}
	if len(result.FailedKeys) != 1 || result.FailedKeys[0] != badKey.String() {
		t.Fatalf("failed keys: %v, want [%s]", result.FailedKeys, badKey)
	}

	goodKey := standings.Key{DivisionID: "d1", SeasonID: "s1"}
	if len(standingRepo.byKey[goodKey]) != 2 {
		t.Fatalf("healthy division not recalculated: %d rows", len(standingRepo.byKey[goodKey]))
	}
}

func TestRecalculate_LoadFailureMarkedUnavailable(t *testing.T) {
	resultRepo := newStubResultRepo()
	resultRepo.listErr = errors.New("connection refused")
	svc := newTestService(resultRepo, newStubStandingRepo())

	err := svc.Recalculate(context.Background(), standings.Key{DivisionID: "d1", SeasonID: "s1"})
	if !errors.Is(err, ErrStandingsUnavailable) {
		t.Fatalf("expected ErrStandingsUnavailable, got %v", err)
	}
}
