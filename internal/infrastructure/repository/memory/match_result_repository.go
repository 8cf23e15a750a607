package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/NxTech4021/dl-backend-sub007/internal/domain/standings"
)

type MatchResultRepository struct {
	mu      sync.RWMutex
	matches map[string][]standings.MatchResult
}

func NewMatchResultRepository(results []standings.MatchResult) *MatchResultRepository {
	matches := make(map[string][]standings.MatchResult)
	for _, item := range results {
		matches[item.MatchID] = append(matches[item.MatchID], item)
	}

	return &MatchResultRepository{matches: matches}
}

func (r *MatchResultRepository) ListByKey(_ context.Context, key standings.Key) ([]standings.MatchResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []standings.MatchResult
	for _, rows := range r.matches {
		for _, item := range rows {
			if item.Key() == key {
				out = append(out, item)
			}
		}
	}
	sortResults(out)

	return out, nil
}

func (r *MatchResultRepository) ListByKeyAndPlayer(_ context.Context, key standings.Key, playerID string) ([]standings.MatchResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []standings.MatchResult
	for _, rows := range r.matches {
		for _, item := range rows {
			if item.Key() == key && item.PlayerID == playerID {
				out = append(out, item)
			}
		}
	}
	sortResults(out)

	return out, nil
}

func (r *MatchResultRepository) ReplaceMatch(_ context.Context, matchID string, results []standings.MatchResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(results) == 0 {
		delete(r.matches, matchID)
		return nil
	}
	r.matches[matchID] = append([]standings.MatchResult(nil), results...)

	return nil
}

func (r *MatchResultRepository) DeleteByMatch(_ context.Context, matchID string) (standings.Key, bool, error) {
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

func (r *MatchResultRepository) ListKeys(_ context.Context) ([]standings.Key, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[standings.Key]struct{})
	var out []standings.Key
	for _, rows := range r.matches {
		for _, item := range rows {
			key := item.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, key)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DivisionID != out[j].DivisionID {
			return out[i].DivisionID < out[j].DivisionID
		}
		return out[i].SeasonID < out[j].SeasonID
	})

	return out, nil
}

// applyMarks rewrites counted flags for one division+season. Callers hold
// no lock; this is invoked from the standing repository so that standings
// and marks change together.
func (r *MatchResultRepository) applyMarks(key standings.Key, marks []standings.ResultMark) {
	r.mu.Lock()
	defer r.mu.Unlock()

	indexed := make(map[string]standings.ResultMark, len(marks))
	for _, mark := range marks {
		indexed[mark.MatchID+"|"+mark.PlayerID] = mark
	}

	for matchID, rows := range r.matches {
		for i, item := range rows {
			if item.Key() != key {
				continue
			}
			mark, ok := indexed[item.MatchID+"|"+item.PlayerID]
			if ok && mark.CountsForStandings {
				rows[i].CountsForStandings = true
				rows[i].ResultSequence = mark.ResultSequence
			} else {
				rows[i].CountsForStandings = false
				rows[i].ResultSequence = nil
			}
		}
		r.matches[matchID] = rows
	}
}

func sortResults(out []standings.MatchResult) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PlayedAt.Equal(out[j].PlayedAt) {
			return out[i].PlayedAt.Before(out[j].PlayedAt)
		}
		if out[i].MatchID != out[j].MatchID {
			return out[i].MatchID < out[j].MatchID
		}
		return out[i].PlayerID < out[j].PlayerID
	})
}
