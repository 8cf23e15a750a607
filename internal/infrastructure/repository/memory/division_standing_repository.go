package memory

import (
	"context"
	"sync"

	"github.com/NxTech4021/dl-backend-sub007/internal/domain/standings"
)

type DivisionStandingRepository struct {
	mu      sync.RWMutex
	byKey   map[standings.Key][]standings.DivisionStanding
	results *MatchResultRepository
}

// NewDivisionStandingRepository couples the standings store to the result
// store so a recalculation swaps both under one call, mirroring the
// transactional behavior of the SQL implementation.
func NewDivisionStandingRepository(results *MatchResultRepository) *DivisionStandingRepository {
	return &DivisionStandingRepository{
		byKey:   make(map[standings.Key][]standings.DivisionStanding),
		results: results,
	}
}

func (r *DivisionStandingRepository) ListByKey(_ context.Context, key standings.Key) ([]standings.DivisionStanding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]standings.DivisionStanding(nil), r.byKey[key]...), nil
}

func (r *DivisionStandingRepository) ApplyRecalculation(_ context.Context, key standings.Key, items []standings.DivisionStanding, marks []standings.ResultMark) error {
	r.mu.Lock()
	r.byKey[key] = append([]standings.DivisionStanding(nil), items...)
	r.mu.Unlock()

	r.results.applyMarks(key, marks)

	return nil
}
