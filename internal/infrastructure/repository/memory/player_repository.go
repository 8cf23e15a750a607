package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/NxTech4021/dl-backend-sub007/internal/domain/player"
)

type divisionSeason struct {
	divisionID string
	seasonID   string
}

type PlayerRepository struct {
	mu    sync.RWMutex
	items map[divisionSeason][]player.Player
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{items: make(map[divisionSeason][]player.Player)}
}

func (r *PlayerRepository) Register(divisionID, seasonID string, players ...player.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := divisionSeason{divisionID: divisionID, seasonID: seasonID}
	r.items[key] = append(r.items[key], players...)
}

func (r *PlayerRepository) ListByDivisionSeason(_ context.Context, divisionID, seasonID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]player.Player(nil), r.items[divisionSeason{divisionID: divisionID, seasonID: seasonID}]...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}
