package memory

import (
	"github.com/NxTech4021/dl-backend-sub007/internal/domain/player"
)

const (
	SeedDivisionID = "div-kl-mens-a"
	SeedSeasonID   = "season-2026-q3"
)

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "plr-aiman", DisplayName: "Aiman Hakim"},
		{ID: "plr-chen", DisplayName: "Chen Wei Liang"},
		{ID: "plr-devi", DisplayName: "Devi Anjali"},
		{ID: "plr-farhan", DisplayName: "Farhan Rosli"},
		{ID: "plr-mei", DisplayName: "Mei Ling Tan"},
		{ID: "plr-raj", DisplayName: "Rajesh Kumar"},
		{ID: "plr-sofia", DisplayName: "Sofia Lim"},
		{ID: "plr-zack", DisplayName: "Zackary Wong"},
	}
}

func SeedPlayerRepository() *PlayerRepository {
	repo := NewPlayerRepository()
	repo.Register(SeedDivisionID, SeedSeasonID, SeedPlayers()...)
	return repo
}
