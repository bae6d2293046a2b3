package api

import (
	"strings"

	"github.com/tmarquesini/card-arena/internal/game"
	"github.com/tmarquesini/card-arena/internal/storage"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	repo     storage.Repository
	maxTurns int
	// catalog maps lowercase gem name -> configured gem definition so
	// simulate requests can reference gems by name alone.
	catalog map[string]game.Gem
}

// NewBattleHandler creates a handler over the repository, the configured
// turn limit and the gem catalog loaded from the server config.
func NewBattleHandler(repo storage.Repository, maxTurns int, catalog []game.Gem) *BattleHandler {
	m := make(map[string]game.Gem, len(catalog))
	for _, g := range catalog {
		m[strings.ToLower(g.Name)] = g
	}
	return &BattleHandler{repo: repo, maxTurns: maxTurns, catalog: m}
}
