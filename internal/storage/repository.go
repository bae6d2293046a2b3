package storage

import (
	"errors"

	"github.com/tmarquesini/card-arena/internal/record"
)

// ErrBattleNotFound is returned when a battle ID has no stored record.
var ErrBattleNotFound = errors.New("battle not found")

// BattlePage is one page of stored battle records, newest first.
type BattlePage struct {
	Data       []*record.BattleRecord `json:"data"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	TotalPages int                    `json:"total_pages"`
}

// Repository persists finished battle records.
type Repository interface {
	// SaveBattle stores a finished record and returns it unchanged.
	SaveBattle(rec *record.BattleRecord) (*record.BattleRecord, error)
	// GetBattles returns a page of records sorted by start time descending.
	GetBattles(page, limit int) (*BattlePage, error)
	// GetBattleByID returns one record, or ErrBattleNotFound.
	GetBattleByID(id string) (*record.BattleRecord, error)
	// DeleteBattle removes one record; deleting a missing ID is a no-op.
	DeleteBattle(id string) error
}
