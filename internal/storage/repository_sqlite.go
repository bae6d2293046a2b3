package storage

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tmarquesini/card-arena/internal/constants"
	"github.com/tmarquesini/card-arena/internal/logging"
	"github.com/tmarquesini/card-arena/internal/record"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// battleRow is the persisted shape of a battle record: a few indexed
// metadata columns for listing plus the full record as a JSON payload, so
// the stored history round-trips without a relational mapping of every
// nested turn structure.
type battleRow struct {
	ID         uint   `gorm:"primarykey"`
	BattleID   string `gorm:"uniqueIndex;size:36"`
	StartedAt  int64  `gorm:"index"`
	WinnerID   string
	WinnerName string
	TotalTurns int
	Payload    []byte `gorm:"type:blob"`
	CreatedAt  time.Time
}

func (battleRow) TableName() string { return "battle_records" }

type sqliteRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository wraps a GORM handle in the battle Repository.
func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) SaveBattle(rec *record.BattleRecord) (*record.BattleRecord, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	row := battleRow{
		BattleID:   rec.ID,
		StartedAt:  rec.StartedAt,
		WinnerID:   rec.WinnerID,
		WinnerName: rec.WinnerName,
		TotalTurns: rec.TotalTurns,
		Payload:    payload,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *sqliteRepository) GetBattles(page, limit int) (*BattlePage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	var total int64
	if err := r.db.Model(&battleRow{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []battleRow
	if err := r.db.Order("started_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := &BattlePage{
		Data:  make([]*record.BattleRecord, 0, len(rows)),
		Total: total,
		Page:  page,
	}
	out.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	for i := range rows {
		rec, err := decodeRow(&rows[i])
		if err != nil {
			// One corrupt payload must not take the whole listing down.
			logging.Warn("skipping undecodable battle row", logging.Fields{
				constants.LogFieldBattleID: rows[i].BattleID,
				"error":                    err.Error(),
			})
			continue
		}
		out.Data = append(out.Data, rec)
	}
	return out, nil
}

func (r *sqliteRepository) GetBattleByID(id string) (*record.BattleRecord, error) {
	var row battleRow
	if err := r.db.Where("battle_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBattleNotFound
		}
		return nil, err
	}
	return decodeRow(&row)
}

func (r *sqliteRepository) DeleteBattle(id string) error {
	return r.db.Where("battle_id = ?", id).Delete(&battleRow{}).Error
}

func decodeRow(row *battleRow) (*record.BattleRecord, error) {
	var rec record.BattleRecord
	if err := json.Unmarshal(row.Payload, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
