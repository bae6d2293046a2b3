package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tmarquesini/card-arena/internal/record"
)

func testRepo(t *testing.T) Repository {
	t.Helper()
	db, err := OpenAndMigrate(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	return NewSQLiteRepository(db)
}

func storedRecord(id string, startedAt int64) *record.BattleRecord {
	return &record.BattleRecord{
		ID:         id,
		StartedAt:  startedAt,
		EndedAt:    startedAt + 5000,
		DurationMs: 5000,
		Challenger: record.CombatantSnapshot{ID: "c1", Name: "Challenger", MaxHP: 100, HP: 100},
		Opponent:   record.CombatantSnapshot{ID: "c2", Name: "Opponent", MaxHP: 80, HP: 80},
		WinnerID:   "c1",
		WinnerName: "Challenger",
		TotalTurns: 2,
		Turns: []record.TurnRecord{
			{TurnNumber: 1, AttackerID: "c1", DefenderID: "c2"},
			{TurnNumber: 2, AttackerID: "c1", DefenderID: "c2"},
		},
		HpTimeline: []record.HpTimelineEntry{
			{TurnNumber: 0, ChallengerHP: 100, OpponentHP: 80},
			{TurnNumber: 1, ChallengerHP: 100, OpponentHP: 40},
			{TurnNumber: 2, ChallengerHP: 100, OpponentHP: 0},
		},
	}
}

func TestSQLiteRepository_SaveAndGet(t *testing.T) {
	repo := testRepo(t)
	want := storedRecord("11111111-1111-1111-1111-111111111111", 1_700_000_000_000)
	if _, err := repo.SaveBattle(want); err != nil {
		t.Fatalf("SaveBattle: %v", err)
	}

	got, err := repo.GetBattleByID(want.ID)
	if err != nil {
		t.Fatalf("GetBattleByID: %v", err)
	}
	if got.ID != want.ID || got.WinnerName != "Challenger" || got.TotalTurns != 2 {
		t.Fatalf("unexpected record: %+v", got)
	}
	if len(got.Turns) != 2 || len(got.HpTimeline) != 3 {
		t.Fatalf("expected the full history round-tripped, got %d turns and %d timeline entries", len(got.Turns), len(got.HpTimeline))
	}
}

func TestSQLiteRepository_GetMissing(t *testing.T) {
	repo := testRepo(t)
	if _, err := repo.GetBattleByID("22222222-2222-2222-2222-222222222222"); !errors.Is(err, ErrBattleNotFound) {
		t.Fatalf("expected ErrBattleNotFound, got %v", err)
	}
}

func TestSQLiteRepository_ListNewestFirstWithPagination(t *testing.T) {
	repo := testRepo(t)
	for i := 0; i < 5; i++ {
		rec := storedRecord(fmt.Sprintf("00000000-0000-0000-0000-%012d", i), int64(1_700_000_000_000+i*1000))
		if _, err := repo.SaveBattle(rec); err != nil {
			t.Fatalf("SaveBattle: %v", err)
		}
	}

	page, err := repo.GetBattles(1, 2)
	if err != nil {
		t.Fatalf("GetBattles: %v", err)
	}
	if page.Total != 5 || page.TotalPages != 3 || len(page.Data) != 2 {
		t.Fatalf("unexpected page shape: total %d, pages %d, len %d", page.Total, page.TotalPages, len(page.Data))
	}
	if page.Data[0].StartedAt < page.Data[1].StartedAt {
		t.Fatalf("expected newest first, got %d then %d", page.Data[0].StartedAt, page.Data[1].StartedAt)
	}

	last, err := repo.GetBattles(3, 2)
	if err != nil {
		t.Fatalf("GetBattles: %v", err)
	}
	if len(last.Data) != 1 {
		t.Fatalf("expected a single record on the last page, got %d", len(last.Data))
	}

	// out-of-range inputs fall back to sane defaults
	fallback, err := repo.GetBattles(0, -1)
	if err != nil {
		t.Fatalf("GetBattles: %v", err)
	}
	if fallback.Page != 1 || len(fallback.Data) != 5 {
		t.Fatalf("expected page 1 with the default limit, got page %d len %d", fallback.Page, len(fallback.Data))
	}
}

func TestSQLiteRepository_Delete(t *testing.T) {
	repo := testRepo(t)
	rec := storedRecord("33333333-3333-3333-3333-333333333333", 1_700_000_000_000)
	if _, err := repo.SaveBattle(rec); err != nil {
		t.Fatalf("SaveBattle: %v", err)
	}
	if err := repo.DeleteBattle(rec.ID); err != nil {
		t.Fatalf("DeleteBattle: %v", err)
	}
	if _, err := repo.GetBattleByID(rec.ID); !errors.Is(err, ErrBattleNotFound) {
		t.Fatalf("expected the record gone, got %v", err)
	}
	// deleting a missing ID is a no-op
	if err := repo.DeleteBattle(rec.ID); err != nil {
		t.Fatalf("expected idempotent delete, got %v", err)
	}
}

func TestSQLiteRepository_DuplicateIDRejected(t *testing.T) {
	repo := testRepo(t)
	rec := storedRecord("44444444-4444-4444-4444-444444444444", 1_700_000_000_000)
	if _, err := repo.SaveBattle(rec); err != nil {
		t.Fatalf("SaveBattle: %v", err)
	}
	if _, err := repo.SaveBattle(rec); err == nil {
		t.Fatalf("expected the unique battle ID index to reject a duplicate")
	}
}
