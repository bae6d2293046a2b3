package service

import (
	"errors"
	"testing"

	"github.com/tmarquesini/card-arena/internal/game"
	"github.com/tmarquesini/card-arena/internal/record"
)

type mockRepo struct {
	saved   *record.BattleRecord
	saveErr error
}

func (m *mockRepo) SaveBattle(rec *record.BattleRecord) (*record.BattleRecord, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	m.saved = rec
	return rec, nil
}

// noChance fails every activation and crit roll.
func noChance(n int) int { return n - 1 }

func battleInput() BattleInput {
	return BattleInput{
		Challenger: game.Combatant{
			ID: "c1", Name: "Challenger", MaxHP: 100, CurrentHP: 100,
			Stats:          game.Stats{Atk: 40},
			EffectiveRange: 1,
		},
		Opponent: game.Combatant{
			ID: "c2", Name: "Opponent", MaxHP: 90, CurrentHP: 90,
			Stats:          game.Stats{Atk: 10},
			EffectiveRange: 1,
		},
	}
}

func TestRunBattle_PersistsFinishedRecord(t *testing.T) {
	repo := &mockRepo{}
	rec, err := RunBattle(repo, battleInput(), 200, noChance)
	if err != nil {
		t.Fatalf("RunBattle: %v", err)
	}
	if rec.ID == "" {
		t.Fatalf("expected a generated record ID")
	}
	if rec.WinnerID != "c1" || rec.WinnerName != "Challenger" {
		t.Fatalf("expected the stronger challenger to win, got %s", rec.WinnerID)
	}
	if repo.saved != rec {
		t.Fatalf("expected the record handed to the repository")
	}

	if rec.TotalTurns == 0 || rec.TotalTurns != len(rec.Turns) {
		t.Fatalf("expected total_turns to match the turn list, got %d vs %d", rec.TotalTurns, len(rec.Turns))
	}
	for i, turn := range rec.Turns {
		if turn.TurnNumber != i+1 {
			t.Fatalf("expected sequential turn numbers, got %d at index %d", turn.TurnNumber, i)
		}
	}
	if len(rec.HpTimeline) != rec.TotalTurns+1 {
		t.Fatalf("expected timeline of turns+1 entries, got %d", len(rec.HpTimeline))
	}
	last := rec.Turns[len(rec.Turns)-1]
	if !last.DefenderHP.IsKnockout || last.DefenderHP.HPAfter != 0 {
		t.Fatalf("expected the final turn to be a knockout, got %+v", last.DefenderHP)
	}
	if rec.DurationMs != rec.EndedAt-rec.StartedAt {
		t.Fatalf("expected duration to match the timestamps")
	}
}

func TestRunBattle_MissingCombatant(t *testing.T) {
	in := battleInput()
	in.Opponent.ID = ""
	if _, err := RunBattle(&mockRepo{}, in, 200, noChance); !errors.Is(err, ErrMissingCombatant) {
		t.Fatalf("expected ErrMissingCombatant, got %v", err)
	}
}

func TestRunBattle_TurnLimit(t *testing.T) {
	in := battleInput()
	// neither side can damage the other
	in.Challenger.Stats = game.Stats{Atk: 5, Def: 50}
	in.Opponent.Stats = game.Stats{Atk: 5, Def: 50}

	if _, err := RunBattle(&mockRepo{}, in, 20, noChance); !errors.Is(err, ErrBattleUnresolved) {
		t.Fatalf("expected ErrBattleUnresolved, got %v", err)
	}
}

func TestRunBattle_SaveErrorStillReturnsRecord(t *testing.T) {
	repo := &mockRepo{saveErr: errors.New("disk full")}
	rec, err := RunBattle(repo, battleInput(), 200, noChance)
	if err == nil {
		t.Fatalf("expected the save error surfaced")
	}
	if rec == nil {
		t.Fatalf("expected the record returned alongside the save error")
	}
}

func TestRunBattle_NilRepoSkipsPersistence(t *testing.T) {
	rec, err := RunBattle(nil, battleInput(), 200, noChance)
	if err != nil {
		t.Fatalf("RunBattle: %v", err)
	}
	if rec == nil {
		t.Fatalf("expected a finished record without a repository")
	}
}

func TestRunBattle_InputCombatantsNotMutated(t *testing.T) {
	in := battleInput()
	if _, err := RunBattle(&mockRepo{}, in, 200, noChance); err != nil {
		t.Fatalf("RunBattle: %v", err)
	}
	if in.Opponent.CurrentHP != 90 {
		t.Fatalf("expected the caller's combatant untouched, got HP %d", in.Opponent.CurrentHP)
	}
}
