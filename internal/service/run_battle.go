package service

import (
	"errors"

	"github.com/tmarquesini/card-arena/internal/arena"
	"github.com/tmarquesini/card-arena/internal/constants"
	"github.com/tmarquesini/card-arena/internal/engine"
	"github.com/tmarquesini/card-arena/internal/game"
	"github.com/tmarquesini/card-arena/internal/logging"
	"github.com/tmarquesini/card-arena/internal/record"
)

var (
	ErrMissingCombatant = errors.New("both combatants are required")
	ErrBattleUnresolved = errors.New("battle did not finish within the turn limit")
)

// BattleRepo is the narrow repository surface RunBattle needs; the full
// storage.Repository satisfies it.
type BattleRepo interface {
	SaveBattle(rec *record.BattleRecord) (*record.BattleRecord, error)
}

// BattleInput describes one battle to simulate. Combatants arrive with their
// equipment bonuses already merged into the stat bundle.
type BattleInput struct {
	Challenger     game.Combatant
	Opponent       game.Combatant
	ChallengerGems []game.Gem
	OpponentGems   []game.Gem
}

// RunBattle simulates a full battle synchronously: it drives the arena until
// a knockout, records every turn and persists the finished record. A nil
// roller falls back to math/rand; maxTurns bounds runaway configurations
// (e.g. two combatants that cannot damage each other).
func RunBattle(repo BattleRepo, in BattleInput, maxTurns int, roll engine.Roller) (*record.BattleRecord, error) {
	if in.Challenger.ID == "" || in.Opponent.ID == "" {
		return nil, ErrMissingCombatant
	}
	if maxTurns <= 0 {
		maxTurns = 200
	}

	challenger := in.Challenger
	opponent := in.Opponent

	rec := record.NewRecorder()
	a := arena.New(roll)
	a.AttachRecorder(rec)
	a.InitArena(&challenger, &opponent, in.ChallengerGems, in.OpponentGems)
	rec.StartRecording(&challenger, &opponent)

	for a.Phase() != game.PhaseFinished && a.TurnCount() < maxTurns {
		switch a.Phase() {
		case game.PhaseMoving:
			a.ExecuteMove()
		case game.PhaseCombat:
			a.ExecuteAttack()
		}
	}

	if a.Phase() != game.PhaseFinished {
		rec.Reset()
		return nil, ErrBattleUnresolved
	}

	winner := &challenger
	if a.Result() == arena.ResultOpponentWins {
		winner = &opponent
	}
	battle, err := rec.FinishRecording(winner.ID, winner.Name)
	if err != nil {
		return nil, err
	}

	if repo != nil {
		if _, err := repo.SaveBattle(battle); err != nil {
			return battle, err
		}
	}
	logging.Info("battle resolved", logging.Fields{
		constants.LogFieldBattleID: battle.ID,
		constants.LogFieldWinner:   battle.WinnerName,
		constants.LogFieldTurns:    battle.TotalTurns,
	})
	return battle, nil
}
