package record

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tmarquesini/card-arena/internal/game"
)

var (
	// ErrNotRecording flags RecordTurn/FinishRecording calls before
	// StartRecording. This is a caller bug, never a silent no-op.
	ErrNotRecording = errors.New("recorder is not recording")
	// ErrTurnOutOfSequence flags a turn number that does not continue the
	// 1-based sequence.
	ErrTurnOutOfSequence = errors.New("turn number out of sequence")
)

// Recorder captures a battle turn by turn and assembles the final
// BattleRecord. One instance serves one battle at a time but can be reused:
// FinishRecording resets it.
type Recorder struct {
	recording  bool
	startedAt  time.Time
	challenger CombatantSnapshot
	opponent   CombatantSnapshot
	turns      []TurnRecord
	timeline   []HpTimelineEntry

	now func() time.Time
}

// NewRecorder creates an idle recorder.
func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

// SetClock overrides the wall clock, for tests.
func (r *Recorder) SetClock(now func() time.Time) { r.now = now }

// IsRecording reports whether a battle is being captured.
func (r *Recorder) IsRecording() bool { return r.recording }

// StartRecording begins a fresh capture, snapshotting both combatants and
// seeding the HP timeline with the pre-battle state.
func (r *Recorder) StartRecording(challenger, opponent *game.Combatant) {
	r.Reset()
	r.recording = true
	r.startedAt = r.now()
	r.challenger = snapshot(challenger)
	r.opponent = snapshot(opponent)
	r.timeline = append(r.timeline, HpTimelineEntry{
		TurnNumber:      0,
		ChallengerHP:    challenger.CurrentHP,
		ChallengerMaxHP: challenger.MaxHP,
		OpponentHP:      opponent.CurrentHP,
		OpponentMaxHP:   opponent.MaxHP,
	})
}

// RecordTurn appends one resolved attack. Attacker and defender are matched
// to the challenger/opponent sides by identity, not by who is acting, so the
// timeline stays keyed correctly whichever side attacked.
func (r *Recorder) RecordTurn(turnNumber int, attacker, defender *game.Combatant, res *game.AttackResult, defenderHPBefore, attackerHPBefore int) error {
	if !r.recording {
		return ErrNotRecording
	}
	if turnNumber != len(r.turns)+1 {
		return ErrTurnOutOfSequence
	}

	r.turns = append(r.turns, TurnRecord{
		TurnNumber:   turnNumber,
		AttackerID:   attacker.ID,
		AttackerName: attacker.Name,
		DefenderID:   defender.ID,
		DefenderName: defender.Name,
		Damage: DamageBreakdown{
			BaseDamage:     res.Breakdown.BaseDamage,
			IsCritical:     res.IsCritical,
			CritMultiplier: res.Breakdown.CritMultiplier,
			CritBonus:      res.Breakdown.CritBonus,
			FinalDamage:    res.Breakdown.FinalDamage,
		},
		Lifesteal: LifestealDetail{
			Percent:         attacker.Stats.Lifesteal,
			Amount:          res.Breakdown.LifestealAmount,
			AttackerHPAfter: res.AttackerNewHP,
		},
		DefenderHP: DefenderHpState{
			HPBefore:   defenderHPBefore,
			HPAfter:    res.DefenderNewHP,
			MaxHP:      defender.MaxHP,
			IsKnockout: res.IsKnockout,
		},
	})

	entry := HpTimelineEntry{TurnNumber: turnNumber}
	if attacker.ID == r.challenger.ID {
		entry.ChallengerHP = res.AttackerNewHP
		entry.ChallengerMaxHP = r.challenger.MaxHP
		entry.OpponentHP = res.DefenderNewHP
		entry.OpponentMaxHP = r.opponent.MaxHP
	} else {
		entry.ChallengerHP = res.DefenderNewHP
		entry.ChallengerMaxHP = r.challenger.MaxHP
		entry.OpponentHP = res.AttackerNewHP
		entry.OpponentMaxHP = r.opponent.MaxHP
	}
	r.timeline = append(r.timeline, entry)
	return nil
}

// FinishRecording seals the record, resets the recorder for reuse and
// returns the immutable battle history.
func (r *Recorder) FinishRecording(winnerID, winnerName string) (*BattleRecord, error) {
	if !r.recording {
		return nil, ErrNotRecording
	}
	endedAt := r.now()
	startedMs := r.startedAt.UnixMilli()
	endedMs := endedAt.UnixMilli()
	if endedMs < startedMs {
		endedMs = startedMs
	}

	turns := make([]TurnRecord, len(r.turns))
	copy(turns, r.turns)
	timeline := make([]HpTimelineEntry, len(r.timeline))
	copy(timeline, r.timeline)

	rec := &BattleRecord{
		ID:         uuid.New().String(),
		StartedAt:  startedMs,
		EndedAt:    endedMs,
		DurationMs: endedMs - startedMs,
		Challenger: r.challenger,
		Opponent:   r.opponent,
		WinnerID:   winnerID,
		WinnerName: winnerName,
		TotalTurns: len(turns),
		Turns:      turns,
		HpTimeline: timeline,
	}
	r.Reset()
	return rec, nil
}

// Reset drops any in-progress capture.
func (r *Recorder) Reset() {
	r.recording = false
	r.startedAt = time.Time{}
	r.challenger = CombatantSnapshot{}
	r.opponent = CombatantSnapshot{}
	r.turns = nil
	r.timeline = nil
}

func snapshot(c *game.Combatant) CombatantSnapshot {
	return CombatantSnapshot{
		ID:             c.ID,
		Name:           c.Name,
		ImageRef:       c.ImageRef,
		MaxHP:          c.MaxHP,
		HP:             c.CurrentHP,
		Stats:          c.Stats,
		EffectiveRange: c.EffectiveRange,
	}
}
