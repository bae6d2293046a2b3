package record

import "github.com/tmarquesini/card-arena/internal/game"

// CombatantSnapshot freezes a combatant's identity and stats as they were
// at battle start.
type CombatantSnapshot struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	ImageRef       string     `json:"image_ref"`
	MaxHP          int        `json:"max_hp"`
	HP             int        `json:"hp"`
	Stats          game.Stats `json:"stats"`
	EffectiveRange int        `json:"effective_range"`
}

// DamageBreakdown is the per-turn damage detail persisted in the record.
type DamageBreakdown struct {
	BaseDamage     int  `json:"base_damage"`
	IsCritical     bool `json:"is_critical"`
	CritMultiplier int  `json:"crit_multiplier"`
	CritBonus      int  `json:"crit_bonus"`
	FinalDamage    int  `json:"final_damage"`
}

// LifestealDetail captures how much the attacker healed on a turn.
type LifestealDetail struct {
	Percent         int `json:"percent"`
	Amount          int `json:"amount"`
	AttackerHPAfter int `json:"attacker_hp_after"`
}

// DefenderHpState captures the defender's HP around one attack.
type DefenderHpState struct {
	HPBefore   int  `json:"hp_before"`
	HPAfter    int  `json:"hp_after"`
	MaxHP      int  `json:"max_hp"`
	IsKnockout bool `json:"is_knockout"`
}

// TurnRecord is one resolved attack in the battle history. TurnNumber is
// 1-based and strictly sequential.
type TurnRecord struct {
	TurnNumber   int             `json:"turn_number"`
	AttackerID   string          `json:"attacker_id"`
	AttackerName string          `json:"attacker_name"`
	DefenderID   string          `json:"defender_id"`
	DefenderName string          `json:"defender_name"`
	Damage       DamageBreakdown `json:"damage"`
	Lifesteal    LifestealDetail `json:"lifesteal"`
	DefenderHP   DefenderHpState `json:"defender_hp"`
}

// HpTimelineEntry is both combatants' HP after a given turn. Entry 0 is the
// pre-battle state.
type HpTimelineEntry struct {
	TurnNumber      int `json:"turn_number"`
	ChallengerHP    int `json:"challenger_hp"`
	ChallengerMaxHP int `json:"challenger_max_hp"`
	OpponentHP      int `json:"opponent_hp"`
	OpponentMaxHP   int `json:"opponent_max_hp"`
}

// BattleRecord is the complete, immutable, JSON round-trippable history of
// one battle. Timestamps are unix milliseconds.
type BattleRecord struct {
	ID         string            `json:"id"`
	StartedAt  int64             `json:"started_at"`
	EndedAt    int64             `json:"ended_at"`
	DurationMs int64             `json:"duration_ms"`
	Challenger CombatantSnapshot `json:"challenger"`
	Opponent   CombatantSnapshot `json:"opponent"`
	WinnerID   string            `json:"winner_id"`
	WinnerName string            `json:"winner_name"`
	TotalTurns int               `json:"total_turns"`
	Turns      []TurnRecord      `json:"turns"`
	HpTimeline []HpTimelineEntry `json:"hp_timeline"`
}

// HPAtTurn returns the timeline entry for a turn, falling back to the
// initial entry when the turn is out of range.
func (r *BattleRecord) HPAtTurn(turn int) HpTimelineEntry {
	if turn >= 0 && turn < len(r.HpTimeline) {
		return r.HpTimeline[turn]
	}
	if len(r.HpTimeline) > 0 {
		return r.HpTimeline[0]
	}
	return HpTimelineEntry{}
}
