package engine

import (
	"math"
	"math/rand"

	"github.com/tmarquesini/card-arena/internal/game"
)

// Roller draws a uniform integer in [0, n). The engine takes its randomness
// through this type so tests can pin every roll.
type Roller func(n int) int

// DefaultRoller uses the shared math/rand source.
func DefaultRoller(n int) int { return rand.Intn(n) }

// Fraction of the defender's max HP above which a hit is flagged critical
// regardless of the chance roll. Legacy rule: both definitions of "critical"
// are OR'd into the exposed flag.
const heavyHitFraction = 0.30

// Resolver computes attack outcomes. It is stateless apart from the
// injectable roll source.
type Resolver struct {
	roll Roller
}

// NewResolver creates a Resolver. A nil roller falls back to math/rand.
func NewResolver(roll Roller) *Resolver {
	if roll == nil {
		roll = DefaultRoller
	}
	return &Resolver{roll: roll}
}

// CalculateAttack maps attacker and defender stats to a full attack outcome:
// armor-pen adjusted base damage, critical roll, lifesteal and knockout
// detection. It never mutates its inputs; the only randomness is the single
// crit-chance draw.
func (r *Resolver) CalculateAttack(attacker, defender *game.Combatant) game.AttackResult {
	effectiveDefense := float64(defender.Stats.Def) * (1.0 - float64(clampChance(attacker.Stats.ArmorPen))/100.0)
	baseDamage := attacker.Stats.Atk - int(math.Floor(effectiveDefense))
	if baseDamage < 0 {
		baseDamage = 0
	}

	critMultiplier := attacker.Stats.CritDamage
	if critMultiplier < 100 {
		critMultiplier = 100
	}

	finalDamage := baseDamage
	critBonus := 0
	rolledCrit := r.roll(100) < clampChance(attacker.Stats.CritChance)
	if rolledCrit {
		finalDamage = int(math.Floor(float64(baseDamage) * float64(critMultiplier) / 100.0))
		critBonus = finalDamage - baseDamage
	}

	// Value-based critical: any hit above 30% of the defender's max HP is
	// flagged critical even without a successful roll.
	isCritical := rolledCrit || float64(finalDamage) > float64(defender.MaxHP)*heavyHitFraction

	defenderNewHP := defender.CurrentHP - finalDamage
	if defenderNewHP < 0 {
		defenderNewHP = 0
	}

	lifesteal := finalDamage * clampChance(attacker.Stats.Lifesteal) / 100
	attackerNewHP := attacker.CurrentHP + lifesteal
	if attackerNewHP > attacker.MaxHP {
		attackerNewHP = attacker.MaxHP
	}

	return game.AttackResult{
		Damage:        finalDamage,
		DefenderNewHP: defenderNewHP,
		AttackerNewHP: attackerNewHP,
		IsCritical:    isCritical,
		IsKnockout:    defenderNewHP == 0,
		Breakdown: game.DamageResult{
			BaseDamage:      baseDamage,
			IsCrit:          rolledCrit,
			CritMultiplier:  critMultiplier,
			CritBonus:       critBonus,
			LifestealAmount: lifesteal,
			FinalDamage:     finalDamage,
		},
	}
}

func clampChance(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
