package engine

import (
	"testing"

	"github.com/tmarquesini/card-arena/internal/game"
)

// rollLow makes every chance check succeed; rollHigh makes every one fail
// (except a clamped 100% chance).
func rollLow(n int) int  { return 0 }
func rollHigh(n int) int { return n - 1 }

func testAttacker() *game.Combatant {
	return &game.Combatant{
		ID: "c1", Name: "Challenger", MaxHP: 100, CurrentHP: 80,
		Stats:          game.Stats{Atk: 50, CritChance: 50, CritDamage: 150, ArmorPen: 50, Lifesteal: 25},
		EffectiveRange: 1,
	}
}

func testDefender() *game.Combatant {
	return &game.Combatant{
		ID: "c2", Name: "Opponent", MaxHP: 200, CurrentHP: 150,
		Stats:          game.Stats{Def: 20},
		EffectiveRange: 1,
	}
}

func TestCalculateAttack_NoCrit(t *testing.T) {
	r := NewResolver(rollHigh)
	res := r.CalculateAttack(testAttacker(), testDefender())

	// effective defense = 20 * (1 - 50/100) = 10; base = 50 - 10 = 40
	if res.Breakdown.BaseDamage != 40 {
		t.Fatalf("expected base damage 40, got %d", res.Breakdown.BaseDamage)
	}
	if res.Breakdown.IsCrit {
		t.Fatalf("expected no rolled crit")
	}
	if res.Damage != 40 || res.Breakdown.FinalDamage != 40 {
		t.Fatalf("expected final damage 40, got %d/%d", res.Damage, res.Breakdown.FinalDamage)
	}
	if res.DefenderNewHP != 110 {
		t.Fatalf("expected defender HP 110, got %d", res.DefenderNewHP)
	}
	// lifesteal = floor(40 * 25 / 100) = 10
	if res.Breakdown.LifestealAmount != 10 {
		t.Fatalf("expected lifesteal 10, got %d", res.Breakdown.LifestealAmount)
	}
	if res.AttackerNewHP != 90 {
		t.Fatalf("expected attacker HP 90, got %d", res.AttackerNewHP)
	}
	if res.IsKnockout {
		t.Fatalf("expected no knockout")
	}
}

func TestCalculateAttack_RolledCrit(t *testing.T) {
	r := NewResolver(rollLow)
	res := r.CalculateAttack(testAttacker(), testDefender())

	// crit: floor(40 * 150/100) = 60, bonus 20
	if !res.Breakdown.IsCrit || !res.IsCritical {
		t.Fatalf("expected rolled crit")
	}
	if res.Breakdown.FinalDamage != 60 {
		t.Fatalf("expected final damage 60, got %d", res.Breakdown.FinalDamage)
	}
	if res.Breakdown.CritBonus != 20 {
		t.Fatalf("expected crit bonus 20, got %d", res.Breakdown.CritBonus)
	}
	if res.Breakdown.CritMultiplier != 150 {
		t.Fatalf("expected crit multiplier 150, got %d", res.Breakdown.CritMultiplier)
	}
}

func TestCalculateAttack_ChanceBounds(t *testing.T) {
	atk := testAttacker()
	atk.Stats.CritChance = 0
	res := NewResolver(rollLow).CalculateAttack(atk, testDefender())
	if res.Breakdown.IsCrit {
		t.Fatalf("expected no crit at 0%% chance even on the lowest roll")
	}

	atk.Stats.CritChance = 100
	res = NewResolver(rollHigh).CalculateAttack(atk, testDefender())
	if !res.Breakdown.IsCrit {
		t.Fatalf("expected crit at 100%% chance even on the highest roll")
	}

	// chance above 100 is clamped, not rejected
	atk.Stats.CritChance = 150
	res = NewResolver(rollHigh).CalculateAttack(atk, testDefender())
	if !res.Breakdown.IsCrit {
		t.Fatalf("expected clamped chance 150 to behave like 100")
	}
}

func TestCalculateAttack_HeavyHitFlagsCritical(t *testing.T) {
	atk := testAttacker()
	atk.Stats.CritChance = 0
	def := testDefender()
	def.MaxHP = 100
	def.CurrentHP = 100
	def.Stats.Def = 0

	// final damage 50 > 30% of 100, without any rolled crit
	res := NewResolver(rollHigh).CalculateAttack(atk, def)
	if res.Breakdown.IsCrit {
		t.Fatalf("expected no rolled crit")
	}
	if !res.IsCritical {
		t.Fatalf("expected heavy hit to flag the attack critical")
	}
	if res.Breakdown.CritBonus != 0 {
		t.Fatalf("value-based critical must not add a crit bonus, got %d", res.Breakdown.CritBonus)
	}
}

func TestCalculateAttack_KnockoutAndFloors(t *testing.T) {
	atk := testAttacker()
	def := testDefender()
	def.CurrentHP = 30

	res := NewResolver(rollHigh).CalculateAttack(atk, def)
	if res.DefenderNewHP != 0 {
		t.Fatalf("expected defender HP floored at 0, got %d", res.DefenderNewHP)
	}
	if !res.IsKnockout {
		t.Fatalf("expected knockout at 0 HP")
	}

	// over-armored defender: damage floors at 0, never negative
	atk.Stats.Atk = 5
	atk.Stats.ArmorPen = 0
	def.Stats.Def = 50
	def.CurrentHP = 30
	res = NewResolver(rollHigh).CalculateAttack(atk, def)
	if res.Damage != 0 {
		t.Fatalf("expected damage floored at 0, got %d", res.Damage)
	}
	if res.DefenderNewHP != 30 {
		t.Fatalf("expected defender HP unchanged, got %d", res.DefenderNewHP)
	}
	if res.IsKnockout {
		t.Fatalf("zero damage must not knock out")
	}
}

func TestCalculateAttack_LifestealFloorAndCap(t *testing.T) {
	atk := testAttacker()
	atk.Stats.Atk = 7
	atk.Stats.ArmorPen = 0
	atk.Stats.Lifesteal = 50
	atk.CurrentHP = 99
	def := testDefender()
	def.Stats.Def = 0

	res := NewResolver(rollHigh).CalculateAttack(atk, def)
	// floor(7 * 50 / 100) = 3, capped at max HP 100
	if res.Breakdown.LifestealAmount != 3 {
		t.Fatalf("expected lifesteal 3, got %d", res.Breakdown.LifestealAmount)
	}
	if res.AttackerNewHP != 100 {
		t.Fatalf("expected attacker HP capped at 100, got %d", res.AttackerNewHP)
	}
}
