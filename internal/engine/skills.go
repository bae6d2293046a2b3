package engine

import (
	"github.com/tmarquesini/card-arena/internal/game"
)

// MovementResult is the outcome of resolving movement-trigger gems for the
// acting combatant. EnemyNewPosition always carries the enemy's position,
// changed or not.
type MovementResult struct {
	FinalPosition    int
	EnemyNewPosition int
	SkillsActivated  []string
}

// CombatResult is the outcome of resolving combat-trigger gems after damage
// was applied. ExtraAttacks is the number of queued follow-up attacks the
// caller must execute in order; queuing instead of a callback keeps skill
// resolution free of re-entrant state mutation.
type CombatResult struct {
	AttackerNewPosition int
	DefenderNewPosition int
	DefenderNewHP       int
	ExtraAttacks        int
	SkillsActivated     []string
}

// RollActivation draws uniform [0,100) and activates iff the draw is below
// the clamped chance. A chance of 100 always activates, 0 never does.
func RollActivation(roll Roller, chance int) bool {
	return roll(100) < clampChance(chance)
}

// CanActivate reports whether the gem is off cooldown.
func CanActivate(gs *game.EquippedGemState) bool { return gs.CurrentCooldown == 0 }

// TryActivateSkill gates the gem on its cooldown and activation roll. Only a
// successful activation starts the cooldown; a failed roll leaves it at zero.
func TryActivateSkill(roll Roller, gs *game.EquippedGemState) bool {
	if !CanActivate(gs) {
		return false
	}
	if !RollActivation(roll, gs.Gem.ActivationChance) {
		return false
	}
	gs.CurrentCooldown = gs.Gem.Cooldown
	return true
}

// DecrementCooldowns ticks every gem's cooldown down by one, flooring at
// zero. The arena calls this once per completed turn for both combatants.
func DecrementCooldowns(gems []game.EquippedGemState) {
	for i := range gems {
		if gems[i].CurrentCooldown > 0 {
			gems[i].CurrentCooldown--
		}
	}
}

// ProcessMovementSkills resolves the mover's movement-trigger gems.
// currentPos is where the mover stands, targetPos the normal one-cell
// destination and enemyPos the enemy's cell. Gems are evaluated in equip
// order and each one is independently cooldown-gated and rolled.
func ProcessMovementSkills(roll Roller, gems []game.EquippedGemState, currentPos, targetPos, enemyPos int) MovementResult {
	out := MovementResult{FinalPosition: targetPos, EnemyNewPosition: enemyPos}
	for i := range gems {
		gs := &gems[i]
		if gs.Gem.Trigger != game.TriggerMovement {
			continue
		}
		switch gs.Gem.SkillType {
		case game.SkillDoubleMove:
			if !TryActivateSkill(roll, gs) {
				continue
			}
			out.FinalPosition = StepToward(currentPos, out.EnemyNewPosition, gs.Gem.Effect.MoveDistance)
			out.SkillsActivated = append(out.SkillsActivated, gs.Gem.Name)
		case game.SkillLeapStrike:
			d := game.Distance(currentPos, out.EnemyNewPosition)
			if d == 0 || d > gs.Gem.Effect.LeapRange {
				continue
			}
			if !TryActivateSkill(roll, gs) {
				continue
			}
			dir := game.Direction(currentPos, out.EnemyNewPosition)
			out.FinalPosition = game.ClampCell(out.EnemyNewPosition - dir)
			out.EnemyNewPosition = game.ClampCell(out.EnemyNewPosition + dir*gs.Gem.Effect.PushDistance)
			out.SkillsActivated = append(out.SkillsActivated, gs.Gem.Name)
		}
	}
	return out
}

// ProcessCombatSkills resolves the attacker's combat-trigger gems after the
// attack result was computed. The defender HP flows through the result so an
// execute can zero it and a later double_attack sees the updated value.
func ProcessCombatSkills(roll Roller, attackerGems []game.EquippedGemState, defender *game.Combatant, attackerPos, defenderPos int, res *game.AttackResult) CombatResult {
	out := CombatResult{
		AttackerNewPosition: attackerPos,
		DefenderNewPosition: defenderPos,
		DefenderNewHP:       res.DefenderNewHP,
	}
	for i := range attackerGems {
		gs := &attackerGems[i]
		if gs.Gem.Trigger != game.TriggerCombat {
			continue
		}
		switch gs.Gem.SkillType {
		case game.SkillKnockback:
			if !TryActivateSkill(roll, gs) {
				continue
			}
			out.DefenderNewPosition = pushAway(out.AttackerNewPosition, out.DefenderNewPosition, gs.Gem.Effect.PushDistance)
		case game.SkillRetreat:
			if !TryActivateSkill(roll, gs) {
				continue
			}
			out.AttackerNewPosition = pushAway(out.DefenderNewPosition, out.AttackerNewPosition, gs.Gem.Effect.PushDistance)
		case game.SkillDoubleAttack:
			// Only worth a follow-up while the defender still stands.
			if out.DefenderNewHP <= 0 {
				continue
			}
			if !TryActivateSkill(roll, gs) {
				continue
			}
			out.ExtraAttacks++
		case game.SkillExecute:
			if out.DefenderNewHP <= 0 {
				continue
			}
			if out.DefenderNewHP*100 >= defender.MaxHP*gs.Gem.Effect.ExecuteThreshold {
				continue
			}
			if !TryActivateSkill(roll, gs) {
				continue
			}
			out.DefenderNewHP = 0
		default:
			continue
		}
		out.SkillsActivated = append(out.SkillsActivated, gs.Gem.Name)
	}
	return out
}

// StepToward advances from a position toward the enemy by the given number
// of cells, clamped to the arena line and capped at the cell adjacent to the
// enemy so two combatants never share a cell.
func StepToward(from, enemyPos, steps int) int {
	dir := game.Direction(from, enemyPos)
	if dir == 0 {
		return from
	}
	pos := game.ClampCell(from + dir*steps)
	if dir > 0 && pos >= enemyPos {
		pos = enemyPos - 1
	}
	if dir < 0 && pos <= enemyPos {
		pos = enemyPos + 1
	}
	return pos
}

// pushAway moves target further from anchor by dist cells, clamped to the
// arena line.
func pushAway(anchor, target, dist int) int {
	dir := game.Direction(anchor, target)
	if dir == 0 {
		return target
	}
	return game.ClampCell(target + dir*dist)
}
