package arena

import (
	"fmt"

	"github.com/tmarquesini/card-arena/internal/engine"
	"github.com/tmarquesini/card-arena/internal/game"
)

// Side identifies one of the two combatants.
type Side string

const (
	SideChallenger Side = "challenger"
	SideOpponent   Side = "opponent"
)

// Result is the battle outcome.
type Result string

const (
	ResultNone           Result = ""
	ResultChallengerWins Result = "challenger_wins"
	ResultOpponentWins   Result = "opponent_wins"
)

// LogEntry is one line of the battle log.
type LogEntry struct {
	Turn    int    `json:"turn"`
	Kind    string `json:"kind"` // move | attack | skill | victory
	Actor   string `json:"actor"`
	Message string `json:"message"`
}

// TurnOutcome summarizes what a single ExecuteMove/ExecuteAttack call did.
// A nil outcome means the call was a no-op for the current phase.
type TurnOutcome struct {
	Action          string              `json:"action"` // move | attack | approach
	Attacks         []game.AttackResult `json:"attacks"`
	SkillsActivated []string            `json:"skills_activated"`
}

// TurnRecorder mirrors resolved attacks into a battle record. The arena
// calls it once per resolved attack, follow-up attacks included.
type TurnRecorder interface {
	RecordTurn(turnNumber int, attacker, defender *game.Combatant, res *game.AttackResult, defenderHPBefore, attackerHPBefore int) error
}

// Arena is one battle instance. It owns positions, turn order and phase and
// orchestrates the damage resolver and the skill system. Instances are
// independent; never share one across concurrent battles.
type Arena struct {
	challenger *game.Combatant
	opponent   *game.Combatant

	challengerGems []game.EquippedGemState
	opponentGems   []game.EquippedGemState

	challengerPos int
	opponentPos   int

	phase        game.ArenaPhase
	currentTurn  Side
	turnCount    int // completed turns
	attackCount  int // resolved attacks, drives recorder turn numbers
	result       Result
	isAutoBattle bool
	log          []LogEntry

	resolver *engine.Resolver
	roll     engine.Roller
	recorder TurnRecorder
}

// New creates an arena in the setup phase. A nil roller falls back to
// math/rand.
func New(roll engine.Roller) *Arena {
	if roll == nil {
		roll = engine.DefaultRoller
	}
	return &Arena{
		phase:    game.PhaseSetup,
		resolver: engine.NewResolver(roll),
		roll:     roll,
	}
}

// AttachRecorder makes the arena mirror every resolved attack into the
// given recorder. Attach before InitArena so turn one is captured.
func (a *Arena) AttachRecorder(r TurnRecorder) { a.recorder = r }

// InitArena places the challenger at the leftmost cell and the opponent at
// the rightmost one, equips the gems, computes the initial phase and gives
// the first turn to the challenger.
func (a *Arena) InitArena(challenger, opponent *game.Combatant, challengerGems, opponentGems []game.Gem) {
	challenger.Normalize()
	opponent.Normalize()
	a.challenger = challenger
	a.opponent = opponent
	a.challengerGems = game.Equip(challengerGems)
	a.opponentGems = game.Equip(opponentGems)
	a.challengerPos = game.ArenaMinCell
	a.opponentPos = game.ArenaMaxCell
	a.currentTurn = SideChallenger
	a.turnCount = 0
	a.attackCount = 0
	a.result = ResultNone
	a.isAutoBattle = false
	a.log = nil
	a.phase = game.ComputePhase(a.challengerPos, a.opponentPos, challenger.EffectiveRange, opponent.EffectiveRange)
}

// ResetArena returns the arena to the setup phase and drops all battle state.
func (a *Arena) ResetArena() {
	a.challenger = nil
	a.opponent = nil
	a.challengerGems = nil
	a.opponentGems = nil
	a.challengerPos = 0
	a.opponentPos = 0
	a.currentTurn = ""
	a.turnCount = 0
	a.attackCount = 0
	a.result = ResultNone
	a.isAutoBattle = false
	a.log = nil
	a.phase = game.PhaseSetup
}

// Phase returns the current state machine phase.
func (a *Arena) Phase() game.ArenaPhase { return a.phase }

// Result returns the battle result, empty until the battle finishes.
func (a *Arena) Result() Result { return a.result }

// CurrentTurn returns whose turn it is to act.
func (a *Arena) CurrentTurn() Side { return a.currentTurn }

// Positions returns the challenger and opponent cells.
func (a *Arena) Positions() (challenger, opponent int) {
	return a.challengerPos, a.opponentPos
}

// TurnCount returns the number of completed turns.
func (a *Arena) TurnCount() int { return a.turnCount }

// Log returns the accumulated battle log.
func (a *Arena) Log() []LogEntry { return a.log }

// IsAutoBattle reports whether auto-battle is enabled.
func (a *Arena) IsAutoBattle() bool { return a.isAutoBattle }

// GemStates exposes the live gem states for one side.
func (a *Arena) GemStates(side Side) []game.EquippedGemState {
	if side == SideChallenger {
		return a.challengerGems
	}
	return a.opponentGems
}

// ToggleAutoBattle flips the auto-battle flag. It is only effective while
// the battle is running; setup and finished phases ignore it.
func (a *Arena) ToggleAutoBattle() bool {
	if a.phase == game.PhaseMoving || a.phase == game.PhaseCombat {
		a.isAutoBattle = !a.isAutoBattle
	}
	return a.isAutoBattle
}

// ExecuteMove advances the acting combatant one cell toward the enemy
// (subject to movement gem overrides). If the enemy is already in range the
// move is skipped and an attack resolves instead; if the move brings the
// enemy into range the attack resolves immediately in the same turn. Returns
// nil unless the phase is moving.
func (a *Arena) ExecuteMove() *TurnOutcome {
	if a.phase != game.PhaseMoving {
		return nil
	}
	mover, enemy := a.actingPair()
	moverPos, enemyPos := a.actingPositions()

	// Asymmetric ranges can leave the phase at moving while the mover can
	// already reach the enemy; attack straight away in that case.
	if game.Distance(moverPos, enemyPos) <= mover.EffectiveRange {
		out := a.resolveAttackSequence()
		a.endTurn()
		return out
	}

	target := engine.StepToward(moverPos, enemyPos, 1)
	msr := engine.ProcessMovementSkills(a.roll, a.actingGems(), moverPos, target, enemyPos)
	a.setActingPositions(msr.FinalPosition, msr.EnemyNewPosition)

	a.addLog("move", mover.Name, fmt.Sprintf("%s moves from cell %d to cell %d", mover.Name, moverPos, msr.FinalPosition))
	for _, s := range msr.SkillsActivated {
		a.addLog("skill", mover.Name, fmt.Sprintf("%s activates %s", mover.Name, s))
	}
	if msr.EnemyNewPosition != enemyPos {
		a.addLog("move", enemy.Name, fmt.Sprintf("%s is displaced to cell %d", enemy.Name, msr.EnemyNewPosition))
	}

	out := &TurnOutcome{Action: "move", SkillsActivated: msr.SkillsActivated}
	if game.Distance(msr.FinalPosition, msr.EnemyNewPosition) <= mover.EffectiveRange {
		// Move-then-attack: the attack resolves within the same turn.
		if atk := a.resolveAttackSequence(); atk != nil {
			out.Attacks = atk.Attacks
			out.SkillsActivated = append(out.SkillsActivated, atk.SkillsActivated...)
		}
	}
	a.endTurn()
	return out
}

// ExecuteAttack resolves an attack for the acting combatant. If the target
// is out of the attacker's own range (asymmetric ranges), the attacker steps
// one cell closer instead and the turn passes without damage. Returns nil
// unless the phase is combat.
func (a *Arena) ExecuteAttack() *TurnOutcome {
	if a.phase != game.PhaseCombat {
		return nil
	}
	mover, enemy := a.actingPair()
	moverPos, enemyPos := a.actingPositions()

	if game.Distance(moverPos, enemyPos) > mover.EffectiveRange {
		target := engine.StepToward(moverPos, enemyPos, 1)
		a.setActingPositions(target, enemyPos)
		a.addLog("move", mover.Name, fmt.Sprintf("%s closes in on %s, moving to cell %d", mover.Name, enemy.Name, target))
		a.endTurn()
		return &TurnOutcome{Action: "approach"}
	}

	out := a.resolveAttackSequence()
	a.endTurn()
	return out
}

// resolveAttackSequence resolves the primary attack plus any follow-up
// attacks queued by double_attack gems. Victory is checked after every
// resolved attack.
func (a *Arena) resolveAttackSequence() *TurnOutcome {
	attacker, defender := a.actingPair()
	attackerPos, defenderPos := a.actingPositions()

	defenderHPBefore := defender.CurrentHP
	attackerHPBefore := attacker.CurrentHP
	res := a.resolver.CalculateAttack(attacker, defender)

	csr := engine.ProcessCombatSkills(a.roll, a.actingGems(), defender, attackerPos, defenderPos, &res)
	if csr.DefenderNewHP != res.DefenderNewHP {
		res.DefenderNewHP = csr.DefenderNewHP
		res.IsKnockout = res.DefenderNewHP == 0
	}
	a.setActingPositions(csr.AttackerNewPosition, csr.DefenderNewPosition)

	a.applyAttack(attacker, defender, &res, defenderHPBefore, attackerHPBefore)
	out := &TurnOutcome{Action: "attack", Attacks: []game.AttackResult{res}, SkillsActivated: csr.SkillsActivated}
	for _, s := range csr.SkillsActivated {
		a.addLog("skill", attacker.Name, fmt.Sprintf("%s activates %s", attacker.Name, s))
	}
	if a.checkVictory(attacker, defender) {
		return out
	}

	// Follow-up attacks are plain attacks: they do not re-trigger combat
	// gems, so a double_attack chain cannot feed itself.
	for i := 0; i < csr.ExtraAttacks; i++ {
		if !defender.IsAlive() || a.phase == game.PhaseFinished {
			break
		}
		hpBeforeDef := defender.CurrentHP
		hpBeforeAtk := attacker.CurrentHP
		extra := a.resolver.CalculateAttack(attacker, defender)
		a.applyAttack(attacker, defender, &extra, hpBeforeDef, hpBeforeAtk)
		out.Attacks = append(out.Attacks, extra)
		if a.checkVictory(attacker, defender) {
			break
		}
	}
	return out
}

// applyAttack commits one attack result to both combatants, logs it and
// mirrors it into the recorder when one is attached.
func (a *Arena) applyAttack(attacker, defender *game.Combatant, res *game.AttackResult, defenderHPBefore, attackerHPBefore int) {
	attacker.ApplyAsAttacker(res)
	defender.ApplyAsDefender(res)
	a.attackCount++

	msg := fmt.Sprintf("%s hits %s for %d damage", attacker.Name, defender.Name, res.Damage)
	if res.IsCritical {
		msg += " (critical)"
	}
	if res.Breakdown.LifestealAmount > 0 {
		msg += fmt.Sprintf(", healing %d", res.Breakdown.LifestealAmount)
	}
	a.addLog("attack", attacker.Name, msg)

	if a.recorder != nil {
		if err := a.recorder.RecordTurn(a.attackCount, attacker, defender, res, defenderHPBefore, attackerHPBefore); err != nil {
			// A recorder failure indicates a caller bug; keep the battle
			// going and surface it in the log.
			a.addLog("attack", attacker.Name, fmt.Sprintf("turn recording failed: %v", err))
		}
	}
}

// checkVictory finishes the battle when the defender is knocked out.
func (a *Arena) checkVictory(attacker, defender *game.Combatant) bool {
	if defender.CurrentHP > 0 {
		return false
	}
	a.phase = game.PhaseFinished
	a.isAutoBattle = false
	if attacker == a.challenger {
		a.result = ResultChallengerWins
	} else {
		a.result = ResultOpponentWins
	}
	a.addLog("victory", attacker.Name, fmt.Sprintf("%s wins the battle", attacker.Name))
	return true
}

// endTurn closes one completed turn: cooldowns tick down once for both
// combatants regardless of who acted, the turn alternates and the phase is
// recomputed from the (possibly displaced) positions.
func (a *Arena) endTurn() {
	engine.DecrementCooldowns(a.challengerGems)
	engine.DecrementCooldowns(a.opponentGems)
	a.turnCount++
	if a.phase == game.PhaseFinished {
		return
	}
	if a.currentTurn == SideChallenger {
		a.currentTurn = SideOpponent
	} else {
		a.currentTurn = SideChallenger
	}
	a.phase = game.ComputePhase(a.challengerPos, a.opponentPos, a.challenger.EffectiveRange, a.opponent.EffectiveRange)
}

func (a *Arena) actingPair() (mover, enemy *game.Combatant) {
	if a.currentTurn == SideChallenger {
		return a.challenger, a.opponent
	}
	return a.opponent, a.challenger
}

func (a *Arena) actingPositions() (moverPos, enemyPos int) {
	if a.currentTurn == SideChallenger {
		return a.challengerPos, a.opponentPos
	}
	return a.opponentPos, a.challengerPos
}

func (a *Arena) setActingPositions(moverPos, enemyPos int) {
	if a.currentTurn == SideChallenger {
		a.challengerPos, a.opponentPos = moverPos, enemyPos
	} else {
		a.opponentPos, a.challengerPos = moverPos, enemyPos
	}
}

func (a *Arena) actingGems() []game.EquippedGemState {
	if a.currentTurn == SideChallenger {
		return a.challengerGems
	}
	return a.opponentGems
}

func (a *Arena) addLog(kind, actor, message string) {
	a.log = append(a.log, LogEntry{Turn: a.turnCount + 1, Kind: kind, Actor: actor, Message: message})
}
