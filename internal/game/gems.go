package game

// GemTrigger tells when an equipped gem is evaluated.
type GemTrigger string

const (
	TriggerMovement GemTrigger = "movement"
	TriggerCombat   GemTrigger = "combat"
)

// SkillType identifies the effect a gem applies when it activates.
type SkillType string

const (
	SkillDoubleMove   SkillType = "double_move"
	SkillLeapStrike   SkillType = "leap_strike"
	SkillKnockback    SkillType = "knockback"
	SkillRetreat      SkillType = "retreat"
	SkillDoubleAttack SkillType = "double_attack"
	SkillExecute      SkillType = "execute"
)

// Default effect parameters applied when a gem configuration omits them.
const (
	DefaultMoveDistance     = 2
	DefaultLeapRange        = 3
	DefaultPushDistance     = 1
	DefaultExecuteThreshold = 15 // percent of max HP
)

// GemEffect holds the explicitly-typed effect parameters. Each skill type
// reads only its own fields; Normalize fills the defaults so the engine never
// sees a zero-valued parameter for the skill it resolves.
type GemEffect struct {
	MoveDistance     int `json:"move_distance"`     // double_move: cells moved instead of one
	LeapRange        int `json:"leap_range"`        // leap_strike: maximum distance to trigger the leap
	PushDistance     int `json:"push_distance"`     // leap_strike/knockback/retreat: cells pushed or pulled
	ExecuteThreshold int `json:"execute_threshold"` // execute: HP percentage below which the defender dies
}

// Gem is an equippable skill modifier.
type Gem struct {
	Name             string     `json:"name"`
	Trigger          GemTrigger `json:"trigger"`
	SkillType        SkillType  `json:"skill_type"`
	ActivationChance int        `json:"activation_chance"` // 0-100
	Cooldown         int        `json:"cooldown"`          // turns until the gem may activate again
	Effect           GemEffect  `json:"effect"`
}

// Normalize clamps malformed numeric configuration instead of rejecting it
// and fills per-skill effect defaults.
func (g *Gem) Normalize() {
	g.ActivationChance = clampPercent(g.ActivationChance)
	if g.Cooldown < 0 {
		g.Cooldown = 0
	}
	switch g.SkillType {
	case SkillDoubleMove:
		if g.Effect.MoveDistance <= 0 {
			g.Effect.MoveDistance = DefaultMoveDistance
		}
	case SkillLeapStrike:
		if g.Effect.LeapRange <= 0 {
			g.Effect.LeapRange = DefaultLeapRange
		}
		if g.Effect.PushDistance <= 0 {
			g.Effect.PushDistance = DefaultPushDistance
		}
	case SkillKnockback, SkillRetreat:
		if g.Effect.PushDistance <= 0 {
			g.Effect.PushDistance = DefaultPushDistance
		}
	case SkillExecute:
		if g.Effect.ExecuteThreshold <= 0 {
			g.Effect.ExecuteThreshold = DefaultExecuteThreshold
		}
		g.Effect.ExecuteThreshold = clampPercent(g.Effect.ExecuteThreshold)
	}
}

// EquippedGemState pairs a gem definition with its live cooldown counter.
type EquippedGemState struct {
	Gem             Gem `json:"gem"`
	CurrentCooldown int `json:"current_cooldown"`
}

// Equip builds the live gem states for a combatant, normalizing each
// definition. Activation order follows equip order.
func Equip(gems []Gem) []EquippedGemState {
	out := make([]EquippedGemState, 0, len(gems))
	for _, g := range gems {
		g.Normalize()
		out = append(out, EquippedGemState{Gem: g})
	}
	return out
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
