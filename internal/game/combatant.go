package game

// Stats is the merged stat bundle for a combatant. Equipment bonuses
// (weapons, gems) are folded in by the caller before a battle starts; the
// engine only consumes the merged values.
type Stats struct {
	Atk        int `json:"atk"`
	Def        int `json:"def"`
	Spd        int `json:"spd"`
	CritChance int `json:"crit_chance"` // 0-100
	CritDamage int `json:"crit_damage"` // percentage multiplier, basis 100
	ArmorPen   int `json:"armor_pen"`   // 0-100
	Lifesteal  int `json:"lifesteal"`   // 0-100
}

// Combatant is a battle participant. Hit points are mutated only through
// ApplyAsAttacker/ApplyAsDefender so every change traces back to an
// AttackResult.
type Combatant struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ImageRef       string `json:"image_ref"`
	MaxHP          int    `json:"max_hp"`
	CurrentHP      int    `json:"current_hp"`
	Stats          Stats  `json:"stats"`
	EffectiveRange int    `json:"effective_range"` // maximum attack distance in cells, >= 1
}

// Normalize clamps hit points into [0, MaxHP] and enforces the minimum
// effective range of one cell.
func (c *Combatant) Normalize() {
	if c.MaxHP < 1 {
		c.MaxHP = 1
	}
	if c.CurrentHP > c.MaxHP {
		c.CurrentHP = c.MaxHP
	}
	if c.CurrentHP < 0 {
		c.CurrentHP = 0
	}
	if c.EffectiveRange < 1 {
		c.EffectiveRange = 1
	}
}

// ApplyAsAttacker applies the attacker-side outcome (lifesteal healing).
func (c *Combatant) ApplyAsAttacker(res *AttackResult) {
	c.CurrentHP = clampHP(res.AttackerNewHP, c.MaxHP)
}

// ApplyAsDefender applies the defender-side outcome (damage taken).
func (c *Combatant) ApplyAsDefender(res *AttackResult) {
	c.CurrentHP = clampHP(res.DefenderNewHP, c.MaxHP)
}

// IsAlive reports whether the combatant still has hit points left.
func (c *Combatant) IsAlive() bool { return c.CurrentHP > 0 }

func clampHP(hp, max int) int {
	if hp < 0 {
		return 0
	}
	if hp > max {
		return max
	}
	return hp
}
