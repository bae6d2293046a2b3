package game

// DamageResult is the structured breakdown of a single damage calculation.
// IsCrit reflects the rolled critical only; the value-based critical rule is
// folded into AttackResult.IsCritical.
type DamageResult struct {
	BaseDamage      int  `json:"base_damage"`
	IsCrit          bool `json:"is_crit"`
	CritMultiplier  int  `json:"crit_multiplier"`
	CritBonus       int  `json:"crit_bonus"`
	LifestealAmount int  `json:"lifesteal_amount"`
	FinalDamage     int  `json:"final_damage"`
}

// AttackResult is the immutable outcome of one resolved attack.
type AttackResult struct {
	Damage        int          `json:"damage"`
	DefenderNewHP int          `json:"defender_new_hp"`
	AttackerNewHP int          `json:"attacker_new_hp"`
	IsCritical    bool         `json:"is_critical"`
	IsKnockout    bool         `json:"is_knockout"`
	Breakdown     DamageResult `json:"breakdown"`
}
