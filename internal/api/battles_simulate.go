package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tmarquesini/card-arena/internal/constants"
	"github.com/tmarquesini/card-arena/internal/game"
	"github.com/tmarquesini/card-arena/internal/logging"
	"github.com/tmarquesini/card-arena/internal/service"
)

// gemRef references a gem either by catalog name alone or as a full inline
// definition. Inline definitions win when both are present.
type gemRef struct {
	Name             string          `json:"name"`
	Trigger          string          `json:"trigger"`
	SkillType        string          `json:"skill_type"`
	ActivationChance int             `json:"activation_chance"`
	Cooldown         int             `json:"cooldown"`
	Effect           *game.GemEffect `json:"effect"`
}

type simulateRequest struct {
	Challenger     game.Combatant `json:"challenger"`
	Opponent       game.Combatant `json:"opponent"`
	ChallengerGems []gemRef       `json:"challenger_gems"`
	OpponentGems   []gemRef       `json:"opponent_gems"`
}

// SimulateBattle runs one full battle between the posted combatants and
// returns the persisted battle record.
func (h *BattleHandler) SimulateBattle(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.Challenger.ID == "" || req.Opponent.ID == "" || req.Challenger.MaxHP <= 0 || req.Opponent.MaxHP <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	in := service.BattleInput{
		Challenger:     req.Challenger,
		Opponent:       req.Opponent,
		ChallengerGems: h.resolveGems(req.ChallengerGems),
		OpponentGems:   h.resolveGems(req.OpponentGems),
	}
	rec, err := service.RunBattle(h.repo, in, h.maxTurns, nil)
	if err != nil {
		logging.Error("battle simulation failed", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRunBattle})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// resolveGems maps gem references to definitions: catalog lookup by name,
// overridden by any inline fields the request provides.
func (h *BattleHandler) resolveGems(refs []gemRef) []game.Gem {
	out := make([]game.Gem, 0, len(refs))
	for _, ref := range refs {
		g, ok := h.catalog[strings.ToLower(ref.Name)]
		if !ok {
			g = game.Gem{Name: ref.Name}
		}
		if ref.Trigger != "" {
			g.Trigger = game.GemTrigger(ref.Trigger)
		}
		if ref.SkillType != "" {
			g.SkillType = game.SkillType(ref.SkillType)
		}
		if ref.ActivationChance != 0 {
			g.ActivationChance = ref.ActivationChance
		}
		if ref.Cooldown != 0 {
			g.Cooldown = ref.Cooldown
		}
		if ref.Effect != nil {
			g.Effect = *ref.Effect
		}
		g.Normalize()
		out = append(out, g)
	}
	return out
}
