package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/tmarquesini/card-arena/internal/game"
)

type gemEntry struct {
	Name             string         `json:"name"`
	Trigger          string         `json:"trigger"`
	SkillType        string         `json:"skill_type"`
	ActivationChance int            `json:"activation_chance"`
	Cooldown         int            `json:"cooldown"`
	Effect           game.GemEffect `json:"effect"`
}

type rawConfig struct {
	GemList []gemEntry `json:"gem_list"`
	Server  *struct {
		Address string `json:"address"`
	} `json:"server"`
	Database *struct {
		Path string `json:"path"`
	} `json:"database"`
	Battle *struct {
		MaxTurns int `json:"max_turns"`
	} `json:"battle"`
	Replay *struct {
		BaseIntervalMs int `json:"base_interval_ms"`
	} `json:"replay"`
}

// envOverrides are applied on top of the config file so deployments can
// tweak the address and database path without editing the file.
type envOverrides struct {
	ServerAddress string `env:"CARD_ARENA_ADDR"`
	DatabasePath  string `env:"CARD_ARENA_DB"`
}

// LoadedConfig is the validated runtime configuration.
type LoadedConfig struct {
	Gems               []game.Gem
	ServerAddress      string
	DatabasePath       string
	MaxTurns           int
	ReplayBaseInterval time.Duration
}

const (
	defaultServerAddress = ":8080"
	defaultDatabasePath  = "./data/card_arena.db"
	defaultMaxTurns      = 200
)

// LoadConfig reads the configuration file at path. The gem catalog is
// validated for unique names and known trigger/skill combinations; malformed
// numeric values are clamped by Gem.Normalize rather than rejected.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	gems := make([]game.Gem, 0, len(rc.GemList))
	nameSet := make(map[string]struct{}, len(rc.GemList))
	for _, e := range rc.GemList {
		if e.Name == "" {
			return nil, fmt.Errorf("config file %s: gem entry missing 'name'", path)
		}
		ln := strings.ToLower(strings.TrimSpace(e.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate gem name '%s'", path, e.Name)
		}
		nameSet[ln] = struct{}{}

		g := game.Gem{
			Name:             e.Name,
			Trigger:          game.GemTrigger(e.Trigger),
			SkillType:        game.SkillType(e.SkillType),
			ActivationChance: e.ActivationChance,
			Cooldown:         e.Cooldown,
			Effect:           e.Effect,
		}
		if err := validateGem(&g); err != nil {
			return nil, fmt.Errorf("config file %s: gem '%s': %w", path, e.Name, err)
		}
		g.Normalize()
		gems = append(gems, g)
	}

	cfg := &LoadedConfig{
		Gems:               gems,
		ServerAddress:      defaultServerAddress,
		DatabasePath:       defaultDatabasePath,
		MaxTurns:           defaultMaxTurns,
		ReplayBaseInterval: 0,
	}
	if rc.Server != nil && rc.Server.Address != "" {
		cfg.ServerAddress = rc.Server.Address
	}
	if rc.Database != nil && rc.Database.Path != "" {
		cfg.DatabasePath = rc.Database.Path
	}
	if rc.Battle != nil && rc.Battle.MaxTurns > 0 {
		cfg.MaxTurns = rc.Battle.MaxTurns
	}
	if rc.Replay != nil && rc.Replay.BaseIntervalMs > 0 {
		cfg.ReplayBaseInterval = time.Duration(rc.Replay.BaseIntervalMs) * time.Millisecond
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *LoadedConfig) error {
	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return fmt.Errorf("parse env overrides: %w", err)
	}
	if ov.ServerAddress != "" {
		cfg.ServerAddress = ov.ServerAddress
	}
	if ov.DatabasePath != "" {
		cfg.DatabasePath = ov.DatabasePath
	}
	return nil
}

func validateGem(g *game.Gem) error {
	switch g.Trigger {
	case game.TriggerMovement:
		if g.SkillType != game.SkillDoubleMove && g.SkillType != game.SkillLeapStrike {
			return fmt.Errorf("skill_type '%s' is not a movement skill", g.SkillType)
		}
	case game.TriggerCombat:
		switch g.SkillType {
		case game.SkillKnockback, game.SkillRetreat, game.SkillDoubleAttack, game.SkillExecute:
		default:
			return fmt.Errorf("skill_type '%s' is not a combat skill", g.SkillType)
		}
	default:
		return fmt.Errorf("unknown trigger '%s'", g.Trigger)
	}
	return nil
}
