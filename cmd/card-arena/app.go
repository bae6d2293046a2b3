package main

import (
	"github.com/tmarquesini/card-arena/internal/config"
	"github.com/tmarquesini/card-arena/internal/logging"
	"github.com/tmarquesini/card-arena/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid card arena configuration", err, logging.Fields{"config_path": path, "hint": "create a card_arena_config.json with a 'gem_list' array of gem objects (name,trigger,skill_type,activation_chance,cooldown,effect) and optional keys: server.address, database.path, battle.max_turns, replay.base_interval_ms"})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}
