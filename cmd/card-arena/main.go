package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/tmarquesini/card-arena/internal/api"
	"github.com/tmarquesini/card-arena/internal/constants"
	"github.com/tmarquesini/card-arena/internal/logging"
)

func main() {
	// Path may be provided via CARD_ARENA_CONFIG or defaults to
	// ./card_arena_config.json in the current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./card_arena_config.json"
	}
	cfg := loadConfigOrExit(configPath)
	repo := createRepositoryOrExit(cfg.DatabasePath)

	handler := api.NewBattleHandler(repo, cfg.MaxTurns, cfg.Gems)

	router := gin.Default()
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteBattles, handler.ListBattles)
		apiRoutes.POST(constants.RouteBattleSimulate, handler.SimulateBattle)
		apiRoutes.GET(constants.RouteBattleByID, handler.GetBattle)
		apiRoutes.DELETE(constants.RouteBattleByID, handler.DeleteBattle)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
