package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/bootstrap"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/health"
	rapp "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/app"
	rconfig "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/config"
)

// Version: 빌드 시 ldflags로 주입됨 (예: -ldflags="-X main.Version=1.0.0")
var Version = "dev"

func main() {
	health.Init(Version)

	logger := bootstrap.NewLogger()
	slog.SetDefault(logger)

	finalLogger, err := bootstrap.RunServiceEntrypoint(
		context.Background(),
		logger,
		"recommender.log",
		rconfig.LoadFromEnv,
		func(cfg *rconfig.Config) rconfig.LogConfig { return cfg.Log },
		rapp.Initialize,
	)
	if err != nil {
		logger = finalLogger
		logger.Error("fatal", "err", err)
		os.Exit(1)
	}
}
