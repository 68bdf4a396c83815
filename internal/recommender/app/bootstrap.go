package app

import (
	"context"
	"log/slog"

	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/bootstrap"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/telemetry"
	rconfig "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/config"
)

// Initialize 는 추천 서비스 의존성을 초기화하고 ServerApp을 반환한다.
// 기동 시 카탈로그 적재와 과거 평점 행렬 구축까지 완료한다.
func Initialize(ctx context.Context, cfg *rconfig.Config, logger *slog.Logger) (*bootstrap.ServerApp, func(), error) {
	msgProvider, err := newRecommenderMessageProvider()
	if err != nil {
		return nil, nil, err
	}

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanupTelemetry := func() {
		if shutdownErr := shutdownTelemetry(context.Background()); shutdownErr != nil {
			logger.Warn("telemetry_shutdown_failed", "err", shutdownErr)
		}
	}

	valkeyClient, cleanupValkey, err := newRecommenderValkey(ctx, cfg, logger)
	if err != nil {
		cleanupTelemetry()
		return nil, nil, err
	}

	stores := newRecommenderStores(valkeyClient, logger)

	db, cleanupDB, err := newRecommenderDB(ctx, cfg, logger)
	if err != nil {
		cleanupValkey()
		cleanupTelemetry()
		return nil, nil, err
	}

	repository, err := newRecommenderRepository(ctx, db)
	if err != nil {
		cleanupDB()
		cleanupValkey()
		cleanupTelemetry()
		return nil, nil, err
	}

	matrix, err := newRecommenderMatrix(ctx, cfg, repository, logger)
	if err != nil {
		cleanupDB()
		cleanupValkey()
		cleanupTelemetry()
		return nil, nil, err
	}

	lock := newRecommenderLock(valkeyClient, logger)
	services := newRecommenderServices(cfg, stores, matrix, lock, logger)

	if err := services.catalogService.Load(ctx); err != nil {
		cleanupDB()
		cleanupValkey()
		cleanupTelemetry()
		return nil, nil, err
	}

	httpMux := newRecommenderHTTPMux(services, msgProvider, logger)
	httpServer := newRecommenderHTTPServer(cfg, httpMux)
	serverApp := newRecommenderServerApp(logger, httpServer)

	cleanup := func() {
		cleanupDB()
		cleanupValkey()
		cleanupTelemetry()
	}

	return serverApp, cleanup, nil
}
