package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/valkey-io/valkey-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/bootstrap"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/dbutil"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/httpserver"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/messageprovider"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/processinglock"
	rassets "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/assets"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/catalog"
	rconfig "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/config"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/engine"
	rhttpapi "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/httpapi"
	rredis "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/redis"
	rrepo "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/repository"
	rsvc "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/service"
)

type recommenderStores struct {
	flags        *rredis.FlagStore
	ratings      *rredis.RatingStore
	candidates   *rredis.CandidateStore
	recs         *rredis.RecommendationStore
	accounts     *rredis.AccountStore
	catalogCache *rredis.CatalogCache
}

func newRecommenderStores(client valkey.Client, logger *slog.Logger) *recommenderStores {
	return &recommenderStores{
		flags:        rredis.NewFlagStore(client, logger),
		ratings:      rredis.NewRatingStore(client, logger),
		candidates:   rredis.NewCandidateStore(client, logger),
		recs:         rredis.NewRecommendationStore(client, logger),
		accounts:     rredis.NewAccountStore(client, logger),
		catalogCache: rredis.NewCatalogCache(client, logger),
	}
}

type recommenderServices struct {
	catalogService        *rsvc.CatalogService
	accountService        *rsvc.AccountService
	candidateService      *rsvc.CandidateService
	ratingService         *rsvc.RatingService
	recommendationService *rsvc.RecommendationService
}

func newRecommenderServices(
	cfg *rconfig.Config,
	stores *recommenderStores,
	matrix *engine.Matrix,
	lock *processinglock.Service,
	logger *slog.Logger,
) *recommenderServices {
	holder := catalog.NewHolder()
	catalogService := rsvc.NewCatalogService(cfg.Catalog, holder, stores.catalogCache, logger)

	return &recommenderServices{
		catalogService:   catalogService,
		accountService:   rsvc.NewAccountService(stores.accounts, logger),
		candidateService: rsvc.NewCandidateService(catalogService, stores.candidates, stores.flags, logger),
		ratingService:    rsvc.NewRatingService(catalogService, stores.ratings, stores.flags, logger),
		recommendationService: rsvc.NewRecommendationService(
			cfg.Engine,
			matrix,
			stores.ratings,
			stores.recs,
			stores.flags,
			lock,
			logger,
		),
	}
}

func newRecommenderValkey(
	ctx context.Context,
	cfg *rconfig.Config,
	logger *slog.Logger,
) (valkey.Client, func(), error) {
	client, closeFn, err := bootstrap.NewAndPingValkeyClient(ctx, cfg.Redis, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init valkey failed: %w", err)
	}
	return client, closeFn, nil
}

func newRecommenderMessageProvider() (*messageprovider.Provider, error) {
	provider, err := messageprovider.NewFromYAML(rassets.ServiceMessagesYAML)
	if err != nil {
		return nil, fmt.Errorf("load messages failed: %w", err)
	}
	return provider, nil
}

func newRecommenderLock(client valkey.Client, logger *slog.Logger) *processinglock.Service {
	return processinglock.New(
		client,
		logger,
		rredis.ComputeLockKey,
		time.Duration(rconfig.RedisComputeLockTTLSeconds)*time.Second,
	)
}

func newRecommenderDB(
	ctx context.Context,
	cfg *rconfig.Config,
	logger *slog.Logger,
) (*gorm.DB, func(), error) {
	db, sqlDB, err := dbutil.OpenWithRetry(
		ctx,
		func(openCtx context.Context) (*gorm.DB, *sql.DB, error) {
			return openPostgres(openCtx, cfg.Postgres)
		},
		dbutil.DefaultRetryConfig(),
		logger,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres failed: %w", err)
	}

	closeFn := func() {
		if closeErr := sqlDB.Close(); closeErr != nil {
			logger.Warn("postgres_close_failed", "err", closeErr)
		}
	}
	return db, closeFn, nil
}

func newRecommenderRepository(ctx context.Context, db *gorm.DB) (*rrepo.Repository, error) {
	repo := rrepo.New(db)
	if err := repo.AutoMigrate(ctx); err != nil {
		return nil, fmt.Errorf("auto migrate failed: %w", err)
	}
	return repo, nil
}

// newRecommenderMatrix 는 과거 평점을 시드(최초 1회)하고 메모리 행렬로 적재한다.
func newRecommenderMatrix(
	ctx context.Context,
	cfg *rconfig.Config,
	repo *rrepo.Repository,
	logger *slog.Logger,
) (*engine.Matrix, error) {
	seedPath := filepath.Join(cfg.Catalog.DataDir, rrepo.RatingsFileName)
	seeded, err := repo.SeedFromCSV(ctx, seedPath)
	if err != nil {
		return nil, fmt.Errorf("seed historical ratings failed: %w", err)
	}
	if seeded > 0 {
		logger.Info("historical_ratings_seeded", "path", seedPath, "rows", seeded)
	}

	matrix, err := repo.LoadMatrix(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rating matrix failed: %w", err)
	}
	logger.Info("rating_matrix_loaded", "users", matrix.Len())
	return matrix, nil
}

func newRecommenderHTTPMux(
	services *recommenderServices,
	msgProvider *messageprovider.Provider,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	rhttpapi.Register(
		mux,
		services.catalogService,
		services.accountService,
		services.candidateService,
		services.ratingService,
		services.recommendationService,
		msgProvider,
		logger,
	)
	return mux
}

func newRecommenderHTTPServer(cfg *rconfig.Config, mux *http.ServeMux) *http.Server {
	var handler http.Handler = mux
	if cfg.Telemetry.Enabled {
		handler = otelhttp.NewHandler(mux, "recommender")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	return httpserver.NewServer(addr, handler, httpserver.ServerOptions{
		UseH2C:            true,
		ReadHeaderTimeout: cfg.ServerTuning.ReadHeaderTimeout,
		IdleTimeout:       cfg.ServerTuning.IdleTimeout,
		MaxHeaderBytes:    cfg.ServerTuning.MaxHeaderBytes,
	})
}

func newRecommenderServerApp(logger *slog.Logger, server *http.Server) *bootstrap.ServerApp {
	return bootstrap.NewServerApp(
		"recommender",
		logger,
		server,
		10*time.Second,
	)
}

func openPostgres(ctx context.Context, cfg rconfig.PostgresConfig) (*gorm.DB, *sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("gorm open failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("get sql db failed: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, nil, fmt.Errorf("db ping failed: %w", err)
	}

	return db, sqlDB, nil
}
