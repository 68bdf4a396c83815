package service

import (
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/processinglock"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/testhelper"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/catalog"
	rconfig "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/config"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/engine"
	rredis "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/redis"
)

// testEnv: 서비스 테스트용 공통 픽스처 (miniredis + 스냅샷 + 행렬)
type testEnv struct {
	client     valkey.Client
	logger     *slog.Logger
	holder     *catalog.Holder
	catalogSvc *CatalogService
	flags      *rredis.FlagStore
	ratings    *rredis.RatingStore
	candidates *rredis.CandidateStore
	recs       *rredis.RecommendationStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	client := testhelper.NewTestValkeyClient(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	holder := catalog.NewHolder()
	holder.Swap(newTestCatalogSnapshot(t))

	cache := rredis.NewCatalogCache(client, logger)
	catalogSvc := NewCatalogService(rconfig.CatalogConfig{DataDir: "unused"}, holder, cache, logger)

	return &testEnv{
		client:     client,
		logger:     logger,
		holder:     holder,
		catalogSvc: catalogSvc,
		flags:      rredis.NewFlagStore(client, logger),
		ratings:    rredis.NewRatingStore(client, logger),
		candidates: rredis.NewCandidateStore(client, logger),
		recs:       rredis.NewRecommendationStore(client, logger),
	}
}

// 최소 카탈로그: g1={RPG}, g2={RPG, Action}
func newTestCatalogSnapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()
	snap, err := catalog.Load(
		strings.NewReader("id,name,rating\ng1,Game One,4.0\ng2,Game Two,4.2\n"),
		strings.NewReader("id,name\ng1,RPG\ng2,RPG\ng2,Action\n"),
		strings.NewReader("id,image_background\ng1,img1\ng2,img2\n"),
	)
	if err != nil {
		t.Fatalf("snapshot load failed: %v", err)
	}
	return snap
}

func newTestLock(t *testing.T, env *testEnv) *processinglock.Service {
	t.Helper()
	return processinglock.New(env.client, env.logger, rredis.ComputeLockKey, 30*time.Second)
}

func newTestRecommendationService(t *testing.T, env *testEnv, matrix *engine.Matrix) *RecommendationService {
	t.Helper()
	return NewRecommendationService(
		rconfig.EngineConfig{TopCandidates: 100, TopSimilar: 50},
		matrix,
		env.ratings,
		env.recs,
		env.flags,
		newTestLock(t, env),
		env.logger,
	)
}
