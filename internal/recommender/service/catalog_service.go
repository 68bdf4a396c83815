// Package service 는 추천 파이프라인의 오케스트레이션 계층이다.
// 저장소/카탈로그/엔진을 묶고, 더티 플래그와 사용자 단위 락으로 계산을 제어한다.
package service

import (
	"context"
	"log/slog"

	cerrors "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/errors"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/catalog"
	rconfig "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/config"
	rredis "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/redis"
)

// CatalogService 는 카탈로그 스냅샷의 적재와 조회를 담당한다.
type CatalogService struct {
	cfg    rconfig.CatalogConfig
	holder *catalog.Holder
	cache  *rredis.CatalogCache
	logger *slog.Logger
}

// NewCatalogService 는 CatalogService 인스턴스를 생성한다.
func NewCatalogService(
	cfg rconfig.CatalogConfig,
	holder *catalog.Holder,
	cache *rredis.CatalogCache,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		cfg:    cfg,
		holder: holder,
		cache:  cache,
		logger: logger,
	}
}

// Load 는 데이터셋 디렉터리에서 스냅샷을 구축하여 원자적으로 교체하고
// Redis 캐시에도 기록한다. 무결성 오류는 그대로 전파된다. (기동 시 치명적)
func (s *CatalogService) Load(ctx context.Context) error {
	snapshot, err := catalog.LoadDir(s.cfg.DataDir)
	if err != nil {
		return err
	}

	s.holder.Swap(snapshot)

	if err := s.cache.Save(ctx, snapshot); err != nil {
		return err
	}

	s.logger.Info("catalog_loaded",
		"data_dir", s.cfg.DataDir,
		"games", snapshot.Len(),
		"latest_game_id", snapshot.LatestGameID(),
	)
	return nil
}

// Snapshot 는 현재 스냅샷을 반환한다. 아직 적재 전이면 NotFoundError.
func (s *CatalogService) Snapshot() (*catalog.Snapshot, error) {
	snapshot, ok := s.holder.Current()
	if !ok {
		return nil, cerrors.NotFoundError{Kind: "catalog"}
	}
	return snapshot, nil
}

// Genres 는 선호 선택에 노출되는 전체 장르 이름을 반환한다.
func (s *CatalogService) Genres() ([]string, error) {
	snapshot, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return snapshot.GenreNames(), nil
}
