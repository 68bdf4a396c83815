package service

import (
	"context"
	"log/slog"

	cerrors "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/errors"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/processinglock"
	rconfig "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/config"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/engine"
	rredis "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/redis"
)

// RecommendationService 는 추천 계산 파이프라인을 오케스트레이션한다.
// 더티 플래그가 Clean이면 단락하고, 사용자별 락으로 동시 계산을 직렬화한다.
type RecommendationService struct {
	engineCfg rconfig.EngineConfig
	matrix    *engine.Matrix
	ratings   *rredis.RatingStore
	recs      *rredis.RecommendationStore
	flags     *rredis.FlagStore
	lock      *processinglock.Service
	logger    *slog.Logger
}

// NewRecommendationService 는 RecommendationService 인스턴스를 생성한다.
func NewRecommendationService(
	engineCfg rconfig.EngineConfig,
	matrix *engine.Matrix,
	ratings *rredis.RatingStore,
	recs *rredis.RecommendationStore,
	flags *rredis.FlagStore,
	lock *processinglock.Service,
	logger *slog.Logger,
) *RecommendationService {
	return &RecommendationService{
		engineCfg: engineCfg,
		matrix:    matrix,
		ratings:   ratings,
		recs:      recs,
		flags:     flags,
		lock:      lock,
		logger:    logger,
	}
}

// Compute 는 사용자의 추천 목록을 계산하여 저장한다.
//   - 플래그가 Clean이면 StatusNotNeeded로 단락한다. (평점 변경 없음)
//   - 같은 사용자의 동시 계산은 LockError로 거절된다. 다른 사용자는 병렬 진행.
//   - 평점이 없는 사용자는 NotFoundError.
//   - 결과 저장은 계산이 모두 성공한 뒤에만 일어난다. 중간 실패는
//     ComputationError로 보고되며 이전 결과를 훼손하지 않는다.
func (s *RecommendationService) Compute(ctx context.Context, userID string) (ComputeStatus, error) {
	flag, err := s.flags.Get(ctx, userID, rredis.KindRecommendations)
	if err != nil {
		return "", cerrors.ComputationError{Stage: "flag_check", Err: err}
	}
	if flag == rredis.FlagClean {
		s.logger.Info("recommendations_unchanged", "user_id", userID)
		return StatusNotNeeded, nil
	}

	if err := s.lock.Start(ctx, userID); err != nil {
		return "", processinglock.WrapStartProcessingError(userID, err)
	}
	defer func() {
		if finishErr := s.lock.Finish(ctx, userID); finishErr != nil {
			s.logger.Warn("compute_lock_release_failed", "user_id", userID, "err", finishErr)
		}
	}()

	userRatings, err := s.ratings.Get(ctx, userID)
	if err != nil {
		if cerrors.IsNotFound(err) {
			return "", err
		}
		return "", cerrors.ComputationError{Stage: "load_ratings", Err: err}
	}

	similar := engine.SimilarUsers(userRatings, s.matrix, engine.Options{
		TopCandidates: s.engineCfg.TopCandidates,
		TopSimilar:    s.engineCfg.TopSimilar,
	})
	recommendations := engine.Aggregate(similar, s.matrix)

	if err := s.recs.Set(ctx, userID, recommendations); err != nil {
		return "", cerrors.ComputationError{Stage: "store_result", Err: err}
	}
	if err := s.flags.Clear(ctx, userID, rredis.KindRecommendations); err != nil {
		return "", cerrors.ComputationError{Stage: "clear_flag", Err: err}
	}

	s.logger.Info("recommendations_computed",
		"user_id", userID,
		"similar_users", len(similar),
		"recommendations", len(recommendations),
	)
	return StatusComputed, nil
}

// Get 는 저장된 추천 목록을 반환한다. 없으면 NotFoundError. (빈 목록과 구분)
func (s *RecommendationService) Get(ctx context.Context, userID string) ([]engine.Recommendation, error) {
	return s.recs.Get(ctx, userID)
}
