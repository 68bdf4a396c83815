package redis

import (
	"context"
	"log/slog"

	json "github.com/goccy/go-json"
	"github.com/valkey-io/valkey-go"

	cerrors "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/errors"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/valkeyx"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/engine"
)

// RecommendationStore 는 계산된 추천 목록을 보관한다.
// 목록이 없는 사용자 조회는 빈 목록이 아닌 명시적 NotFoundError다.
type RecommendationStore struct {
	client valkey.Client
	logger *slog.Logger
}

// NewRecommendationStore 는 RecommendationStore 인스턴스를 생성한다.
func NewRecommendationStore(client valkey.Client, logger *slog.Logger) *RecommendationStore {
	return &RecommendationStore{
		client: client,
		logger: logger,
	}
}

// Get 는 사용자의 추천 목록을 조회한다. 없으면 NotFoundError.
func (s *RecommendationStore) Get(ctx context.Context, userID string) ([]engine.Recommendation, error) {
	raw, ok, err := valkeyx.GetBytes(ctx, s.client, recommendationsKey(userID))
	if err != nil {
		return nil, cerrors.RedisError{Operation: "recommendations_get", Err: err}
	}
	if !ok {
		return nil, cerrors.NotFoundError{Kind: "recommendations", Key: userID}
	}

	var out []engine.Recommendation
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, cerrors.RedisError{Operation: "recommendations_unmarshal", Err: err}
	}
	return out, nil
}

// Set 는 사용자의 추천 목록을 통째로 교체한다. (병합 없음)
func (s *RecommendationStore) Set(ctx context.Context, userID string, recs []engine.Recommendation) error {
	payload, err := json.Marshal(recs)
	if err != nil {
		return cerrors.RedisError{Operation: "recommendations_marshal", Err: err}
	}
	if err := valkeyx.SetString(ctx, s.client, recommendationsKey(userID), string(payload)); err != nil {
		return cerrors.RedisError{Operation: "recommendations_set", Err: err}
	}
	s.logger.Debug("recommendations_saved", "user_id", userID, "count", len(recs))
	return nil
}
