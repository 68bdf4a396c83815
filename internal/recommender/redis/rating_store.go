package redis

import (
	"context"
	"log/slog"

	json "github.com/goccy/go-json"
	"github.com/valkey-io/valkey-go"

	cerrors "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/errors"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/valkeyx"
)

// RatingStore 는 활성 사용자의 게임별 평점을 보관한다.
// 한 사용자의 평점 집합은 통째로 저장/교체된다. (사용자 키 단위 원자성)
type RatingStore struct {
	client valkey.Client
	logger *slog.Logger
}

// NewRatingStore 는 RatingStore 인스턴스를 생성한다.
func NewRatingStore(client valkey.Client, logger *slog.Logger) *RatingStore {
	return &RatingStore{
		client: client,
		logger: logger,
	}
}

// Get 는 사용자의 평점 집합을 조회한다. 없으면 NotFoundError.
func (s *RatingStore) Get(ctx context.Context, userID string) (map[string]float64, error) {
	raw, ok, err := valkeyx.GetBytes(ctx, s.client, ratingsKey(userID))
	if err != nil {
		return nil, cerrors.RedisError{Operation: "ratings_get", Err: err}
	}
	if !ok {
		return nil, cerrors.NotFoundError{Kind: "ratings", Key: userID}
	}

	var out map[string]float64
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, cerrors.RedisError{Operation: "ratings_unmarshal", Err: err}
	}
	return out, nil
}

// Set 는 사용자의 평점 집합을 통째로 교체한다. (last write wins)
func (s *RatingStore) Set(ctx context.Context, userID string, ratings map[string]float64) error {
	payload, err := json.Marshal(ratings)
	if err != nil {
		return cerrors.RedisError{Operation: "ratings_marshal", Err: err}
	}
	if err := valkeyx.SetString(ctx, s.client, ratingsKey(userID), string(payload)); err != nil {
		return cerrors.RedisError{Operation: "ratings_set", Err: err}
	}
	s.logger.Debug("ratings_saved", "user_id", userID, "count", len(ratings))
	return nil
}
