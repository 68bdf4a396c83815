package redis

import (
	"context"
	"log/slog"

	json "github.com/goccy/go-json"
	"github.com/valkey-io/valkey-go"

	cerrors "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/errors"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/valkeyx"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/catalog"
)

// CandidateStore 는 장르 필터가 고른 "평가할 게임" 목록과
// 그 목록을 만들 때 쓰인 장르 선호를 보관한다.
type CandidateStore struct {
	client valkey.Client
	logger *slog.Logger
}

// NewCandidateStore 는 CandidateStore 인스턴스를 생성한다.
func NewCandidateStore(client valkey.Client, logger *slog.Logger) *CandidateStore {
	return &CandidateStore{
		client: client,
		logger: logger,
	}
}

// Get 는 사용자의 후보 게임 목록을 조회한다. 없으면 NotFoundError.
func (s *CandidateStore) Get(ctx context.Context, userID string) ([]catalog.Candidate, error) {
	raw, ok, err := valkeyx.GetBytes(ctx, s.client, candidatesKey(userID))
	if err != nil {
		return nil, cerrors.RedisError{Operation: "candidates_get", Err: err}
	}
	if !ok {
		return nil, cerrors.NotFoundError{Kind: "candidates", Key: userID}
	}

	var out []catalog.Candidate
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, cerrors.RedisError{Operation: "candidates_unmarshal", Err: err}
	}
	return out, nil
}

// Set 는 사용자의 후보 게임 목록을 통째로 교체한다.
func (s *CandidateStore) Set(ctx context.Context, userID string, candidates []catalog.Candidate) error {
	payload, err := json.Marshal(candidates)
	if err != nil {
		return cerrors.RedisError{Operation: "candidates_marshal", Err: err}
	}
	if err := valkeyx.SetString(ctx, s.client, candidatesKey(userID), string(payload)); err != nil {
		return cerrors.RedisError{Operation: "candidates_set", Err: err}
	}
	s.logger.Debug("candidates_saved", "user_id", userID, "count", len(candidates))
	return nil
}

// GetPreferences 는 마지막으로 제출된 장르 선호를 조회한다. 없으면 nil.
func (s *CandidateStore) GetPreferences(ctx context.Context, userID string) ([]string, error) {
	raw, ok, err := valkeyx.GetBytes(ctx, s.client, preferencesKey(userID))
	if err != nil {
		return nil, cerrors.RedisError{Operation: "preferences_get", Err: err}
	}
	if !ok {
		return nil, nil
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, cerrors.RedisError{Operation: "preferences_unmarshal", Err: err}
	}
	return out, nil
}

// SetPreferences 는 장르 선호를 저장한다.
func (s *CandidateStore) SetPreferences(ctx context.Context, userID string, preferences []string) error {
	payload, err := json.Marshal(preferences)
	if err != nil {
		return cerrors.RedisError{Operation: "preferences_marshal", Err: err}
	}
	if err := valkeyx.SetString(ctx, s.client, preferencesKey(userID), string(payload)); err != nil {
		return cerrors.RedisError{Operation: "preferences_set", Err: err}
	}
	return nil
}
