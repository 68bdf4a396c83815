package redis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/valkey-io/valkey-go"

	cerrors "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/errors"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/valkeyx"
)

// Flag: 사용자별 재계산 필요 여부. 느슨한 blob 대신 명시적 enum으로 저장한다.
type Flag string

// Flag 값 목록
const (
	FlagClean Flag = "clean"
	FlagDirty Flag = "dirty"
)

// FlagKind: 플래그가 가리키는 계산의 종류.
type FlagKind string

// FlagKind 값 목록
const (
	KindCandidates      FlagKind = "candidates"
	KindRecommendations FlagKind = "recommendations"
)

// FlagStore 는 (user, kind)별 더티 플래그를 관리한다.
// 키가 없으면 Clean으로 간주한다. (아직 아무 입력도 없는 사용자)
type FlagStore struct {
	client valkey.Client
	logger *slog.Logger
}

// NewFlagStore 는 FlagStore 인스턴스를 생성한다.
func NewFlagStore(client valkey.Client, logger *slog.Logger) *FlagStore {
	return &FlagStore{
		client: client,
		logger: logger,
	}
}

// Get 는 플래그 상태를 조회한다.
func (s *FlagStore) Get(ctx context.Context, userID string, kind FlagKind) (Flag, error) {
	value, ok, err := valkeyx.GetString(ctx, s.client, flagKey(kind, userID))
	if err != nil {
		return FlagClean, cerrors.RedisError{Operation: "flag_get", Err: err}
	}
	if !ok {
		return FlagClean, nil
	}

	switch Flag(value) {
	case FlagClean, FlagDirty:
		return Flag(value), nil
	default:
		return FlagClean, cerrors.RedisError{
			Operation: "flag_get",
			Err:       fmt.Errorf("unexpected flag value %q", value),
		}
	}
}

// MarkDirty 는 플래그를 Dirty로 설정한다. (입력 변경 시)
func (s *FlagStore) MarkDirty(ctx context.Context, userID string, kind FlagKind) error {
	if err := valkeyx.SetString(ctx, s.client, flagKey(kind, userID), string(FlagDirty)); err != nil {
		return cerrors.RedisError{Operation: "flag_mark_dirty", Err: err}
	}
	s.logger.Debug("flag_marked_dirty", "user_id", userID, "kind", string(kind))
	return nil
}

// Clear 는 플래그를 Clean으로 설정한다. (계산 완료 시)
func (s *FlagStore) Clear(ctx context.Context, userID string, kind FlagKind) error {
	if err := valkeyx.SetString(ctx, s.client, flagKey(kind, userID), string(FlagClean)); err != nil {
		return cerrors.RedisError{Operation: "flag_clear", Err: err}
	}
	s.logger.Debug("flag_cleared", "user_id", userID, "kind", string(kind))
	return nil
}
