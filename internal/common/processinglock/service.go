// Package processinglock 는 사용자 단위 계산 중복 실행을 막는 Redis 기반 락을 제공한다.
package processinglock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	cerrors "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/errors"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/valkeyx"
)

// KeyFunc: 사용자 ID로 락 키를 생성하는 함수 타입
type KeyFunc func(userID string) string

// ErrAlreadyProcessing: 해당 사용자의 계산이 이미 진행 중일 때 반환되는 에러
var ErrAlreadyProcessing = errors.New("already processing")

// Service: Redis SET NX를 사용하여 사용자별 동시 계산을 제어하는 락 서비스
type Service struct {
	client  valkey.Client
	logger  *slog.Logger
	keyFunc KeyFunc
	ttl     time.Duration
}

// New: 새로운 Service 인스턴스를 생성합니다.
func New(client valkey.Client, logger *slog.Logger, keyFunc KeyFunc, ttl time.Duration) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:  client,
		logger:  logger,
		keyFunc: keyFunc,
		ttl:     ttl,
	}
}

// Start: 처리 락을 획득합니다. (SET NX)
// 이미 락이 존재하면 ErrAlreadyProcessing 을 반환합니다.
func (s *Service) Start(ctx context.Context, userID string) error {
	key := s.keyFunc(userID)
	cmd := s.client.B().Set().Key(key).Value("1").Nx().Ex(s.ttl).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		if valkeyx.IsNil(err) {
			return ErrAlreadyProcessing
		}
		return fmt.Errorf("set processing lock failed: %w", err)
	}
	s.logger.Debug("processing_started", "user_id", userID)
	return nil
}

// Finish: 처리 락을 해제합니다.
func (s *Service) Finish(ctx context.Context, userID string) error {
	key := s.keyFunc(userID)
	cmd := s.client.B().Del().Key(key).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("delete processing lock failed: %w", err)
	}
	s.logger.Debug("processing_finished", "user_id", userID)
	return nil
}

// IsProcessing: 현재 처리가 진행 중인지(락이 존재하는지) 확인합니다.
func (s *Service) IsProcessing(ctx context.Context, userID string) (bool, error) {
	key := s.keyFunc(userID)
	exists, err := valkeyx.Exists(ctx, s.client, key)
	if err != nil {
		return false, fmt.Errorf("check processing lock exists failed: %w", err)
	}
	return exists, nil
}

// WrapStartProcessingError: Start 에러를 공통 에러 타입으로 변환한다.
func WrapStartProcessingError(userID string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrAlreadyProcessing) {
		return cerrors.LockError{UserID: userID, Description: "already processing"}
	}
	return cerrors.RedisError{Operation: "processing_start", Err: err}
}
