package redis

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/valkey-io/valkey-go"

	cerrors "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/errors"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/valkeyx"
	rconfig "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/config"
)

// ErrUsernameTaken: 이미 존재하는 사용자 이름으로 가입을 시도했을 때 반환된다.
var ErrUsernameTaken = errors.New("username already taken")

// Account: 저장된 계정 레코드.
type Account struct {
	Username       string
	UserID         string
	PasswordDigest string // SHA-256 hex digest
}

// 계정 해시 필드 이름
const (
	accountFieldPassword = "password"
	accountFieldUserID   = "user_id"
)

// AccountStore 는 계정 해시와 사용자 ID 시퀀스를 관리한다.
type AccountStore struct {
	client valkey.Client
	logger *slog.Logger
}

// NewAccountStore 는 AccountStore 인스턴스를 생성한다.
func NewAccountStore(client valkey.Client, logger *slog.Logger) *AccountStore {
	return &AccountStore{
		client: client,
		logger: logger,
	}
}

// Create 는 새 계정을 생성하고 발급된 사용자 ID를 반환한다.
// 사용자 ID는 INCR 시퀀스로 발급된다. 이미 존재하는 이름이면 ErrUsernameTaken.
func (s *AccountStore) Create(ctx context.Context, username string, passwordDigest string) (string, error) {
	key := accountKey(username)

	exists, err := valkeyx.Exists(ctx, s.client, key)
	if err != nil {
		return "", cerrors.RedisError{Operation: "account_exists", Err: err}
	}
	if exists {
		return "", ErrUsernameTaken
	}

	seq, err := valkeyx.Incr(ctx, s.client, rconfig.RedisKeyLatestUserID)
	if err != nil {
		return "", cerrors.RedisError{Operation: "account_incr_user_id", Err: err}
	}
	userID := strconv.FormatInt(seq, 10)

	cmd := s.client.B().Hset().Key(key).FieldValue().
		FieldValue(accountFieldPassword, passwordDigest).
		FieldValue(accountFieldUserID, userID).
		Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return "", cerrors.RedisError{Operation: "account_create", Err: err}
	}

	s.logger.Info("account_created", "username", username, "user_id", userID)
	return userID, nil
}

// Get 는 사용자 이름으로 계정을 조회한다. 없으면 NotFoundError.
func (s *AccountStore) Get(ctx context.Context, username string) (Account, error) {
	cmd := s.client.B().Hgetall().Key(accountKey(username)).Build()
	fields, err := s.client.Do(ctx, cmd).AsStrMap()
	if err != nil {
		return Account{}, cerrors.RedisError{Operation: "account_get", Err: err}
	}
	if len(fields) == 0 {
		return Account{}, cerrors.NotFoundError{Kind: "account", Key: username}
	}

	return Account{
		Username:       username,
		UserID:         fields[accountFieldUserID],
		PasswordDigest: fields[accountFieldPassword],
	}, nil
}
