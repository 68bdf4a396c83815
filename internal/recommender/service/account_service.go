package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	cerrors "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/errors"
	rredis "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/redis"
)

// ErrInvalidCredentials: 로그인 자격 증명이 일치하지 않을 때 반환된다.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmptyCredentials: 사용자 이름 또는 패스워드가 비어있을 때 반환된다.
var ErrEmptyCredentials = errors.New("username and password are required")

// AccountService 는 가입/로그인을 처리한다. 세션/토큰은 다루지 않는다.
type AccountService struct {
	accounts *rredis.AccountStore
	logger   *slog.Logger
}

// NewAccountService 는 AccountService 인스턴스를 생성한다.
func NewAccountService(accounts *rredis.AccountStore, logger *slog.Logger) *AccountService {
	return &AccountService{
		accounts: accounts,
		logger:   logger,
	}
}

// Signup 는 계정을 생성하고 발급된 사용자 ID를 반환한다.
// 중복 이름이면 rredis.ErrUsernameTaken 을 그대로 전파한다.
func (s *AccountService) Signup(ctx context.Context, username string, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrEmptyCredentials
	}

	userID, err := s.accounts.Create(ctx, username, HashPassword(password))
	if err != nil {
		return "", fmt.Errorf("create account failed: %w", err)
	}
	return userID, nil
}

// Login 는 자격 증명을 검증하고 사용자 ID를 반환한다.
// 계정이 없거나 다이제스트가 다르면 ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, username string, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrEmptyCredentials
	}

	account, err := s.accounts.Get(ctx, username)
	if err != nil {
		if cerrors.IsNotFound(err) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("load account failed: %w", err)
	}
	if account.PasswordDigest != HashPassword(password) {
		s.logger.Debug("login_digest_mismatch", "username", username)
		return "", ErrInvalidCredentials
	}
	return account.UserID, nil
}

// HashPassword 는 패스워드의 SHA-256 hex 다이제스트를 만든다.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
