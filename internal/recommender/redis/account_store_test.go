package redis

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	cerrors "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/errors"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/testhelper"
)

func newTestAccountStore(t *testing.T) *AccountStore {
	t.Helper()
	client := testhelper.NewTestValkeyClient(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewAccountStore(client, logger)
}

func TestAccountStore_CreateAndGet(t *testing.T) {
	store := newTestAccountStore(t)
	ctx := context.Background()

	userID, err := store.Create(ctx, "alice", "digest-a")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if userID != "1" {
		t.Errorf("expected first user id 1, got %s", userID)
	}

	// 사용자 ID는 INCR 시퀀스로 증가
	userID2, err := store.Create(ctx, "bob", "digest-b")
	if err != nil {
		t.Fatalf("Create2 failed: %v", err)
	}
	if userID2 != "2" {
		t.Errorf("expected second user id 2, got %s", userID2)
	}

	account, err := store.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if account.UserID != "1" || account.PasswordDigest != "digest-a" {
		t.Errorf("unexpected account: %+v", account)
	}
}

func TestAccountStore_DuplicateUsername(t *testing.T) {
	store := newTestAccountStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, "alice", "digest-a"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err := store.Create(ctx, "alice", "digest-b")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAccountStore_GetMissingIsNotFound(t *testing.T) {
	store := newTestAccountStore(t)

	_, err := store.Get(context.Background(), "nobody")
	if err == nil {
		t.Fatal("expected error for missing account")
	}
	if !cerrors.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %T", err)
	}
}
