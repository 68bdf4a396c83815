package redis

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/testhelper"
)

func newTestFlagStore(t *testing.T) *FlagStore {
	t.Helper()
	client := testhelper.NewTestValkeyClient(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewFlagStore(client, logger)
}

func TestFlagStore_DefaultIsClean(t *testing.T) {
	store := newTestFlagStore(t)

	flag, err := store.Get(context.Background(), "user1", KindRecommendations)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if flag != FlagClean {
		t.Errorf("expected Clean for unset flag, got %s", flag)
	}
}

func TestFlagStore_MarkDirtyAndClear(t *testing.T) {
	store := newTestFlagStore(t)
	ctx := context.Background()

	if err := store.MarkDirty(ctx, "user1", KindRecommendations); err != nil {
		t.Fatalf("MarkDirty failed: %v", err)
	}

	flag, err := store.Get(ctx, "user1", KindRecommendations)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if flag != FlagDirty {
		t.Errorf("expected Dirty, got %s", flag)
	}

	if err := store.Clear(ctx, "user1", KindRecommendations); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	flag, err = store.Get(ctx, "user1", KindRecommendations)
	if err != nil {
		t.Fatalf("Get2 failed: %v", err)
	}
	if flag != FlagClean {
		t.Errorf("expected Clean after clear, got %s", flag)
	}
}

func TestFlagStore_KindsAreIndependent(t *testing.T) {
	store := newTestFlagStore(t)
	ctx := context.Background()

	if err := store.MarkDirty(ctx, "user1", KindCandidates); err != nil {
		t.Fatalf("MarkDirty failed: %v", err)
	}

	flag, err := store.Get(ctx, "user1", KindRecommendations)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if flag != FlagClean {
		t.Errorf("recommendations flag should stay Clean, got %s", flag)
	}
}
