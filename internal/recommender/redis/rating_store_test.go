package redis

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/valkey-io/valkey-go"

	cerrors "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/errors"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/testhelper"
)

func newTestRatingStore(t *testing.T) (*RatingStore, valkey.Client) {
	t.Helper()
	client := testhelper.NewTestValkeyClient(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewRatingStore(client, logger), client
}

func TestRatingStore_SetAndGet(t *testing.T) {
	store, _ := newTestRatingStore(t)
	ctx := context.Background()

	ratings := map[string]float64{"g1": 4.0, "g2": 2.5}
	if err := store.Set(ctx, "user1", ratings); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := store.Get(ctx, "user1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 2 || got["g1"] != 4.0 || got["g2"] != 2.5 {
		t.Errorf("unexpected ratings: %v", got)
	}
}

func TestRatingStore_GetMissingIsNotFound(t *testing.T) {
	store, _ := newTestRatingStore(t)

	_, err := store.Get(context.Background(), "nobody")
	if err == nil {
		t.Fatal("expected error for missing ratings")
	}
	if !cerrors.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %T", err)
	}
}

func TestRatingStore_LastWriteWins(t *testing.T) {
	store, _ := newTestRatingStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "user1", map[string]float64{"g1": 1.0, "g2": 2.0}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(ctx, "user1", map[string]float64{"g1": 5.0}); err != nil {
		t.Fatalf("Set2 failed: %v", err)
	}

	got, err := store.Get(ctx, "user1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	// 교체 저장: 이전 집합과 병합되지 않음
	if len(got) != 1 || got["g1"] != 5.0 {
		t.Errorf("expected full replacement, got %v", got)
	}
}
