package redis

import (
	"context"
	"log/slog"
	"os"
	"testing"

	cerrors "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/errors"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/testhelper"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/engine"
)

func newTestRecommendationStore(t *testing.T) *RecommendationStore {
	t.Helper()
	client := testhelper.NewTestValkeyClient(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewRecommendationStore(client, logger)
}

func TestRecommendationStore_SetAndGet(t *testing.T) {
	store := newTestRecommendationStore(t)
	ctx := context.Background()

	recs := []engine.Recommendation{
		{GameID: "g1", Score: 4.5},
		{GameID: "g2", Score: 3.0},
	}
	if err := store.Set(ctx, "user1", recs); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := store.Get(ctx, "user1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(got))
	}
	// 저장 순서 보존
	if got[0].GameID != "g1" || got[0].Score != 4.5 {
		t.Errorf("unexpected first entry: %+v", got[0])
	}
}

func TestRecommendationStore_MissingIsNotFoundNotEmpty(t *testing.T) {
	store := newTestRecommendationStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "nobody")
	if err == nil {
		t.Fatal("expected NotFoundError for absent recommendations")
	}
	if !cerrors.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %T", err)
	}

	// 빈 목록 저장은 absent와 구분된다
	if err := store.Set(ctx, "user1", []engine.Recommendation{}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := store.Get(ctx, "user1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected stored empty list, got %v", got)
	}
}

func TestRecommendationStore_ReplacesPreviousList(t *testing.T) {
	store := newTestRecommendationStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "user1", []engine.Recommendation{{GameID: "g1", Score: 5.0}}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(ctx, "user1", []engine.Recommendation{{GameID: "g9", Score: 1.0}}); err != nil {
		t.Fatalf("Set2 failed: %v", err)
	}

	got, err := store.Get(ctx, "user1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 1 || got[0].GameID != "g9" {
		t.Errorf("expected full replacement, got %v", got)
	}
}
