package service

import (
	"context"
	"errors"
	"testing"

	cerrors "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/errors"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/engine"
	rredis "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/redis"
)

func newCorrelatedMatrix() *engine.Matrix {
	matrix := engine.NewMatrix()
	// u1: 활성 사용자와 완전 상관, u2: 역상관
	matrix.Add("u1", "g1", 1.0)
	matrix.Add("u1", "g2", 2.0)
	matrix.Add("u1", "g3", 5.0)
	matrix.Add("u2", "g1", 5.0)
	matrix.Add("u2", "g2", 4.0)
	matrix.Add("u2", "g4", 1.0)
	return matrix
}

func TestRecommendationService_ComputeStoresAndClearsFlag(t *testing.T) {
	env := newTestEnv(t)
	svc := newTestRecommendationService(t, env, newCorrelatedMatrix())
	ctx := context.Background()

	if err := env.ratings.Set(ctx, "user1", map[string]float64{"g1": 1.0, "g2": 2.0}); err != nil {
		t.Fatalf("ratings Set failed: %v", err)
	}
	if err := env.flags.MarkDirty(ctx, "user1", rredis.KindRecommendations); err != nil {
		t.Fatalf("MarkDirty failed: %v", err)
	}

	status, err := svc.Compute(ctx, "user1")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if status != StatusComputed {
		t.Errorf("expected computed, got %s", status)
	}

	recs, err := svc.Get(ctx, "user1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("expected stored recommendations")
	}
	// 점수 내림차순 정렬
	for i := 1; i < len(recs); i++ {
		if recs[i-1].Score < recs[i].Score {
			t.Errorf("result not sorted: %v", recs)
		}
	}

	flag, err := env.flags.Get(ctx, "user1", rredis.KindRecommendations)
	if err != nil {
		t.Fatalf("flag Get failed: %v", err)
	}
	if flag != rredis.FlagClean {
		t.Errorf("expected flag cleared after compute, got %s", flag)
	}
}

func TestRecommendationService_CleanFlagShortCircuits(t *testing.T) {
	env := newTestEnv(t)
	svc := newTestRecommendationService(t, env, newCorrelatedMatrix())
	ctx := context.Background()

	status, err := svc.Compute(ctx, "user1")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if status != StatusNotNeeded {
		t.Errorf("expected not_needed for clean flag, got %s", status)
	}

	// 계산이 일어나지 않았으므로 결과도 없음
	_, err = svc.Get(ctx, "user1")
	if !cerrors.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestRecommendationService_Idempotence(t *testing.T) {
	env := newTestEnv(t)
	svc := newTestRecommendationService(t, env, newCorrelatedMatrix())
	ctx := context.Background()

	if err := env.ratings.Set(ctx, "user1", map[string]float64{"g1": 1.0, "g2": 2.0}); err != nil {
		t.Fatalf("ratings Set failed: %v", err)
	}
	if err := env.flags.MarkDirty(ctx, "user1", rredis.KindRecommendations); err != nil {
		t.Fatalf("MarkDirty failed: %v", err)
	}

	if _, err := svc.Compute(ctx, "user1"); err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	first, err := svc.Get(ctx, "user1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	// 평점과 플래그가 그대로면 재호출해도 저장 결과가 변하지 않음
	status, err := svc.Compute(ctx, "user1")
	if err != nil {
		t.Fatalf("Compute2 failed: %v", err)
	}
	if status != StatusNotNeeded {
		t.Errorf("expected not_needed, got %s", status)
	}

	second, err := svc.Get(ctx, "user1")
	if err != nil {
		t.Fatalf("Get2 failed: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("result changed: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("entry %d changed: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestRecommendationService_NoRatingsIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	svc := newTestRecommendationService(t, env, newCorrelatedMatrix())
	ctx := context.Background()

	if err := env.flags.MarkDirty(ctx, "user1", rredis.KindRecommendations); err != nil {
		t.Fatalf("MarkDirty failed: %v", err)
	}

	_, err := svc.Compute(ctx, "user1")
	if !cerrors.IsNotFound(err) {
		t.Errorf("expected NotFoundError for user without ratings, got %v", err)
	}

	// 실패해도 락은 해제되어 다음 시도가 가능
	if err := env.ratings.Set(ctx, "user1", map[string]float64{"g1": 1.0, "g2": 2.0}); err != nil {
		t.Fatalf("ratings Set failed: %v", err)
	}
	if _, err := svc.Compute(ctx, "user1"); err != nil {
		t.Errorf("expected retry to succeed after lock release, got %v", err)
	}
}

func TestRecommendationService_BusyUserIsRejected(t *testing.T) {
	env := newTestEnv(t)
	lock := newTestLock(t, env)
	svc := newTestRecommendationService(t, env, newCorrelatedMatrix())
	ctx := context.Background()

	if err := env.ratings.Set(ctx, "user1", map[string]float64{"g1": 1.0, "g2": 2.0}); err != nil {
		t.Fatalf("ratings Set failed: %v", err)
	}
	if err := env.flags.MarkDirty(ctx, "user1", rredis.KindRecommendations); err != nil {
		t.Fatalf("MarkDirty failed: %v", err)
	}

	// 다른 요청이 같은 사용자의 락을 선점
	if err := lock.Start(ctx, "user1"); err != nil {
		t.Fatalf("lock Start failed: %v", err)
	}

	_, err := svc.Compute(ctx, "user1")
	var lockErr cerrors.LockError
	if !errors.As(err, &lockErr) {
		t.Errorf("expected LockError for busy user, got %v", err)
	}
}
