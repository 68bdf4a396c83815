package engine

import (
	"math"
	"testing"
)

func TestAggregate_WeightedAverage(t *testing.T) {
	matrix := NewMatrix()
	matrix.Add("u1", "g1", 4.0)
	matrix.Add("u1", "g2", 2.0)
	matrix.Add("u2", "g1", 5.0)

	similar := []SimilarUser{
		{UserID: "u1", Similarity: 0.5},
		{UserID: "u2", Similarity: 1.0},
	}

	got := Aggregate(similar, matrix)
	if len(got) != 2 {
		t.Fatalf("expected 2 recommendations, got %v", got)
	}

	// g1: (0.5*4 + 1.0*5) / 1.5 = 14/3, g2: (0.5*2) / 0.5 = 2
	byGame := make(map[string]float64)
	for _, rec := range got {
		byGame[rec.GameID] = rec.Score
	}
	if math.Abs(byGame["g1"]-14.0/3.0) > 1e-9 {
		t.Errorf("g1 score: expected %v, got %v", 14.0/3.0, byGame["g1"])
	}
	if math.Abs(byGame["g2"]-2.0) > 1e-9 {
		t.Errorf("g2 score: expected 2.0, got %v", byGame["g2"])
	}
}

func TestAggregate_ExcludesZeroSimilaritySum(t *testing.T) {
	matrix := NewMatrix()
	matrix.Add("u1", "g1", 4.0)
	matrix.Add("u2", "g1", 2.0)

	// 유사도 합이 정확히 0 -> 0으로 나누기 가드
	similar := []SimilarUser{
		{UserID: "u1", Similarity: 0.5},
		{UserID: "u2", Similarity: -0.5},
	}

	got := Aggregate(similar, matrix)
	if len(got) != 0 {
		t.Errorf("expected g1 excluded when similarity sum is zero, got %v", got)
	}
}

func TestAggregate_ScaleInvariance(t *testing.T) {
	matrix := NewMatrix()
	matrix.Add("u1", "g1", 4.0)
	matrix.Add("u1", "g2", 1.0)
	matrix.Add("u2", "g1", 2.0)
	matrix.Add("u2", "g2", 5.0)

	base := []SimilarUser{
		{UserID: "u1", Similarity: 0.8},
		{UserID: "u2", Similarity: 0.2},
	}
	scaled := []SimilarUser{
		{UserID: "u1", Similarity: 0.8 * 3.0},
		{UserID: "u2", Similarity: 0.2 * 3.0},
	}

	gotBase := Aggregate(base, matrix)
	gotScaled := Aggregate(scaled, matrix)

	if len(gotBase) != len(gotScaled) {
		t.Fatalf("expected same length, got %d vs %d", len(gotBase), len(gotScaled))
	}
	for i := range gotBase {
		if gotBase[i].GameID != gotScaled[i].GameID {
			t.Errorf("position %d: game mismatch %s vs %s", i, gotBase[i].GameID, gotScaled[i].GameID)
		}
		if math.Abs(gotBase[i].Score-gotScaled[i].Score) > 1e-9 {
			t.Errorf("position %d: score changed under scaling: %v vs %v", i, gotBase[i].Score, gotScaled[i].Score)
		}
	}
}

func TestAggregate_SortedByScoreThenGameID(t *testing.T) {
	matrix := NewMatrix()
	// g10과 g2는 같은 점수, g1이 최고 점수
	matrix.Add("u1", "1", 5.0)
	matrix.Add("u1", "2", 3.0)
	matrix.Add("u1", "10", 3.0)

	similar := []SimilarUser{{UserID: "u1", Similarity: 1.0}}

	got := Aggregate(similar, matrix)
	if len(got) != 3 {
		t.Fatalf("expected 3 recommendations, got %v", got)
	}
	if got[0].GameID != "1" {
		t.Errorf("expected highest score first, got %s", got[0].GameID)
	}
	// 동점은 게임 ID 오름차순 (숫자 비교: 2 < 10)
	if got[1].GameID != "2" || got[2].GameID != "10" {
		t.Errorf("expected tie order 2, 10; got %s, %s", got[1].GameID, got[2].GameID)
	}
}

// 단일 게임 겹침(n=1)은 분산이 0이므로
// 양쪽 후보 모두 유사도 0이 되고, 결과적으로 추천이 비어야 한다.
func TestEndToEnd_SingleOverlapZeroVariance(t *testing.T) {
	matrix := NewMatrix()
	matrix.Add("U1", "g1", 4.0)
	matrix.Add("U1", "g2", 5.0)
	matrix.Add("U2", "g1", 1.0)
	matrix.Add("U2", "g2", 1.0)

	active := map[string]float64{"g1": 4.0}

	similar := SimilarUsers(active, matrix, Options{})
	if len(similar) != 2 {
		t.Fatalf("expected 2 candidates, got %v", similar)
	}
	for _, su := range similar {
		if math.IsNaN(su.Similarity) {
			t.Fatalf("similarity for %s is NaN; zero-variance branch not taken", su.UserID)
		}
		if su.Similarity != 0.0 {
			t.Errorf("expected similarity 0.0 for %s, got %v", su.UserID, su.Similarity)
		}
	}

	recs := Aggregate(similar, matrix)
	if len(recs) != 0 {
		t.Errorf("expected no recommendations when all similarities are zero, got %v", recs)
	}
}
