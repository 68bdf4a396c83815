package engine

import (
	"math"
	"sort"
)

// SimilarUser: 활성 사용자와의 유사도가 매겨진 과거 사용자.
type SimilarUser struct {
	UserID     string
	Similarity float64
}

// Options: 유사도 계산 상한. 0 이하이면 기본값이 적용된다.
type Options struct {
	TopCandidates int // 겹침 수 기준 후보 상한 (기본 100)
	TopSimilar    int // 유사도 기준 최종 상한 (기본 50)
}

const (
	defaultTopCandidates = 100
	defaultTopSimilar    = 50
)

// SimilarUsers 는 활성 사용자의 평점과 과거 행렬로부터 유사 사용자 목록을 만든다.
//  1. 활성 사용자가 평가한 게임을 하나라도 평가한 사용자가 후보가 된다.
//  2. 겹치는 게임 수 내림차순 상위 TopCandidates명만 유지한다.
//  3. 각 후보에 대해 정확히 그 겹침 집합 위에서 Pearson 상관계수를 계산한다.
//  4. 유사도 내림차순 상위 TopSimilar명을 반환한다.
//
// 모든 동률은 행렬 삽입 순서로 깨져 출력이 결정적이다.
// 후보가 상한보다 적으면 전부 사용한다.
func SimilarUsers(activeRatings map[string]float64, matrix *Matrix, opts Options) []SimilarUser {
	topCandidates := opts.TopCandidates
	if topCandidates <= 0 {
		topCandidates = defaultTopCandidates
	}
	topSimilar := opts.TopSimilar
	if topSimilar <= 0 {
		topSimilar = defaultTopSimilar
	}

	if len(activeRatings) == 0 || matrix == nil || matrix.Len() == 0 {
		return []SimilarUser{}
	}

	type candidate struct {
		userID  string
		overlap []string
	}

	candidates := make([]candidate, 0, matrix.Len())
	for _, userID := range matrix.Users() {
		overlap := overlappingGames(activeRatings, matrix.UserRatings(userID))
		if len(overlap) == 0 {
			continue
		}
		candidates = append(candidates, candidate{userID: userID, overlap: overlap})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].overlap) > len(candidates[j].overlap)
	})
	if len(candidates) > topCandidates {
		candidates = candidates[:topCandidates]
	}

	similar := make([]SimilarUser, 0, len(candidates))
	for _, cand := range candidates {
		candRatings := matrix.UserRatings(cand.userID)
		xs := make([]float64, len(cand.overlap))
		ys := make([]float64, len(cand.overlap))
		for i, gameID := range cand.overlap {
			xs[i] = activeRatings[gameID]
			ys[i] = candRatings[gameID]
		}
		similar = append(similar, SimilarUser{
			UserID:     cand.userID,
			Similarity: pearson(xs, ys),
		})
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].Similarity > similar[j].Similarity
	})
	if len(similar) > topSimilar {
		similar = similar[:topSimilar]
	}
	return similar
}

// overlappingGames 는 양쪽 모두 평가한 게임 ID를 정렬된 순서로 반환한다.
func overlappingGames(active map[string]float64, historical map[string]float64) []string {
	if len(historical) == 0 {
		return nil
	}
	out := make([]string, 0, len(active))
	for gameID := range active {
		if _, ok := historical[gameID]; ok {
			out = append(out, gameID)
		}
	}
	sort.Strings(out)
	return out
}

// pearson 는 겹침 집합 위의 Pearson 상관계수를 계산한다.
//
//	Sxx = Σx² − (Σx)²/n, Syy = Σy² − (Σy)²/n, Sxy = Σxy − ΣxΣy/n
//	sim = Sxy / √(Sxx·Syy)  (Sxx, Syy 둘 다 0이 아닐 때)
//
// 분산이 0인 퇴화 케이스는 NaN 대신 0.0으로 정의된다.
func pearson(xs []float64, ys []float64) float64 {
	n := float64(len(xs))
	if n == 0 {
		return 0.0
	}

	var sumX, sumY, sumXX, sumYY, sumXY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXX += xs[i] * xs[i]
		sumYY += ys[i] * ys[i]
		sumXY += xs[i] * ys[i]
	}

	sxx := sumXX - sumX*sumX/n
	syy := sumYY - sumY*sumY/n
	sxy := sumXY - sumX*sumY/n

	if sxx == 0 || syy == 0 {
		return 0.0
	}
	return sxy / math.Sqrt(sxx*syy)
}
