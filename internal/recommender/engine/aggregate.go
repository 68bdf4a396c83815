package engine

import (
	"sort"

	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/catalog"
)

// Recommendation: 추천 계산의 최종 산출물 한 항목.
type Recommendation struct {
	GameID string  `json:"gameId"`
	Score  float64 `json:"score"`
}

// Aggregate 는 유사 사용자들의 평점을 유사도로 가중 평균하여 게임별 점수를 만든다.
// 점수 = Σ(similarity·rating) / Σsimilarity. Σsimilarity가 0인 게임은 제외된다.
// 결과는 점수 내림차순, 동점이면 게임 ID 오름차순으로 정렬된다.
func Aggregate(similarUsers []SimilarUser, matrix *Matrix) []Recommendation {
	type accumulator struct {
		sumSimilarity float64
		weightedSum   float64
	}

	byGame := make(map[string]*accumulator)
	for _, su := range similarUsers {
		for gameID, rating := range matrix.UserRatings(su.UserID) {
			acc, ok := byGame[gameID]
			if !ok {
				acc = &accumulator{}
				byGame[gameID] = acc
			}
			acc.sumSimilarity += su.Similarity
			acc.weightedSum += su.Similarity * rating
		}
	}

	out := make([]Recommendation, 0, len(byGame))
	for gameID, acc := range byGame {
		if acc.sumSimilarity == 0 {
			continue
		}
		out = append(out, Recommendation{
			GameID: gameID,
			Score:  acc.weightedSum / acc.sumSimilarity,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return catalog.CompareGameIDs(out[i].GameID, out[j].GameID) < 0
	})
	return out
}
