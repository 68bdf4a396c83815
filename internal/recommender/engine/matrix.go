// Package engine 는 협업 필터링 핵심 계산을 구현한다.
// 과거 평점 행렬에서 활성 사용자와 겹치는 사용자를 찾아 Pearson 상관계수로
// 유사도를 매기고, 유사 사용자들의 평점을 가중 평균하여 추천 점수를 만든다.
package engine

// Matrix 는 과거 커뮤니티 평점의 희소 행렬이다. (user -> game -> rating)
// 기동 시 한 번 적재된 뒤 읽기 전용으로 사용되며, 동시 읽기에 안전하다.
// 사용자 삽입 순서를 기억하여 동률 정렬을 결정적으로 만든다.
type Matrix struct {
	ratings   map[string]map[string]float64
	userOrder []string
}

// NewMatrix 는 빈 행렬을 생성한다.
func NewMatrix() *Matrix {
	return &Matrix{
		ratings: make(map[string]map[string]float64),
	}
}

// Add 는 (user, game, rating) 항목을 추가한다. 같은 쌍은 마지막 값이 이긴다.
func (m *Matrix) Add(userID string, gameID string, rating float64) {
	byGame, ok := m.ratings[userID]
	if !ok {
		byGame = make(map[string]float64)
		m.ratings[userID] = byGame
		m.userOrder = append(m.userOrder, userID)
	}
	byGame[gameID] = rating
}

// UserRatings 는 한 사용자의 평점 목록을 반환한다. 없으면 nil.
func (m *Matrix) UserRatings(userID string) map[string]float64 {
	return m.ratings[userID]
}

// Users 는 사용자 ID를 삽입 순서대로 반환한다.
func (m *Matrix) Users() []string {
	return m.userOrder
}

// Len 는 행렬에 포함된 사용자 수를 반환한다.
func (m *Matrix) Len() int {
	return len(m.userOrder)
}
