// Package catalog 는 게임 카탈로그의 불변 스냅샷과 장르 필터를 제공한다.
// 스냅샷은 CSV 데이터셋에서 한 번 구축되며, 리로드는 전체 교체로만 이루어진다.
package catalog

import (
	"sort"
	"strconv"
)

// Game: 카탈로그에 등록된 게임 메타데이터.
// 스냅샷에 적재된 이후에는 변경되지 않는다.
type Game struct {
	ID       string
	Name     string
	ImageURL string
	Genres   []string // 표시용 장르 이름 (중복 없음)
	Rating   float64
}

// Snapshot: 게임/장르 조회용 읽기 전용 인덱스.
// 동시 읽기에 안전하며 생성 후 절대 변경되지 않는다.
type Snapshot struct {
	games      map[string]Game
	genreIndex map[string][]string // 정규화된 장르 이름 -> 게임 ID 목록
	genreNames []string            // 표시용 장르 이름 (정렬됨)
	latestID   int64
}

// Game 는 게임 ID로 메타데이터를 조회한다.
func (s *Snapshot) Game(id string) (Game, bool) {
	g, ok := s.games[id]
	return g, ok
}

// Games 는 모든 게임을 ID 오름차순으로 반환한다.
func (s *Snapshot) Games() []Game {
	out := make([]Game, 0, len(s.games))
	for _, g := range s.games {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		return CompareGameIDs(out[i].ID, out[j].ID) < 0
	})
	return out
}

// GenreNames 는 카탈로그의 전체 장르 이름을 정렬된 순서로 반환한다.
func (s *Snapshot) GenreNames() []string {
	out := make([]string, len(s.genreNames))
	copy(out, s.genreNames)
	return out
}

// LatestGameID 는 카탈로그에서 가장 큰 숫자 게임 ID를 반환한다.
func (s *Snapshot) LatestGameID() int64 {
	return s.latestID
}

// Len 는 카탈로그에 등록된 게임 수를 반환한다.
func (s *Snapshot) Len() int {
	return len(s.games)
}

// CompareGameIDs 는 게임 ID를 비교한다. 두 ID가 모두 숫자라면 숫자 크기로,
// 아니면 사전순으로 비교하여 "10" < "2" 같은 역전을 막는다.
func CompareGameIDs(a, b string) int {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
