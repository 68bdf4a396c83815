package catalog

import "sort"

// Candidate: 장르 선호로 선별된 평가 후보 게임.
// MatchedGenre는 게임 장르와 선호 집합의 교집합 중 사전순으로 가장 작은 표기다.
type Candidate struct {
	GameID       string `json:"gameId"`
	MatchedGenre string `json:"matchedGenre"`
}

// Candidates 는 장르 선호 집합과 교차하는 게임들을 반환한다.
// 게임 ID 기준으로 중복이 제거되며, 결과는 게임 ID 오름차순으로 정렬된다.
// 일치하는 게임이 없으면 빈 목록을 반환한다. (에러 아님)
func (s *Snapshot) Candidates(preferences []string) []Candidate {
	prefs := make(map[string]struct{}, len(preferences))
	for _, p := range preferences {
		key := NormalizeGenre(p)
		if key == "" {
			continue
		}
		prefs[key] = struct{}{}
	}
	if len(prefs) == 0 {
		return []Candidate{}
	}

	matched := make(map[string]struct{})
	for key := range prefs {
		for _, gameID := range s.genreIndex[key] {
			matched[gameID] = struct{}{}
		}
	}

	out := make([]Candidate, 0, len(matched))
	for gameID := range matched {
		game := s.games[gameID]
		out = append(out, Candidate{
			GameID:       gameID,
			MatchedGenre: pickMatchedGenre(game.Genres, prefs),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return CompareGameIDs(out[i].GameID, out[j].GameID) < 0
	})
	return out
}

// pickMatchedGenre 는 교집합 중 사전순으로 가장 작은 장르 표기를 고른다.
func pickMatchedGenre(genres []string, prefs map[string]struct{}) string {
	best := ""
	for _, genre := range genres {
		if _, ok := prefs[NormalizeGenre(genre)]; !ok {
			continue
		}
		if best == "" || genre < best {
			best = genre
		}
	}
	return best
}
