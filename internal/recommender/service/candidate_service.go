package service

import (
	"context"
	"log/slog"
	"slices"
	"sort"

	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/catalog"
	rredis "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/redis"
)

// ComputeStatus: 계산 요청의 처리 결과.
type ComputeStatus string

// ComputeStatus 값 목록
const (
	StatusComputed  ComputeStatus = "computed"
	StatusNotNeeded ComputeStatus = "not_needed"
)

// CandidateView: 카탈로그 메타데이터가 결합된 평가 후보 게임.
type CandidateView struct {
	GameID       string  `json:"gameId"`
	Name         string  `json:"name"`
	ImageURL     string  `json:"imageUrl"`
	MatchedGenre string  `json:"matchedGenre"`
	Rating       float64 `json:"rating"` // 카탈로그 집계 평점
}

// CandidateService 는 장르 선호로부터 "평가할 게임" 목록을 만든다.
type CandidateService struct {
	catalogSvc *CatalogService
	candidates *rredis.CandidateStore
	flags      *rredis.FlagStore
	logger     *slog.Logger
}

// NewCandidateService 는 CandidateService 인스턴스를 생성한다.
func NewCandidateService(
	catalogSvc *CatalogService,
	candidates *rredis.CandidateStore,
	flags *rredis.FlagStore,
	logger *slog.Logger,
) *CandidateService {
	return &CandidateService{
		catalogSvc: catalogSvc,
		candidates: candidates,
		flags:      flags,
		logger:     logger,
	}
}

// Compute 는 장르 선호로 후보 목록을 계산하여 저장한다.
// 선호가 바뀌지 않았고 플래그가 Clean이면 재계산 없이 단락한다.
func (s *CandidateService) Compute(
	ctx context.Context,
	userID string,
	preferences []string,
) (ComputeStatus, error) {
	snapshot, err := s.catalogSvc.Snapshot()
	if err != nil {
		return "", err
	}

	flag, err := s.flags.Get(ctx, userID, rredis.KindCandidates)
	if err != nil {
		return "", err
	}
	if flag == rredis.FlagClean {
		stored, err := s.candidates.GetPreferences(ctx, userID)
		if err != nil {
			return "", err
		}
		if stored != nil && samePreferenceSet(stored, preferences) {
			s.logger.Info("candidates_unchanged", "user_id", userID)
			return StatusNotNeeded, nil
		}
	}

	list := snapshot.Candidates(preferences)

	if err := s.candidates.Set(ctx, userID, list); err != nil {
		return "", err
	}
	if err := s.candidates.SetPreferences(ctx, userID, preferences); err != nil {
		return "", err
	}
	if err := s.flags.Clear(ctx, userID, rredis.KindCandidates); err != nil {
		return "", err
	}

	s.logger.Info("candidates_computed", "user_id", userID, "count", len(list))
	return StatusComputed, nil
}

// List 는 저장된 후보 목록을 카탈로그 메타데이터와 결합하여 반환한다.
// 저장소의 NotFoundError는 그대로 전파된다.
func (s *CandidateService) List(ctx context.Context, userID string) ([]CandidateView, error) {
	snapshot, err := s.catalogSvc.Snapshot()
	if err != nil {
		return nil, err
	}

	stored, err := s.candidates.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]CandidateView, 0, len(stored))
	for _, cand := range stored {
		game, ok := snapshot.Game(cand.GameID)
		if !ok {
			// 카탈로그 리로드로 사라진 게임은 조용히 건너뜀
			continue
		}
		out = append(out, CandidateView{
			GameID:       cand.GameID,
			Name:         game.Name,
			ImageURL:     game.ImageURL,
			MatchedGenre: cand.MatchedGenre,
			Rating:       game.Rating,
		})
	}
	return out, nil
}

// samePreferenceSet 는 두 선호 목록이 정규화 기준으로 같은 집합인지 비교한다.
func samePreferenceSet(a []string, b []string) bool {
	return slices.Equal(normalizedPreferenceSet(a), normalizedPreferenceSet(b))
}

func normalizedPreferenceSet(prefs []string) []string {
	set := make(map[string]struct{}, len(prefs))
	for _, p := range prefs {
		key := catalog.NormalizeGenre(p)
		if key == "" {
			continue
		}
		set[key] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
