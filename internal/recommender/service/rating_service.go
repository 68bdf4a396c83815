package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	rconfig "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/config"
	rredis "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/redis"
)

// ErrRatingOutOfRange: 평점이 허용 범위(0.0~5.0, 0.5 단위)를 벗어났을 때 반환된다.
var ErrRatingOutOfRange = errors.New("rating out of range")

// ErrUnknownGame: 카탈로그에 없는 게임을 평가하려 할 때 반환된다.
var ErrUnknownGame = errors.New("unknown game")

// RatedGameView: 카탈로그 메타데이터가 결합된 사용자 평점 한 건.
type RatedGameView struct {
	GameID   string  `json:"gameId"`
	Name     string  `json:"name"`
	ImageURL string  `json:"imageUrl"`
	Rating   float64 `json:"rating"`
}

// RatingService 는 평점 제출과 조회를 담당한다.
// 제출이 성공하면 해당 사용자의 추천 플래그가 Dirty로 전환된다.
type RatingService struct {
	catalogSvc *CatalogService
	ratings    *rredis.RatingStore
	flags      *rredis.FlagStore
	logger     *slog.Logger
}

// NewRatingService 는 RatingService 인스턴스를 생성한다.
func NewRatingService(
	catalogSvc *CatalogService,
	ratings *rredis.RatingStore,
	flags *rredis.FlagStore,
	logger *slog.Logger,
) *RatingService {
	return &RatingService{
		catalogSvc: catalogSvc,
		ratings:    ratings,
		flags:      flags,
		logger:     logger,
	}
}

// Submit 는 사용자의 평점 집합을 검증 후 통째로 교체 저장한다.
// 모든 게임은 카탈로그에 존재해야 하고, 평점은 0.0~5.0 범위의 0.5 단위여야 한다.
// 검증 실패 시 아무것도 저장되지 않는다.
func (s *RatingService) Submit(ctx context.Context, userID string, ratings map[string]float64) error {
	snapshot, err := s.catalogSvc.Snapshot()
	if err != nil {
		return err
	}

	for gameID, rating := range ratings {
		if _, ok := snapshot.Game(gameID); !ok {
			return fmt.Errorf("game %q: %w", gameID, ErrUnknownGame)
		}
		if !validRating(rating) {
			return fmt.Errorf("game %q rating %v: %w", gameID, rating, ErrRatingOutOfRange)
		}
	}

	if err := s.ratings.Set(ctx, userID, ratings); err != nil {
		return err
	}
	if err := s.flags.MarkDirty(ctx, userID, rredis.KindRecommendations); err != nil {
		return err
	}

	s.logger.Info("ratings_submitted", "user_id", userID, "count", len(ratings))
	return nil
}

// RatedGames 는 사용자의 평점을 카탈로그 메타데이터와 결합하여 반환한다.
// 평점이 없는 사용자는 저장소의 NotFoundError가 그대로 전파된다.
func (s *RatingService) RatedGames(ctx context.Context, userID string) ([]RatedGameView, error) {
	snapshot, err := s.catalogSvc.Snapshot()
	if err != nil {
		return nil, err
	}

	ratings, err := s.ratings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]RatedGameView, 0, len(ratings))
	for _, game := range snapshot.Games() {
		rating, ok := ratings[game.ID]
		if !ok {
			continue
		}
		out = append(out, RatedGameView{
			GameID:   game.ID,
			Name:     game.Name,
			ImageURL: game.ImageURL,
			Rating:   rating,
		})
	}
	return out, nil
}

// validRating 는 평점이 허용 범위의 0.5 단위인지 검사한다.
func validRating(rating float64) bool {
	if rating < rconfig.RatingMin || rating > rconfig.RatingMax {
		return false
	}
	steps := rating / rconfig.RatingStep
	return math.Abs(steps-math.Round(steps)) < 1e-9
}
