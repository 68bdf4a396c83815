package redis

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/valkey-io/valkey-go"

	cerrors "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/errors"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/valkeyx"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/catalog"
	rconfig "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/config"
)

// cachedGame: 카탈로그 캐시에 저장되는 압축 표현.
// 장르는 파이프(|)로 이어 붙인 문자열로 저장된다.
type cachedGame struct {
	Name     string  `json:"name"`
	ImageURL string  `json:"imageUrl"`
	Genres   string  `json:"genres"`
	Rating   float64 `json:"rating"`
}

// CatalogCache 는 카탈로그 스냅샷의 Redis 사본을 관리한다.
// (게임 사전, 장르 목록, 최신 게임 ID)
type CatalogCache struct {
	client valkey.Client
	logger *slog.Logger
}

// NewCatalogCache 는 CatalogCache 인스턴스를 생성한다.
func NewCatalogCache(client valkey.Client, logger *slog.Logger) *CatalogCache {
	return &CatalogCache{
		client: client,
		logger: logger,
	}
}

// Save 는 스냅샷 전체를 캐시에 기록한다. (게임 사전 / 장르 목록 / latest_game_id)
func (c *CatalogCache) Save(ctx context.Context, snapshot *catalog.Snapshot) error {
	games := snapshot.Games()
	dict := make(map[string]cachedGame, len(games))
	for _, game := range games {
		dict[game.ID] = cachedGame{
			Name:     game.Name,
			ImageURL: game.ImageURL,
			Genres:   strings.Join(game.Genres, "|"),
			Rating:   game.Rating,
		}
	}

	payload, err := json.Marshal(dict)
	if err != nil {
		return cerrors.RedisError{Operation: "catalog_marshal", Err: err}
	}
	if err := valkeyx.SetString(ctx, c.client, rconfig.RedisKeyCatalog, string(payload)); err != nil {
		return cerrors.RedisError{Operation: "catalog_save", Err: err}
	}

	if err := c.saveGenres(ctx, snapshot.GenreNames()); err != nil {
		return err
	}

	latest := strconv.FormatInt(snapshot.LatestGameID(), 10)
	if err := valkeyx.SetString(ctx, c.client, rconfig.RedisKeyLatestGameID, latest); err != nil {
		return cerrors.RedisError{Operation: "catalog_save_latest_id", Err: err}
	}

	c.logger.Info("catalog_cached", "games", len(dict), "latest_game_id", latest)
	return nil
}

// saveGenres 는 장르 목록을 리스트로 교체 저장한다.
func (c *CatalogCache) saveGenres(ctx context.Context, names []string) error {
	if err := valkeyx.DeleteKeys(ctx, c.client, rconfig.RedisKeyGenres); err != nil {
		return cerrors.RedisError{Operation: "genres_clear", Err: err}
	}
	if len(names) == 0 {
		return nil
	}
	cmd := c.client.B().Rpush().Key(rconfig.RedisKeyGenres).Element(names...).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return cerrors.RedisError{Operation: "genres_save", Err: err}
	}
	return nil
}

// Genres 는 캐시된 장르 목록을 조회한다.
func (c *CatalogCache) Genres(ctx context.Context) ([]string, error) {
	cmd := c.client.B().Lrange().Key(rconfig.RedisKeyGenres).Start(0).Stop(-1).Build()
	names, err := c.client.Do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, cerrors.RedisError{Operation: "genres_get", Err: err}
	}
	return names, nil
}

// LatestGameID 는 캐시된 최신 게임 ID를 조회한다. 없으면 0.
func (c *CatalogCache) LatestGameID(ctx context.Context) (int64, error) {
	value, ok, err := valkeyx.GetString(ctx, c.client, rconfig.RedisKeyLatestGameID)
	if err != nil {
		return 0, cerrors.RedisError{Operation: "catalog_get_latest_id", Err: err}
	}
	if !ok {
		return 0, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, cerrors.RedisError{Operation: "catalog_parse_latest_id", Err: err}
	}
	return parsed, nil
}
