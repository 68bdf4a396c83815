package config

// RedisKeyPrefix 는 Redis 키 상수 목록이다.
// 원본 데이터 배치(DB 0~5)를 단일 DB 안의 키 프리픽스로 재배치했다.
const (
	RedisKeyPrefix = "recsys"

	RedisKeyGenres       = RedisKeyPrefix + ":genres"
	RedisKeyLatestGameID = RedisKeyPrefix + ":latest_game_id"
	RedisKeyCatalog      = RedisKeyPrefix + ":catalog"

	RedisKeyAccountPrefix        = RedisKeyPrefix + ":account"
	RedisKeyLatestUserID         = RedisKeyPrefix + ":latest_user_id"
	RedisKeyRatingPrefix         = RedisKeyPrefix + ":ratings"
	RedisKeyCandidatePrefix      = RedisKeyPrefix + ":candidates"
	RedisKeyPreferencePrefix     = RedisKeyPrefix + ":preferences"
	RedisKeyRecommendationPrefix = RedisKeyPrefix + ":recommendations"
	RedisKeyFlagPrefix           = RedisKeyPrefix + ":flag"
	RedisKeyLockPrefix           = RedisKeyPrefix + ":lock"
)

// RedisComputeLockTTLSeconds 는 Redis TTL 상수 목록이다.
const (
	RedisComputeLockTTLSeconds = 120
)

// RatingMin 는 평점 범위 상수 목록이다.
const (
	RatingMin  = 0.0
	RatingMax  = 5.0
	RatingStep = 0.5
)

// DefaultTopCandidates 는 유사도 계산 상한 기본값 목록이다.
const (
	DefaultTopCandidates  = 100
	DefaultTopSimilar     = 50
	DefaultCatalogDataDir = "dataset"
)
