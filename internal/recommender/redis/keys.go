// Package redis 는 추천 서비스의 Redis/Valkey 키 생성 함수들을 정의한다.
package redis

import (
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/valkeyx"
	rconfig "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/config"
)

// ratingsKey 는 활성 사용자 평점 저장용 키를 생성한다.
// 형식: recsys:ratings:{userID}
func ratingsKey(userID string) string {
	return valkeyx.BuildKey(rconfig.RedisKeyRatingPrefix, userID)
}

// candidatesKey 는 평가 후보 게임 목록 저장용 키를 생성한다.
// 형식: recsys:candidates:{userID}
func candidatesKey(userID string) string {
	return valkeyx.BuildKey(rconfig.RedisKeyCandidatePrefix, userID)
}

// preferencesKey 는 마지막으로 제출된 장르 선호 저장용 키를 생성한다.
// 형식: recsys:preferences:{userID}
func preferencesKey(userID string) string {
	return valkeyx.BuildKey(rconfig.RedisKeyPreferencePrefix, userID)
}

// recommendationsKey 는 추천 결과 목록 저장용 키를 생성한다.
// 형식: recsys:recommendations:{userID}
func recommendationsKey(userID string) string {
	return valkeyx.BuildKey(rconfig.RedisKeyRecommendationPrefix, userID)
}

// flagKey 는 사용자/종류별 더티 플래그 키를 생성한다.
// 형식: recsys:flag:{kind}:{userID}
func flagKey(kind FlagKind, userID string) string {
	return valkeyx.BuildKey2(rconfig.RedisKeyFlagPrefix, string(kind), userID)
}

// accountKey 는 계정 해시 저장용 키를 생성한다.
// 형식: recsys:account:{username}
func accountKey(username string) string {
	return valkeyx.BuildKey(rconfig.RedisKeyAccountPrefix, username)
}

// computeLockKey 는 사용자별 추천 계산 락 키를 생성한다.
// 형식: recsys:lock:compute:{userID}
func computeLockKey(userID string) string {
	return valkeyx.BuildKeySuffix(rconfig.RedisKeyLockPrefix, "compute", userID)
}

// ComputeLockKey 는 processinglock 서비스에 주입되는 락 키 팩토리다.
func ComputeLockKey(userID string) string {
	return computeLockKey(userID)
}
