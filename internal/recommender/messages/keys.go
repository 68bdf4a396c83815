// Package messages 는 추천 서비스가 사용자에게 노출하는 메시지 키 목록이다.
package messages

// ErrorGeneric: 공통 오류 메시지 키
const (
	ErrorGeneric  = "error.generic"
	ErrorNotFound = "error.not_found"
)

// AuthUsernameTaken: 계정 가입/로그인 관련 메시지 키
const (
	AuthUsernameTaken      = "auth.username_taken"
	AuthInvalidCredentials = "auth.invalid_credentials"
	AuthEmptyCredentials   = "auth.empty_credentials"
	AuthSignupSuccess      = "auth.signup_success"
)

// CandidatesUpToDate: 평가 후보 계산 관련 메시지 키
const (
	CandidatesUpToDate = "candidates.up_to_date"
	CandidatesComputed = "candidates.computed"
	CandidatesNotFound = "candidates.not_found"
)

// RatingOutOfRange: 평점 제출 관련 메시지 키
const (
	RatingOutOfRange  = "rating.out_of_range"
	RatingUnknownGame = "rating.unknown_game"
	RatingSaved       = "rating.saved"
	RatingNotFound    = "rating.not_found"
)

// RecommendationUpToDate: 추천 계산/조회 관련 메시지 키
const (
	RecommendationUpToDate  = "recommendation.up_to_date"
	RecommendationComputed  = "recommendation.computed"
	RecommendationBusy      = "recommendation.busy"
	RecommendationNotFound  = "recommendation.not_found"
	RecommendationNoRatings = "recommendation.no_ratings"
)

// CatalogNotLoaded: 카탈로그 관련 메시지 키
const (
	CatalogNotLoaded = "catalog.not_loaded"
)
