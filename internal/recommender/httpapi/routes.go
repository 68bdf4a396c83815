package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	cerrors "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/errors"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/health"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/httputil"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/messageprovider"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/engine"
	rmessages "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/messages"
	rredis "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/redis"
	rsvc "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/service"
)

const maxBodyBytes = 1 << 20

// Register HTTP API 라우트 등록.
func Register(
	mux *http.ServeMux,
	catalogService *rsvc.CatalogService,
	accountService *rsvc.AccountService,
	candidateService *rsvc.CandidateService,
	ratingService *rsvc.RatingService,
	recommendationService *rsvc.RecommendationService,
	msgProvider *messageprovider.Provider,
	logger *slog.Logger,
) {
	// GET /health - 헬스체크
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		_ = httputil.WriteJSON(w, http.StatusOK, health.Get())
	})

	// GET /api/recommender/genres - 장르 목록
	mux.HandleFunc("GET /api/recommender/genres", func(w http.ResponseWriter, r *http.Request) {
		handleGenres(w, r, catalogService, msgProvider, logger)
	})

	// POST /api/recommender/auth/signup - 가입
	mux.HandleFunc("POST /api/recommender/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		handleSignup(w, r, accountService, msgProvider, logger)
	})

	// POST /api/recommender/auth/login - 로그인
	mux.HandleFunc("POST /api/recommender/auth/login", func(w http.ResponseWriter, r *http.Request) {
		handleLogin(w, r, accountService, msgProvider, logger)
	})

	// POST /api/recommender/users/{userId}/games - 후보 계산
	mux.HandleFunc("POST /api/recommender/users/{userId}/games", func(w http.ResponseWriter, r *http.Request) {
		handleCandidateCompute(w, r, candidateService, msgProvider, logger)
	})

	// GET /api/recommender/users/{userId}/games - 후보 조회
	mux.HandleFunc("GET /api/recommender/users/{userId}/games", func(w http.ResponseWriter, r *http.Request) {
		handleCandidateList(w, r, candidateService, msgProvider, logger)
	})

	// PUT /api/recommender/users/{userId}/ratings - 평점 제출
	mux.HandleFunc("PUT /api/recommender/users/{userId}/ratings", func(w http.ResponseWriter, r *http.Request) {
		handleRatingSubmit(w, r, ratingService, msgProvider, logger)
	})

	// GET /api/recommender/users/{userId}/ratings - 평점 조회
	mux.HandleFunc("GET /api/recommender/users/{userId}/ratings", func(w http.ResponseWriter, r *http.Request) {
		handleRatedGames(w, r, ratingService, msgProvider, logger)
	})

	// POST /api/recommender/users/{userId}/recommendations - 추천 계산
	mux.HandleFunc("POST /api/recommender/users/{userId}/recommendations", func(w http.ResponseWriter, r *http.Request) {
		handleRecommendationCompute(w, r, recommendationService, msgProvider, logger)
	})

	// GET /api/recommender/users/{userId}/recommendations - 추천 조회
	mux.HandleFunc("GET /api/recommender/users/{userId}/recommendations", func(w http.ResponseWriter, r *http.Request) {
		handleRecommendationList(w, r, recommendationService, msgProvider, logger)
	})

	logger.Info("recommender_http_api_registered")
}

type (
	// AuthRequest: 가입/로그인 요청 DTO
	AuthRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	// AuthResponse: 가입/로그인 결과 응답 DTO
	AuthResponse struct {
		UserID  string `json:"userId"`
		Message string `json:"message,omitempty"`
	}

	// GenresResponse: 장르 목록 응답 DTO
	GenresResponse struct {
		Genres []string `json:"genres"`
	}

	// CandidateComputeRequest: 장르 선호 제출 요청 DTO
	CandidateComputeRequest struct {
		Preferences []string `json:"preferences"`
	}

	// ComputeResponse: 계산 요청 처리 결과 응답 DTO
	ComputeResponse struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}

	// CandidateListResponse: 평가 후보 목록 응답 DTO
	CandidateListResponse struct {
		Games []rsvc.CandidateView `json:"games"`
	}

	// RatingSubmitRequest: 평점 제출 요청 DTO
	RatingSubmitRequest struct {
		Ratings map[string]float64 `json:"ratings"`
	}

	// RatedGamesResponse: 사용자가 평가한 게임 목록 응답 DTO
	RatedGamesResponse struct {
		Games []rsvc.RatedGameView `json:"games"`
	}

	// RecommendationListResponse: 추천 목록 응답 DTO
	RecommendationListResponse struct {
		Recommendations []engine.Recommendation `json:"recommendations"`
	}
)

func handleGenres(
	w http.ResponseWriter,
	r *http.Request,
	catalogService *rsvc.CatalogService,
	msgProvider *messageprovider.Provider,
	logger *slog.Logger,
) {
	genres, err := catalogService.Genres()
	if err != nil {
		logger.Warn("GENRES_UNAVAILABLE", "err", err)
		respondError(w, http.StatusServiceUnavailable, "catalog_not_loaded", msgProvider.Get(rmessages.CatalogNotLoaded))
		return
	}
	_ = httputil.WriteJSON(w, http.StatusOK, GenresResponse{Genres: genres})
}

func handleSignup(
	w http.ResponseWriter,
	r *http.Request,
	accountService *rsvc.AccountService,
	msgProvider *messageprovider.Provider,
	logger *slog.Logger,
) {
	req, ok := decodeAuthRequest(w, r, msgProvider)
	if !ok {
		return
	}
	logger.Info("SIGNUP_REQUEST", "username", req.Username)

	userID, err := accountService.Signup(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, rsvc.ErrEmptyCredentials):
			respondError(w, http.StatusBadRequest, "empty_credentials", msgProvider.Get(rmessages.AuthEmptyCredentials))
		case errors.Is(err, rredis.ErrUsernameTaken):
			respondError(w, http.StatusConflict, "username_taken", msgProvider.Get(rmessages.AuthUsernameTaken))
		default:
			logger.Error("SIGNUP_FAILED", "username", req.Username, "err", err)
			respondError(w, http.StatusInternalServerError, "internal_error", msgProvider.Get(rmessages.ErrorGeneric))
		}
		return
	}

	logger.Info("SIGNUP_SUCCESS", "username", req.Username, "userId", userID)
	_ = httputil.WriteJSON(w, http.StatusCreated, AuthResponse{
		UserID:  userID,
		Message: msgProvider.Get(rmessages.AuthSignupSuccess),
	})
}

func handleLogin(
	w http.ResponseWriter,
	r *http.Request,
	accountService *rsvc.AccountService,
	msgProvider *messageprovider.Provider,
	logger *slog.Logger,
) {
	req, ok := decodeAuthRequest(w, r, msgProvider)
	if !ok {
		return
	}

	userID, err := accountService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, rsvc.ErrEmptyCredentials):
			respondError(w, http.StatusBadRequest, "empty_credentials", msgProvider.Get(rmessages.AuthEmptyCredentials))
		case errors.Is(err, rsvc.ErrInvalidCredentials):
			respondError(w, http.StatusUnauthorized, "invalid_credentials", msgProvider.Get(rmessages.AuthInvalidCredentials))
		default:
			logger.Error("LOGIN_FAILED", "username", req.Username, "err", err)
			respondError(w, http.StatusInternalServerError, "internal_error", msgProvider.Get(rmessages.ErrorGeneric))
		}
		return
	}

	logger.Info("LOGIN_SUCCESS", "username", req.Username, "userId", userID)
	_ = httputil.WriteJSON(w, http.StatusOK, AuthResponse{UserID: userID})
}

func handleCandidateCompute(
	w http.ResponseWriter,
	r *http.Request,
	candidateService *rsvc.CandidateService,
	msgProvider *messageprovider.Provider,
	logger *slog.Logger,
) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CandidateComputeRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := httputil.ReadJSON(r, &req, maxBodyBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", msgProvider.Get(rmessages.ErrorGeneric))
		return
	}

	start := time.Now()
	status, err := candidateService.Compute(r.Context(), userID, req.Preferences)
	duration := time.Since(start).Milliseconds()

	if err != nil {
		logger.Error("CANDIDATES_COMPUTE_FAILED", "userId", userID, "err", err, "duration", duration)
		respondComputeError(w, err, msgProvider, rmessages.CandidatesNotFound)
		return
	}

	logger.Info("CANDIDATES_COMPUTE_SUCCESS", "userId", userID, "status", status, "duration", duration)
	_ = httputil.WriteJSON(w, http.StatusOK, ComputeResponse{
		Status:  string(status),
		Message: computeMessage(msgProvider, status, rmessages.CandidatesComputed, rmessages.CandidatesUpToDate),
	})
}

func handleCandidateList(
	w http.ResponseWriter,
	r *http.Request,
	candidateService *rsvc.CandidateService,
	msgProvider *messageprovider.Provider,
	logger *slog.Logger,
) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	games, err := candidateService.List(r.Context(), userID)
	if err != nil {
		if cerrors.IsNotFound(err) {
			respondError(w, http.StatusNotFound, "candidates_not_found", msgProvider.Get(rmessages.CandidatesNotFound))
			return
		}
		logger.Error("CANDIDATES_LIST_FAILED", "userId", userID, "err", err)
		respondError(w, http.StatusInternalServerError, "internal_error", msgProvider.Get(rmessages.ErrorGeneric))
		return
	}

	_ = httputil.WriteJSON(w, http.StatusOK, CandidateListResponse{Games: games})
}

func handleRatingSubmit(
	w http.ResponseWriter,
	r *http.Request,
	ratingService *rsvc.RatingService,
	msgProvider *messageprovider.Provider,
	logger *slog.Logger,
) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req RatingSubmitRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := httputil.ReadJSON(r, &req, maxBodyBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", msgProvider.Get(rmessages.ErrorGeneric))
		return
	}
	if len(req.Ratings) == 0 {
		respondError(w, http.StatusBadRequest, "empty_ratings", msgProvider.Get(rmessages.RatingNotFound))
		return
	}

	if err := ratingService.Submit(r.Context(), userID, req.Ratings); err != nil {
		switch {
		case errors.Is(err, rsvc.ErrRatingOutOfRange):
			respondError(w, http.StatusBadRequest, "rating_out_of_range", msgProvider.Get(rmessages.RatingOutOfRange))
		case errors.Is(err, rsvc.ErrUnknownGame):
			respondError(w, http.StatusBadRequest, "unknown_game", msgProvider.Get(rmessages.RatingUnknownGame))
		default:
			logger.Error("RATINGS_SUBMIT_FAILED", "userId", userID, "err", err)
			respondError(w, http.StatusInternalServerError, "internal_error", msgProvider.Get(rmessages.ErrorGeneric))
		}
		return
	}

	logger.Info("RATINGS_SUBMIT_SUCCESS", "userId", userID, "count", len(req.Ratings))
	_ = httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": msgProvider.Get(rmessages.RatingSaved)})
}

func handleRatedGames(
	w http.ResponseWriter,
	r *http.Request,
	ratingService *rsvc.RatingService,
	msgProvider *messageprovider.Provider,
	logger *slog.Logger,
) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	games, err := ratingService.RatedGames(r.Context(), userID)
	if err != nil {
		if cerrors.IsNotFound(err) {
			respondError(w, http.StatusNotFound, "ratings_not_found", msgProvider.Get(rmessages.RatingNotFound))
			return
		}
		logger.Error("RATINGS_LIST_FAILED", "userId", userID, "err", err)
		respondError(w, http.StatusInternalServerError, "internal_error", msgProvider.Get(rmessages.ErrorGeneric))
		return
	}

	_ = httputil.WriteJSON(w, http.StatusOK, RatedGamesResponse{Games: games})
}

func handleRecommendationCompute(
	w http.ResponseWriter,
	r *http.Request,
	recommendationService *rsvc.RecommendationService,
	msgProvider *messageprovider.Provider,
	logger *slog.Logger,
) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	logger.Info("RECOMMENDATIONS_COMPUTE_REQUEST", "userId", userID)

	start := time.Now()
	status, err := recommendationService.Compute(r.Context(), userID)
	duration := time.Since(start).Milliseconds()

	if err != nil {
		var lockErr cerrors.LockError
		switch {
		case errors.As(err, &lockErr):
			logger.Info("RECOMMENDATIONS_COMPUTE_BUSY", "userId", userID, "duration", duration)
			respondError(w, http.StatusConflict, "compute_in_progress", msgProvider.Get(rmessages.RecommendationBusy))
		case cerrors.IsNotFound(err):
			respondError(w, http.StatusNotFound, "ratings_not_found", msgProvider.Get(rmessages.RecommendationNoRatings))
		default:
			logger.Error("RECOMMENDATIONS_COMPUTE_FAILED", "userId", userID, "err", err, "duration", duration)
			respondError(w, http.StatusInternalServerError, "internal_error", msgProvider.Get(rmessages.ErrorGeneric))
		}
		return
	}

	logger.Info("RECOMMENDATIONS_COMPUTE_SUCCESS", "userId", userID, "status", status, "duration", duration)
	_ = httputil.WriteJSON(w, http.StatusOK, ComputeResponse{
		Status:  string(status),
		Message: computeMessage(msgProvider, status, rmessages.RecommendationComputed, rmessages.RecommendationUpToDate),
	})
}

func handleRecommendationList(
	w http.ResponseWriter,
	r *http.Request,
	recommendationService *rsvc.RecommendationService,
	msgProvider *messageprovider.Provider,
	logger *slog.Logger,
) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	recommendations, err := recommendationService.Get(r.Context(), userID)
	if err != nil {
		if cerrors.IsNotFound(err) {
			respondError(w, http.StatusNotFound, "recommendations_not_found", msgProvider.Get(rmessages.RecommendationNotFound))
			return
		}
		logger.Error("RECOMMENDATIONS_LIST_FAILED", "userId", userID, "err", err)
		respondError(w, http.StatusInternalServerError, "internal_error", msgProvider.Get(rmessages.ErrorGeneric))
		return
	}

	_ = httputil.WriteJSON(w, http.StatusOK, RecommendationListResponse{Recommendations: recommendations})
}

func decodeAuthRequest(w http.ResponseWriter, r *http.Request, msgProvider *messageprovider.Provider) (AuthRequest, bool) {
	var req AuthRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := httputil.ReadJSON(r, &req, maxBodyBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", msgProvider.Get(rmessages.AuthEmptyCredentials))
		return AuthRequest{}, false
	}
	return req, true
}

func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.PathValue("userId"))
	if userID == "" {
		respondError(w, http.StatusBadRequest, "user_id_required", "userId is required")
		return "", false
	}
	return userID, true
}

// respondComputeError 는 후보 계산 실패를 상태 코드로 변환한다.
// 카탈로그 미적재는 일시적 상태이므로 503으로 구분한다.
func respondComputeError(w http.ResponseWriter, err error, msgProvider *messageprovider.Provider, notFoundKey string) {
	var notFound cerrors.NotFoundError
	if errors.As(err, &notFound) {
		if notFound.Kind == "catalog" {
			respondError(w, http.StatusServiceUnavailable, "catalog_not_loaded", msgProvider.Get(rmessages.CatalogNotLoaded))
			return
		}
		respondError(w, http.StatusNotFound, "not_found", msgProvider.Get(notFoundKey))
		return
	}
	respondError(w, http.StatusInternalServerError, "internal_error", msgProvider.Get(rmessages.ErrorGeneric))
}

func computeMessage(msgProvider *messageprovider.Provider, status rsvc.ComputeStatus, computedKey string, upToDateKey string) string {
	if status == rsvc.StatusNotNeeded {
		return msgProvider.Get(upToDateKey)
	}
	return msgProvider.Get(computedKey)
}

func respondError(w http.ResponseWriter, status int, code string, message string) {
	_ = httputil.WriteErrorJSON(w, status, code, message)
}
