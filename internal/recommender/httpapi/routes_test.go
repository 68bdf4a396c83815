package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valkey-io/valkey-go"

	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/messageprovider"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/processinglock"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/testhelper"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/assets"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/catalog"
	rconfig "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/config"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/engine"
	rredis "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/redis"
	rsvc "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/service"
)

// apiFixture: 전체 REST 라우트 테스트용 픽스처
type apiFixture struct {
	mux    *http.ServeMux
	client valkey.Client
	lock   *processinglock.Service
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	client := testhelper.NewTestValkeyClient(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	snap, err := catalog.Load(
		strings.NewReader("id,name,rating\ng1,Game One,4.0\ng2,Game Two,4.2\n"),
		strings.NewReader("id,name\ng1,RPG\ng2,RPG\ng2,Action\n"),
		strings.NewReader("id,image_background\ng1,img1\ng2,img2\n"),
	)
	if err != nil {
		t.Fatalf("snapshot load failed: %v", err)
	}
	holder := catalog.NewHolder()
	holder.Swap(snap)

	flags := rredis.NewFlagStore(client, logger)
	ratings := rredis.NewRatingStore(client, logger)
	candidates := rredis.NewCandidateStore(client, logger)
	recs := rredis.NewRecommendationStore(client, logger)
	accounts := rredis.NewAccountStore(client, logger)
	cache := rredis.NewCatalogCache(client, logger)
	lock := processinglock.New(client, logger, rredis.ComputeLockKey, 30*time.Second)

	matrix := engine.NewMatrix()
	matrix.Add("u1", "g1", 5.0)
	matrix.Add("u1", "g2", 4.0)
	matrix.Add("u2", "g1", 1.0)
	matrix.Add("u2", "g2", 2.0)

	catalogSvc := rsvc.NewCatalogService(rconfig.CatalogConfig{DataDir: "unused"}, holder, cache, logger)
	accountSvc := rsvc.NewAccountService(accounts, logger)
	candidateSvc := rsvc.NewCandidateService(catalogSvc, candidates, flags, logger)
	ratingSvc := rsvc.NewRatingService(catalogSvc, ratings, flags, logger)
	recommendationSvc := rsvc.NewRecommendationService(
		rconfig.EngineConfig{TopCandidates: 100, TopSimilar: 50},
		matrix, ratings, recs, flags, lock, logger,
	)

	msgProvider, err := messageprovider.NewFromYAML(assets.ServiceMessagesYAML)
	if err != nil {
		t.Fatalf("message provider failed: %v", err)
	}

	mux := http.NewServeMux()
	Register(mux, catalogSvc, accountSvc, candidateSvc, ratingSvc, recommendationSvc, msgProvider, logger)

	return &apiFixture{mux: mux, client: client, lock: lock}
}

func (f *apiFixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response failed: %v (body: %s)", err, rec.Body.String())
	}
	return out
}

func TestHealth(t *testing.T) {
	f := newAPIFixture(t)
	rec := f.do(t, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody[map[string]any](t, rec)
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %v", body["status"])
	}
}

func TestGenres(t *testing.T) {
	f := newAPIFixture(t)
	rec := f.do(t, http.MethodGet, "/api/recommender/genres", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody[GenresResponse](t, rec)
	if len(body.Genres) != 2 {
		t.Errorf("expected 2 genres, got %v", body.Genres)
	}
}

func TestAuthFlow(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/api/recommender/auth/signup", `{"username":"alice","password":"secret"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	signup := decodeBody[AuthResponse](t, rec)
	if signup.UserID == "" {
		t.Fatal("expected issued user id")
	}

	// 중복 가입
	rec = f.do(t, http.MethodPost, "/api/recommender/auth/signup", `{"username":"alice","password":"other"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}

	// 로그인 성공
	rec = f.do(t, http.MethodPost, "/api/recommender/auth/login", `{"username":"alice","password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	login := decodeBody[AuthResponse](t, rec)
	if login.UserID != signup.UserID {
		t.Errorf("expected user id %s, got %s", signup.UserID, login.UserID)
	}

	// 패스워드 불일치
	rec = f.do(t, http.MethodPost, "/api/recommender/auth/login", `{"username":"alice","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}

	// 빈 바디
	rec = f.do(t, http.MethodPost, "/api/recommender/auth/signup", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCandidateRoutes(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/api/recommender/users/7/games", `{"preferences":["Action"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	compute := decodeBody[ComputeResponse](t, rec)
	if compute.Status != string(rsvc.StatusComputed) {
		t.Errorf("expected computed, got %s", compute.Status)
	}

	// 동일 선호 재제출은 단락
	rec = f.do(t, http.MethodPost, "/api/recommender/users/7/games", `{"preferences":["action"]}`)
	compute = decodeBody[ComputeResponse](t, rec)
	if compute.Status != string(rsvc.StatusNotNeeded) {
		t.Errorf("expected not_needed, got %s", compute.Status)
	}

	rec = f.do(t, http.MethodGet, "/api/recommender/users/7/games", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	list := decodeBody[CandidateListResponse](t, rec)
	if len(list.Games) != 1 || list.Games[0].GameID != "g2" {
		t.Errorf("unexpected candidates: %+v", list.Games)
	}

	// 후보 없는 사용자
	rec = f.do(t, http.MethodGet, "/api/recommender/users/99/games", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestRatingRoutes(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPut, "/api/recommender/users/7/ratings", `{"ratings":{"g1":4.5,"g2":3.0}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodGet, "/api/recommender/users/7/ratings", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	list := decodeBody[RatedGamesResponse](t, rec)
	if len(list.Games) != 2 {
		t.Errorf("expected 2 rated games, got %+v", list.Games)
	}

	// 범위 밖 평점
	rec = f.do(t, http.MethodPut, "/api/recommender/users/7/ratings", `{"ratings":{"g1":5.5}}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}

	// 카탈로그에 없는 게임
	rec = f.do(t, http.MethodPut, "/api/recommender/users/7/ratings", `{"ratings":{"nope":3.0}}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}

	// 평점 없는 사용자 조회
	rec = f.do(t, http.MethodGet, "/api/recommender/users/99/ratings", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestRecommendationRoutes(t *testing.T) {
	f := newAPIFixture(t)

	// 평점 제출이 추천 플래그를 Dirty로 만든다
	rec := f.do(t, http.MethodPut, "/api/recommender/users/7/ratings", `{"ratings":{"g1":5.0,"g2":4.0}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("rating submit failed: %d", rec.Code)
	}

	rec = f.do(t, http.MethodPost, "/api/recommender/users/7/recommendations", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	compute := decodeBody[ComputeResponse](t, rec)
	if compute.Status != string(rsvc.StatusComputed) {
		t.Errorf("expected computed, got %s", compute.Status)
	}

	// 재요청은 단락
	rec = f.do(t, http.MethodPost, "/api/recommender/users/7/recommendations", "")
	compute = decodeBody[ComputeResponse](t, rec)
	if compute.Status != string(rsvc.StatusNotNeeded) {
		t.Errorf("expected not_needed, got %s", compute.Status)
	}

	rec = f.do(t, http.MethodGet, "/api/recommender/users/7/recommendations", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// 결과 없는 사용자
	rec = f.do(t, http.MethodGet, "/api/recommender/users/99/recommendations", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestRecommendationCompute_Busy(t *testing.T) {
	f := newAPIFixture(t)
	ctx := context.Background()

	rec := f.do(t, http.MethodPut, "/api/recommender/users/7/ratings", `{"ratings":{"g1":5.0}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("rating submit failed: %d", rec.Code)
	}

	// 다른 요청이 계산 중인 상태를 재현
	if err := f.lock.Start(ctx, "7"); err != nil {
		t.Fatalf("lock start failed: %v", err)
	}
	defer func() { _ = f.lock.Finish(ctx, "7") }()

	rec = f.do(t, http.MethodPost, "/api/recommender/users/7/recommendations", "")
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d (body: %s)", rec.Code, rec.Body.String())
	}
}
