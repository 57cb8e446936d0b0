package rest

import (
	"bytes"
	"encoding/json"
	"menteazul/internal/cache"
	"menteazul/internal/config"
	"menteazul/internal/guides"
	"menteazul/internal/model"
	"menteazul/internal/platform/logger"
	"menteazul/internal/qchat"
	"menteazul/internal/repository"
	"menteazul/internal/service"
	"menteazul/internal/transport/ws"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, opts ...func(*config.Config)) http.Handler {
	t.Helper()
	ds, err := qchat.LoadDataset()
	require.NoError(t, err)
	catalog, err := guides.Load()
	require.NoError(t, err)

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:   "router-test",
			TokenTTL:    time.Hour,
			RateLimit:   100,
			RateBurst:   100,
			BcryptCost:  4,
			MinPassword: 6,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET, POST, PUT, DELETE, OPTIONS",
			AllowedHeaders: "Content-Type, Authorization",
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	log := logger.Nop()
	hub := ws.NewHub(log)

	users := repository.NewMemoryUserRepo()
	results := repository.NewMemoryResultRepo()
	dashCache := cache.NewMemoryDashboardCache(time.Minute)
	engine := qchat.NewEngine(ds)

	resultSvc := service.NewResultService(results, dashCache, ds, log)
	resultSvc.SetBroadcaster(hub)
	sessionSvc := service.NewSessionService(engine, cache.NewMemorySessionCache(time.Hour), resultSvc, log)
	sessionSvc.SetBroadcaster(hub)

	return NewRouter(&Container{
		Config:               cfg,
		Log:                  log,
		AuthService:          service.NewAuthService(users, cache.NewMemoryTokenDenylist(), cfg.Auth),
		UserService:          service.NewUserService(users),
		QuestionnaireService: service.NewQuestionnaireService(ds),
		EvaluationService:    service.NewEvaluationService(engine, resultSvc),
		SessionService:       sessionSvc,
		ResultService:        resultSvc,
		DashboardService:     service.NewDashboardService(results, dashCache, log),
		GuideService:         service.NewGuideService(catalog),
		WSHub:                hub,
	})
}

func do(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func register(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/v1/auth/register", "", model.RegisterRequest{
		Email:    email,
		Password: "secreto1",
		Role:     model.RoleParent,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp model.LoginResponse
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestRouter_Health(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_OpenAPI(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/v1/openapi.json", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]interface{}
	decode(t, rec, &doc)
	assert.Equal(t, "2.0", doc["swagger"])
}

func TestRouter_Preflight(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodOptions, "/v1/dashboard", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestRouter_Score(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name       string
		body       qchat.ScoreRequest
		wantStatus int
		wantRisk   qchat.RiskLevel
		wantScore  int
	}{
		{"empty answers", qchat.ScoreRequest{AgeGroupID: "toddlers", Answers: qchat.AnswerSet{}}, http.StatusOK, qchat.RiskLow, 0},
		{"moderate", qchat.ScoreRequest{AgeGroupID: "toddlers", Answers: qchat.AnswerSet{1: 1, 2: 1, 3: 1}}, http.StatusOK, qchat.RiskModerate, 3},
		{"negative weight", qchat.ScoreRequest{AgeGroupID: "toddlers", Answers: qchat.AnswerSet{1: 4, 3: -1000}}, http.StatusBadRequest, "", 0},
		{"unknown group", qchat.ScoreRequest{AgeGroupID: "teens"}, http.StatusBadRequest, "", 0},
		{"unknown variant", qchat.ScoreRequest{VariantID: "mchat", AgeGroupID: "toddlers"}, http.StatusBadRequest, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/score", "", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus != http.StatusOK {
				var body map[string]string
				decode(t, rec, &body)
				assert.NotEmpty(t, body["error"])
				return
			}
			var eval qchat.Evaluation
			decode(t, rec, &eval)
			assert.Equal(t, tt.wantScore, eval.TotalScore)
			assert.Equal(t, tt.wantRisk, eval.RiskLevel)
		})
	}
}

func TestRouter_Score_MalformedBody(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/score", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Questionnaires(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/v1/questionnaires", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var variants []model.VariantSummary
	decode(t, rec, &variants)
	assert.Len(t, variants, 2)

	rec = do(t, h, http.MethodGet, "/v1/questionnaires/qchat-age-adapted/groups/children", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var group qchat.AgeGroup
	decode(t, rec, &group)
	assert.Equal(t, "children", group.ID)
	assert.NotEmpty(t, group.Questions)

	rec = do(t, h, http.MethodGet, "/v1/questionnaires/qchat-age-adapted/groups/adults", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_GuideResources(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/v1/guides/resources", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var categories []guides.ResourceCategory
	decode(t, rec, &categories)
	assert.Len(t, categories, 3)
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	h := newTestRouter(t)

	for _, path := range []string{"/v1/me", "/v1/results", "/v1/dashboard"} {
		rec := do(t, h, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)

		rec = do(t, h, http.MethodGet, path, "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestRouter_RegisterAndLogin(t *testing.T) {
	h := newTestRouter(t)
	register(t, h, "ana@example.com")

	rec := do(t, h, http.MethodPost, "/v1/auth/register", "", model.RegisterRequest{Email: "ana@example.com", Password: "secreto1"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/auth/login", "", model.LoginRequest{Email: "ana@example.com", Password: "wrong-one"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/auth/login", "", model.LoginRequest{Email: "ana@example.com", Password: "secreto1"})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp model.LoginResponse
	decode(t, rec, &resp)

	rec = do(t, h, http.MethodGet, "/v1/me", resp.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "passwordHash")
}

func TestRouter_UpdateProfile(t *testing.T) {
	h := newTestRouter(t)
	token := register(t, h, "luis@example.com")

	theme := model.Preferences{Theme: "dark", FontSize: "large"}
	rec := do(t, h, http.MethodPut, "/v1/me", token, model.ProfileUpdate{Preferences: &theme})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	bad := model.Preferences{Theme: "neon", FontSize: "large"}
	rec = do(t, h, http.MethodPut, "/v1/me", token, model.ProfileUpdate{Preferences: &bad})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_EvaluationHistoryAndReport(t *testing.T) {
	h := newTestRouter(t)
	token := register(t, h, "marta@example.com")

	req := model.EvaluationRequest{
		ScoreRequest: qchat.ScoreRequest{AgeGroupID: "toddlers", Answers: qchat.AnswerSet{1: 1}},
		Child:        qchat.Child{Name: "Leo", AgeMonths: 24},
	}
	rec := do(t, h, http.MethodPost, "/v1/evaluations", token, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var result model.Result
	decode(t, rec, &result)
	require.NotEmpty(t, result.ID)
	assert.Equal(t, qchat.RiskLow, result.RiskLevel)

	req.Child = qchat.Child{}
	rec = do(t, h, http.MethodPost, "/v1/evaluations", token, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/results?limit=5", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []model.ResultSummary
	decode(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Leo", list[0].ChildName)

	rec = do(t, h, http.MethodGet, "/v1/results?limit=-1", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/results/"+result.ID+"/report.pdf", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	other := register(t, h, "otro@example.com")
	rec = do(t, h, http.MethodGet, "/v1/results/"+result.ID, other, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/results/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var dash model.Dashboard
	decode(t, rec, &dash)
	assert.Equal(t, 1, dash.TotalResults)
	assert.Equal(t, 1, dash.ByRiskLevel[qchat.RiskLow])
}

func TestRouter_SessionFlow(t *testing.T) {
	h := newTestRouter(t)
	token := register(t, h, "pablo@example.com")

	rec := do(t, h, http.MethodPost, "/v1/sessions", token, model.StartSessionRequest{
		AgeGroupID: "schoolage",
		Child:      qchat.Child{Name: "Sofía", AgeMonths: 80},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var view model.SessionView
	decode(t, rec, &view)
	require.Equal(t, qchat.FlowInProgress, view.Status)
	path := "/v1/sessions/" + view.ID

	rec = do(t, h, http.MethodPost, path+"/previous", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, path+"/answers", token, model.AnswerRequest{OptionIndex: 99})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for i := 0; i < view.TotalQuestions; i++ {
		rec = do(t, h, http.MethodPost, path+"/answers", token, model.AnswerRequest{OptionIndex: 0})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	decode(t, rec, &view)
	assert.Equal(t, qchat.FlowCompleted, view.Status)
	require.NotNil(t, view.Result)
	assert.Equal(t, 0, view.Result.TotalScore)
	assert.NotEmpty(t, view.ResultID)

	other := register(t, h, "intrusa@example.com")
	rec = do(t, h, http.MethodGet, path, other, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_AuthRateLimited(t *testing.T) {
	h := newTestRouter(t, func(c *config.Config) {
		c.Auth.RateLimit = 0.001
		c.Auth.RateBurst = 2
	})

	var last int
	for i := 0; i < 3; i++ {
		rec := do(t, h, http.MethodPost, "/v1/auth/login", "", model.LoginRequest{Email: "x@example.com", Password: "nope"})
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestRouter_Logout(t *testing.T) {
	h := newTestRouter(t)
	token := register(t, h, "salida@example.com")

	rec := do(t, h, http.MethodGet, "/v1/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = do(t, h, http.MethodPost, "/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
