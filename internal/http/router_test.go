package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/jobtrack-backend/internal/data/repos"
	"github.com/yungbote/jobtrack-backend/internal/data/repos/testutil"
	httpH "github.com/yungbote/jobtrack-backend/internal/http/handlers"
	httpMW "github.com/yungbote/jobtrack-backend/internal/http/middleware"
	"github.com/yungbote/jobtrack-backend/internal/observability"
	"github.com/yungbote/jobtrack-backend/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	log := testutil.Logger(t)
	metrics := observability.NewMetrics()

	userRepo := repos.NewUserRepo(db, log)
	tokenRepo := repos.NewUserTokenRepo(db, log)
	skillRepo := repos.NewUserSkillRepo(db, log)
	appRepo := repos.NewJobApplicationRepo(db, log)

	authService := services.NewAuthService(db, log, userRepo, tokenRepo, services.NewNoopLoginLimiter(), metrics, "router-secret", 15*time.Minute, time.Hour)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	return NewRouter(RouterConfig{
		Log:                log,
		Metrics:            metrics,
		CORSOrigins:        []string{"http://localhost:3000"},
		AuthHandler:        httpH.NewAuthHandler(authService),
		AuthMiddleware:     httpMW.NewAuthMiddleware(log, authService),
		UserHandler:        httpH.NewUserHandler(services.NewUserService(db, log, userRepo)),
		ApplicationHandler: httpH.NewApplicationHandler(services.NewApplicationService(db, log, appRepo)),
		SkillHandler:       httpH.NewSkillHandler(services.NewSkillService(db, log, skillRepo, appRepo, metrics)),
		HealthHandler:      httpH.NewHealthHandler(sqlDB),
	})
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func register(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	rec := do(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Ada", "email": email, "password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var payload struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refresh_token"`
		User         struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.NotEmpty(t, payload.Token)
	require.NotEmpty(t, payload.RefreshToken)
	assert.Equal(t, strings.ToLower(strings.TrimSpace(email)), payload.User.Email)
	return payload.Token
}

func TestGapAnalysisEndToEnd(t *testing.T) {
	r := newTestRouter(t)
	token := register(t, r, "ada@example.com")

	rec := do(t, r, http.MethodPost, "/api/skills", token, map[string]string{"name": "JavaScript", "level": "beginner"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	apps := []map[string]any{
		{
			"company": "Acme", "position": "Engineer", "jobDescription": "Build things",
			"requiredSkills": []map[string]string{
				{"name": "JavaScript", "importance": "required"},
				{"name": "AWS", "importance": "required"},
			},
		},
		{
			"company": "Globex", "position": "Platform", "jobDescription": "Run things",
			"requiredSkills": []map[string]string{
				{"name": "AWS", "importance": "required"},
				{"name": "Docker", "importance": "preferred"},
			},
		},
	}
	for _, app := range apps {
		rec = do(t, r, http.MethodPost, "/api/applications", token, app)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = do(t, r, http.MethodGet, "/api/skills/gap-analysis", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var gaps []struct {
		Name         string `json:"name"`
		Importance   string `json:"importance"`
		Status       string `json:"status"`
		Count        int    `json:"count"`
		CurrentLevel string `json:"currentLevel"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gaps))
	require.Len(t, gaps, 3)

	assert.Equal(t, "AWS", gaps[0].Name)
	assert.Equal(t, "missing", gaps[0].Status)
	assert.Equal(t, 2, gaps[0].Count)

	assert.Equal(t, "JavaScript", gaps[1].Name)
	assert.Equal(t, "needs_improvement", gaps[1].Status)
	assert.Equal(t, "beginner", gaps[1].CurrentLevel)

	assert.Equal(t, "Docker", gaps[2].Name)
	assert.Equal(t, "preferred", gaps[2].Importance)
	assert.Empty(t, gaps[2].CurrentLevel)

	rec = do(t, r, http.MethodGet, "/api/applications/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"_id":"applied","status":"applied","count":2}]`, rec.Body.String())
}

func TestGapAnalysisEmptyForNewUser(t *testing.T) {
	r := newTestRouter(t)
	token := register(t, r, "  New.User@Example.com ")

	rec := do(t, r, http.MethodGet, "/api/skills/gap-analysis", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/api/skills", "/api/applications", "/api/skills/gap-analysis", "/api/auth/profile"} {
		rec := do(t, r, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.JSONEq(t, `{"error":{"message":"no token, authorization denied: unauthorized","code":"unauthorized"}}`, rec.Body.String(), path)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	r := newTestRouter(t)
	token := register(t, r, "bye@example.com")

	rec := do(t, r, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, r, http.MethodGet, "/api/skills", token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUsersAreIsolated(t *testing.T) {
	r := newTestRouter(t)
	alice := register(t, r, "alice@example.com")
	bob := register(t, r, "bob@example.com")

	rec := do(t, r, http.MethodPost, "/api/applications", alice, map[string]any{
		"company": "Acme", "position": "Engineer", "jobDescription": "Build things",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(t, r, http.MethodGet, "/api/applications", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	rec = do(t, r, http.MethodDelete, "/api/applications/"+created.ID, bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, r, http.MethodDelete, "/api/applications/"+created.ID, alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Application deleted successfully"}`, rec.Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodGet, "/healthcheck", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, r, http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	_ = do(t, r, http.MethodGet, "/api/skills", "", nil)
	rec = do(t, r, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "api_requests_total")
}
