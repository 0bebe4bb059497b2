package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/jobtrack-backend/internal/data/repos"
	"github.com/yungbote/jobtrack-backend/internal/data/repos/testutil"
	"github.com/yungbote/jobtrack-backend/internal/observability"
	"github.com/yungbote/jobtrack-backend/internal/platform/apierr"
	"github.com/yungbote/jobtrack-backend/internal/platform/ctxutil"
	"github.com/yungbote/jobtrack-backend/internal/platform/logger"
)

const testSecret = "test-secret"

type testEnv struct {
	db        *gorm.DB
	log       *logger.Logger
	metrics   *observability.Metrics
	users     repos.UserRepo
	tokens    repos.UserTokenRepo
	skills    repos.UserSkillRepo
	apps      repos.JobApplicationRepo
	auth      AuthService
	userSvc   UserService
	appSvc    ApplicationService
	skillSvc  SkillService
	limiter   *fakeLimiter
	refreshTT time.Duration
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithRefreshTTL(t, time.Hour)
}

func newTestEnvWithRefreshTTL(t *testing.T, refreshTTL time.Duration) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	env := &testEnv{
		db:        db,
		log:       log,
		metrics:   observability.NewMetrics(),
		users:     repos.NewUserRepo(db, log),
		tokens:    repos.NewUserTokenRepo(db, log),
		skills:    repos.NewUserSkillRepo(db, log),
		apps:      repos.NewJobApplicationRepo(db, log),
		limiter:   &fakeLimiter{max: 3, failures: map[string]int{}},
		refreshTT: refreshTTL,
	}
	env.auth = NewAuthService(db, log, env.users, env.tokens, env.limiter, env.metrics, testSecret, 15*time.Minute, refreshTTL)
	env.userSvc = NewUserService(db, log, env.users)
	env.appSvc = NewApplicationService(db, log, env.apps)
	env.skillSvc = NewSkillService(db, log, env.skills, env.apps, env.metrics)
	return env
}

// register creates an account and returns a request context authenticated as it.
func (e *testEnv) register(t *testing.T, email string) (context.Context, *AuthResult) {
	t.Helper()
	res, err := e.auth.Register(context.Background(), "Test User", email, "hunter22")
	require.NoError(t, err)
	ctx, err := e.auth.SetContextFromToken(context.Background(), res.AccessToken)
	require.NoError(t, err)
	return ctx, res
}

func userCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: userID})
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	require.Error(t, err)
	ae := apierr.From(err)
	require.Equal(t, status, ae.Status, "unexpected status for %v", err)
	require.Equal(t, code, ae.Code, "unexpected code for %v", err)
}

func strPtr(s string) *string { return &s }

type fakeLimiter struct {
	max      int
	failures map[string]int
	resets   int
}

func (f *fakeLimiter) Allow(_ context.Context, email string) (bool, error) {
	return f.failures[email] < f.max, nil
}

func (f *fakeLimiter) RecordFailure(_ context.Context, email string) error {
	f.failures[email]++
	return nil
}

func (f *fakeLimiter) Reset(_ context.Context, email string) error {
	delete(f.failures, email)
	f.resets++
	return nil
}
