package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/jobtrack-backend/internal/platform/logger"
)

func TestLoginAttemptKeyFoldsAndHashes(t *testing.T) {
	a := loginAttemptKey("jobtrack", "Ada@Example.com ")
	b := loginAttemptKey("jobtrack", "ada@example.com")
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "jobtrack:login_attempts:"))
	assert.NotContains(t, a, "example")
	assert.NotEqual(t, a, loginAttemptKey("jobtrack", "bob@example.com"))
}

func TestNewRedisLoginLimiterWithoutClientIsNoop(t *testing.T) {
	l := NewRedisLoginLimiter(nil, logger.Nop(), "", 5, time.Minute)
	_, ok := l.(noopLoginLimiter)
	require.True(t, ok)

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		require.NoError(t, l.RecordFailure(ctx, "a@example.com"))
	}
	allowed, err := l.Allow(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, allowed)
	require.NoError(t, l.Reset(ctx, "a@example.com"))
}
