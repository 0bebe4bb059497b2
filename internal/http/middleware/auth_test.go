package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/jobtrack-backend/internal/platform/apierr"
	"github.com/yungbote/jobtrack-backend/internal/platform/ctxutil"
	"github.com/yungbote/jobtrack-backend/internal/platform/logger"
	"github.com/yungbote/jobtrack-backend/internal/services"
)

type fakeAuthService struct {
	services.AuthService
	userID uuid.UUID
	valid  string
}

func (f *fakeAuthService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString != f.valid {
		return ctx, apierr.Unauthorized("invalid_token", "token is not valid")
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: f.userID, TokenString: tokenString}), nil
}

func (f *fakeAuthService) GetAccessTTL() time.Duration { return time.Minute }

func newAuthRouter(svc services.AuthService) (*gin.Engine, *uuid.UUID) {
	gin.SetMode(gin.TestMode)
	seen := new(uuid.UUID)
	r := gin.New()
	r.Use(NewAuthMiddleware(logger.Nop(), svc).RequireAuth())
	r.GET("/private", func(c *gin.Context) {
		*seen = ctxutil.UserID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	return r, seen
}

func TestRequireAuth(t *testing.T) {
	userID := uuid.New()
	svc := &fakeAuthService{userID: userID, valid: "good-token"}

	cases := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{"missing header", "", http.StatusUnauthorized, "unauthorized"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "unauthorized"},
		{"invalid token", "Bearer bad-token", http.StatusUnauthorized, "invalid_token"},
		{"valid token", "Bearer good-token", http.StatusNoContent, ""},
		{"case-insensitive scheme", "bearer good-token", http.StatusNoContent, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, seen := newAuthRouter(svc)
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, tc.wantStatus)
			}
			if tc.wantCode != "" && !strings.Contains(rec.Body.String(), `"code":"`+tc.wantCode+`"`) {
				t.Fatalf("unexpected body: %s", rec.Body.String())
			}
			if tc.wantStatus == http.StatusNoContent && *seen != userID {
				t.Fatalf("user id not attached: got=%s want=%s", *seen, userID)
			}
		})
	}
}

func TestRequireAuthForbidsAnonymousContext(t *testing.T) {
	svc := &fakeAuthService{userID: uuid.Nil, valid: "nil-user"}
	r, _ := newAuthRouter(svc)
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer nil-user")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusForbidden)
	}
}
