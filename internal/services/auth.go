package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/jobtrack-backend/internal/data/repos"
	types "github.com/yungbote/jobtrack-backend/internal/domain"
	"github.com/yungbote/jobtrack-backend/internal/observability"
	"github.com/yungbote/jobtrack-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/jobtrack-backend/internal/pkg/errors"
	"github.com/yungbote/jobtrack-backend/internal/platform/apierr"
	"github.com/yungbote/jobtrack-backend/internal/platform/ctxutil"
	"github.com/yungbote/jobtrack-backend/internal/platform/logger"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

// AuthResult is what register, login and refresh hand back to the client.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	User         *types.User
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	limiter       LoginLimiter
	metrics       *observability.Metrics
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	limiter LoginLimiter,
	metrics *observability.Metrics,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	if limiter == nil {
		limiter = NewNoopLoginLimiter()
	}
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		limiter:       limiter,
		metrics:       metrics,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return apierr.BadRequest("missing_fields", "email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apierr.BadRequest("invalid_email", "email is not a valid address")
	}
	return nil
}

func (as *authService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		as.metrics.IncAuthAttempt("register", "invalid")
		return nil, apierr.BadRequest("missing_fields", "name, email and password are required")
	}
	if err := validateEmail(email); err != nil {
		as.metrics.IncAuthAttempt("register", "invalid")
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var out *AuthResult
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		exists, err := as.userRepo.EmailExists(dbc, email)
		if err != nil {
			return err
		}
		if exists {
			return apierr.Conflict("user_exists", "user already exists")
		}
		created, err := as.userRepo.Create(dbc, []*types.User{{
			Name:     name,
			Email:    email,
			Password: string(hashed),
		}})
		if err != nil {
			if errors.Is(err, pkgerrors.ErrConflict) {
				return apierr.Conflict("user_exists", "user already exists")
			}
			return err
		}
		out, err = as.issueTokens(dbc, created[0])
		return err
	})
	if err != nil {
		as.metrics.IncAuthAttempt("register", "error")
		return nil, err
	}
	as.metrics.IncAuthAttempt("register", "ok")
	as.log.Info("user registered", "user_id", out.User.ID.String())
	return out, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		as.metrics.IncAuthAttempt("login", "invalid")
		return nil, apierr.BadRequest("missing_fields", "email and password are required")
	}

	allowed, err := as.limiter.Allow(ctx, email)
	if err != nil {
		// Fail open when the limiter store is unreachable.
		as.log.Warn("login limiter unavailable", "error", err)
		allowed = true
	}
	if !allowed {
		as.metrics.IncAuthAttempt("login", "rate_limited")
		return nil, apierr.New(http.StatusTooManyRequests, "too_many_attempts",
			fmt.Errorf("too many failed login attempts, try again later: %w", pkgerrors.ErrRateLimited))
	}

	users, err := as.userRepo.GetByEmails(dbctx.Context{Ctx: ctx}, []string{email})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 || bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte(password)) != nil {
		if rerr := as.limiter.RecordFailure(ctx, email); rerr != nil {
			as.log.Warn("record login failure", "error", rerr)
		}
		as.metrics.IncAuthAttempt("login", "invalid_credentials")
		return nil, apierr.Unauthorized("invalid_credentials", "invalid credentials")
	}
	if err := as.limiter.Reset(ctx, email); err != nil {
		as.log.Warn("reset login attempts", "error", err)
	}

	var out *AuthResult
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		out, err = as.issueTokens(dbctx.Context{Ctx: ctx, Tx: tx}, users[0])
		return err
	}); err != nil {
		return nil, err
	}
	as.metrics.IncAuthAttempt("login", "ok")
	return out, nil
}

// Refresh rotates a refresh token: the presented pair is deleted and a new one issued.
func (as *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, apierr.BadRequest("missing_refresh_token", "refresh_token is required")
	}

	var out *AuthResult
	expired := false
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		found, err := as.userTokenRepo.GetByRefreshTokens(dbc, []string{refreshToken})
		if err != nil {
			return err
		}
		if len(found) == 0 || found[0] == nil {
			return apierr.Unauthorized("invalid_refresh_token", "refresh token not recognized")
		}
		existing := found[0]
		if existing.Expired(as.now()) {
			expired = true
			return as.userTokenRepo.FullDeleteByIDs(dbc, []uuid.UUID{existing.ID})
		}
		users, err := as.userRepo.GetByIDs(dbc, []uuid.UUID{existing.UserID})
		if err != nil {
			return err
		}
		if len(users) == 0 {
			return apierr.Unauthorized("invalid_refresh_token", "no user for refresh token")
		}
		if err := as.userTokenRepo.FullDeleteByIDs(dbc, []uuid.UUID{existing.ID}); err != nil {
			return err
		}
		out, err = as.issueTokens(dbc, users[0])
		return err
	})
	if err != nil {
		as.metrics.IncAuthAttempt("refresh", "error")
		return nil, err
	}
	if expired {
		as.metrics.IncAuthAttempt("refresh", "expired")
		return nil, apierr.Unauthorized("refresh_expired", "refresh token expired")
	}
	as.metrics.IncAuthAttempt("refresh", "ok")
	return out, nil
}

func (as *authService) Logout(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return apierr.Unauthorized("unauthorized", "no session in request")
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		found, err := as.userTokenRepo.GetByAccessTokens(dbc, []string{rd.TokenString})
		if err != nil {
			return err
		}
		ids := make([]uuid.UUID, 0, len(found))
		for _, t := range found {
			if t != nil {
				ids = append(ids, t.ID)
			}
		}
		return as.userTokenRepo.FullDeleteByIDs(dbc, ids)
	})
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, apierr.Unauthorized("unauthorized", "missing token")
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(as.now))
	if err != nil {
		return ctx, apierr.Unauthorized("invalid_token", "token is not valid")
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, apierr.Unauthorized("invalid_token", "token is not valid")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apierr.Unauthorized("invalid_token", "invalid subject in token")
	}

	found, err := as.userTokenRepo.GetByAccessTokens(dbctx.Context{Ctx: ctx}, []string{tokenString})
	if err != nil {
		return ctx, err
	}
	if len(found) == 0 || found[0] == nil || found[0].UserID != userID {
		return ctx, apierr.Unauthorized("token_revoked", "session has ended")
	}

	rd := &ctxutil.RequestData{
		UserID:       userID,
		TokenString:  tokenString,
		RefreshToken: found[0].RefreshToken,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) issueTokens(dbc dbctx.Context, user *types.User) (*AuthResult, error) {
	accessToken, err := as.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	row := &types.UserToken{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: uuid.New().String(),
		ExpiresAt:    as.now().Add(as.refreshTTL),
	}
	if _, err := as.userTokenRepo.Create(dbc, []*types.UserToken{row}); err != nil {
		return nil, err
	}
	return &AuthResult{
		AccessToken:  row.AccessToken,
		RefreshToken: row.RefreshToken,
		ExpiresIn:    int(as.accessTTL.Seconds()),
		User:         user,
	}, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := as.now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}
