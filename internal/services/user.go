package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/jobtrack-backend/internal/data/repos"
	types "github.com/yungbote/jobtrack-backend/internal/domain"
	"github.com/yungbote/jobtrack-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/jobtrack-backend/internal/pkg/errors"
	"github.com/yungbote/jobtrack-backend/internal/platform/apierr"
	"github.com/yungbote/jobtrack-backend/internal/platform/ctxutil"
	"github.com/yungbote/jobtrack-backend/internal/platform/logger"
)

type UserService interface {
	GetMe(dbc dbctx.Context) (*types.User, error)
	UpdateProfile(ctx context.Context, name, email string) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:       db,
		log:      serviceLog,
		userRepo: userRepo,
	}
}

func requireUserID(ctx context.Context) (uuid.UUID, error) {
	userID := ctxutil.UserID(ctx)
	if userID == uuid.Nil {
		return uuid.Nil, apierr.Unauthorized("unauthorized", "user id not set in request")
	}
	return userID, nil
}

func (us *userService) loadUser(dbc dbctx.Context, userID uuid.UUID) (*types.User, error) {
	found, err := us.userRepo.GetByIDs(dbc, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 || found[0] == nil {
		return nil, apierr.NotFound("user_not_found", "user not found")
	}
	return found[0], nil
}

func (us *userService) GetMe(dbc dbctx.Context) (*types.User, error) {
	userID, err := requireUserID(dbc.Ctx)
	if err != nil {
		return nil, err
	}
	return us.loadUser(dbc, userID)
}

// UpdateProfile changes name and email. An email held by another account is a conflict.
func (us *userService) UpdateProfile(ctx context.Context, name, email string) (*types.User, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" {
		return nil, apierr.BadRequest("missing_fields", "name is required")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	var out *types.User
	err = us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		u, err := us.loadUser(dbc, userID)
		if err != nil {
			return err
		}
		if email != u.Email {
			taken, err := us.userRepo.GetByEmails(dbc, []string{email})
			if err != nil {
				return err
			}
			for _, other := range taken {
				if other != nil && other.ID != userID {
					return apierr.Conflict("email_taken", "email is already in use")
				}
			}
		}
		if err := us.userRepo.UpdateProfile(dbc, userID, name, email); err != nil {
			if errors.Is(err, pkgerrors.ErrConflict) {
				return apierr.Conflict("email_taken", "email is already in use")
			}
			return err
		}
		out, err = us.loadUser(dbc, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	us.log.Info("profile updated", "user_id", userID.String())
	return out, nil
}
