package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/jobtrack-backend/internal/data/repos"
	types "github.com/yungbote/jobtrack-backend/internal/domain"
	"github.com/yungbote/jobtrack-backend/internal/domain/application"
	"github.com/yungbote/jobtrack-backend/internal/pkg/dbctx"
	"github.com/yungbote/jobtrack-backend/internal/platform/apierr"
	"github.com/yungbote/jobtrack-backend/internal/platform/logger"
)

type RequiredSkillInput struct {
	Name       string `json:"name"`
	Importance string `json:"importance"`
}

// OptionalTime is a date field that tells an absent key apart from an explicit null.
// Set is true whenever the key was present; Value is nil when it was null.
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

// SetTime returns an OptionalTime holding t.
func SetTime(t time.Time) OptionalTime {
	return OptionalTime{Set: true, Value: &t}
}

func (o *OptionalTime) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(b, &t); err != nil {
		return err
	}
	o.Value = &t
	return nil
}

// ApplicationInput is the client payload for create and update. A nil field was not
// supplied; on update it leaves the stored value unchanged. Deadline and InterviewDate
// can also be cleared by sending null.
type ApplicationInput struct {
	Company         *string              `json:"company"`
	Position        *string              `json:"position"`
	JobDescription  *string              `json:"jobDescription"`
	Status          *string              `json:"status"`
	ApplicationDate *time.Time           `json:"applicationDate"`
	Deadline        OptionalTime         `json:"deadline"`
	RequiredSkills  []RequiredSkillInput `json:"requiredSkills"`
	Contact         *types.Contact       `json:"contact"`
	Notes           *string              `json:"notes"`
	InterviewDate   OptionalTime         `json:"interviewDate"`
	Offer           *types.Offer         `json:"offerDetails"`
}

type ApplicationService interface {
	List(ctx context.Context) ([]*types.JobApplication, error)
	Create(ctx context.Context, in ApplicationInput) (*types.JobApplication, error)
	Update(ctx context.Context, appID uuid.UUID, in ApplicationInput) (*types.JobApplication, error)
	Delete(ctx context.Context, appID uuid.UUID) error
	Stats(ctx context.Context) ([]types.StatusCount, error)
}

type applicationService struct {
	db      *gorm.DB
	log     *logger.Logger
	appRepo repos.JobApplicationRepo
}

func NewApplicationService(db *gorm.DB, log *logger.Logger, appRepo repos.JobApplicationRepo) ApplicationService {
	serviceLog := log.With("service", "ApplicationService")
	return &applicationService{
		db:      db,
		log:     serviceLog,
		appRepo: appRepo,
	}
}

func (s *applicationService) List(ctx context.Context) ([]*types.JobApplication, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	return s.appRepo.ListByUserID(dbctx.Context{Ctx: ctx}, userID)
}

func (s *applicationService) Create(ctx context.Context, in ApplicationInput) (*types.JobApplication, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkRequiredText(in, true); err != nil {
		return nil, err
	}

	app := &types.JobApplication{UserID: userID}
	if err := applyInput(app, in); err != nil {
		return nil, err
	}
	if _, err := s.appRepo.Create(dbctx.Context{Ctx: ctx}, []*types.JobApplication{app}); err != nil {
		return nil, err
	}
	s.log.Debug("application created", "user_id", userID.String(), "application_id", app.ID.String())
	return app, nil
}

func (s *applicationService) Update(ctx context.Context, appID uuid.UUID, in ApplicationInput) (*types.JobApplication, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkRequiredText(in, false); err != nil {
		return nil, err
	}

	var out *types.JobApplication
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		app, err := s.appRepo.GetByIDForUser(dbc, userID, appID)
		if err != nil {
			return err
		}
		if app == nil {
			return apierr.NotFound("application_not_found", "application not found")
		}
		if err := applyInput(app, in); err != nil {
			return err
		}
		if err := s.appRepo.Update(dbc, app); err != nil {
			return err
		}
		out = app
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *applicationService) Delete(ctx context.Context, appID uuid.UUID) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return err
	}
	n, err := s.appRepo.DeleteByIDForUser(dbctx.Context{Ctx: ctx}, userID, appID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apierr.NotFound("application_not_found", "application not found")
	}
	return nil
}

// Stats returns one row per status the user has at least one application in.
func (s *applicationService) Stats(ctx context.Context) ([]types.StatusCount, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	return s.appRepo.CountByStatus(dbctx.Context{Ctx: ctx}, userID)
}

// checkRequiredText rejects blank company, position or job description. On create the
// fields must also be present.
func checkRequiredText(in ApplicationInput, mustBePresent bool) error {
	for _, f := range []struct {
		name string
		val  *string
	}{
		{"company", in.Company},
		{"position", in.Position},
		{"jobDescription", in.JobDescription},
	} {
		if f.val == nil {
			if mustBePresent {
				return apierr.BadRequest("missing_fields", f.name+" is required")
			}
			continue
		}
		if strings.TrimSpace(*f.val) == "" {
			return apierr.BadRequest("missing_fields", f.name+" is required")
		}
	}
	return nil
}

func applyInput(app *types.JobApplication, in ApplicationInput) error {
	if in.Company != nil {
		app.Company = strings.TrimSpace(*in.Company)
	}
	if in.Position != nil {
		app.Position = strings.TrimSpace(*in.Position)
	}
	if in.JobDescription != nil {
		app.JobDescription = *in.JobDescription
	}
	if in.Status != nil {
		status, err := application.ParseStatus(*in.Status)
		if err != nil {
			return apierr.BadRequest("invalid_status", err.Error())
		}
		app.Status = status
	}
	if in.ApplicationDate != nil {
		app.ApplicationDate = in.ApplicationDate.UTC()
	}
	if in.Deadline.Set {
		app.Deadline = in.Deadline.Value
	}
	if in.RequiredSkills != nil {
		skills, err := normalizeRequiredSkills(in.RequiredSkills)
		if err != nil {
			return err
		}
		app.RequiredSkills = skills
	}
	if in.Contact != nil {
		app.Contact = *in.Contact
	}
	if in.Notes != nil {
		app.Notes = *in.Notes
	}
	if in.InterviewDate.Set {
		app.InterviewDate = in.InterviewDate.Value
	}
	if in.Offer != nil {
		app.Offer = *in.Offer
	}
	return nil
}

// normalizeRequiredSkills trims names and validates importances. A missing importance
// means required.
func normalizeRequiredSkills(in []RequiredSkillInput) ([]types.RequiredSkill, error) {
	out := make([]types.RequiredSkill, 0, len(in))
	for i, rs := range in {
		name := strings.TrimSpace(rs.Name)
		if name == "" {
			return nil, apierr.BadRequest("invalid_required_skill", fmt.Sprintf("requiredSkills[%d]: name is required", i))
		}
		importance := application.ImportanceRequired
		if strings.TrimSpace(rs.Importance) != "" {
			parsed, err := application.ParseImportance(rs.Importance)
			if err != nil {
				return nil, apierr.BadRequest("invalid_required_skill", fmt.Sprintf("requiredSkills[%d]: %v", i, err))
			}
			importance = parsed
		}
		out = append(out, types.RequiredSkill{Name: name, Importance: importance})
	}
	return out, nil
}
