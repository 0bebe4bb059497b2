package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/jobtrack-backend/internal/data/repos"
	types "github.com/yungbote/jobtrack-backend/internal/domain"
	"github.com/yungbote/jobtrack-backend/internal/domain/skill"
	"github.com/yungbote/jobtrack-backend/internal/observability"
	"github.com/yungbote/jobtrack-backend/internal/pkg/dbctx"
	"github.com/yungbote/jobtrack-backend/internal/platform/apierr"
	"github.com/yungbote/jobtrack-backend/internal/platform/logger"
	"github.com/yungbote/jobtrack-backend/internal/skillgap"
)

type SkillService interface {
	List(ctx context.Context) ([]*types.UserSkill, error)
	Upsert(ctx context.Context, name, level string) ([]*types.UserSkill, error)
	Delete(ctx context.Context, name string) ([]*types.UserSkill, error)
	GapAnalysis(ctx context.Context) ([]skillgap.GapEntry, error)
}

type skillService struct {
	db        *gorm.DB
	log       *logger.Logger
	skillRepo repos.UserSkillRepo
	appRepo   repos.JobApplicationRepo
	metrics   *observability.Metrics
}

func NewSkillService(
	db *gorm.DB,
	log *logger.Logger,
	skillRepo repos.UserSkillRepo,
	appRepo repos.JobApplicationRepo,
	metrics *observability.Metrics,
) SkillService {
	serviceLog := log.With("service", "SkillService")
	return &skillService{
		db:        db,
		log:       serviceLog,
		skillRepo: skillRepo,
		appRepo:   appRepo,
		metrics:   metrics,
	}
}

func (s *skillService) List(ctx context.Context) ([]*types.UserSkill, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	return s.skillRepo.ListByUserID(dbctx.Context{Ctx: ctx}, userID)
}

// Upsert adds a skill or, when the user already has one whose name matches ignoring
// case, sets its level. The returned list is the full inventory after the write.
func (s *skillService) Upsert(ctx context.Context, name, level string) ([]*types.UserSkill, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.BadRequest("invalid_skill", "skill name is required")
	}
	parsed, err := skill.ParseLevel(level)
	if err != nil {
		return nil, apierr.BadRequest("invalid_skill", "invalid skill level")
	}

	var out []*types.UserSkill
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := s.skillRepo.GetByNameKey(dbc, userID, skill.NameKey(name))
		if err != nil {
			return err
		}
		if err := s.skillRepo.Upsert(dbc, &types.UserSkill{
			UserID: userID,
			Name:   name,
			Level:  parsed,
		}); err != nil {
			return err
		}
		s.log.Debug("skill saved", "user_id", userID.String(), "created", existing == nil)
		out, err = s.skillRepo.ListByUserID(dbc, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the skill whose stored name equals name exactly. Deleting a name the
// user does not have is not an error.
func (s *skillService) Delete(ctx context.Context, name string) ([]*types.UserSkill, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}

	var out []*types.UserSkill
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := s.skillRepo.DeleteByName(dbc, userID, name); err != nil {
			return err
		}
		out, err = s.skillRepo.ListByUserID(dbc, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GapAnalysis loads the caller's skills and applications concurrently and ranks what is
// missing. Each call reads fresh snapshots.
func (s *skillService) GapAnalysis(ctx context.Context) ([]skillgap.GapEntry, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	ctx, span := observability.Tracer().Start(ctx, "SkillService.GapAnalysis")
	defer span.End()
	start := time.Now()

	var (
		userSkills []*types.UserSkill
		userApps   []*types.JobApplication
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.skillRepo.ListByUserID(dbctx.Context{Ctx: gctx}, userID)
		if err != nil {
			return fmt.Errorf("load skills: %w", err)
		}
		userSkills = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.appRepo.ListByUserIDInCreationOrder(dbctx.Context{Ctx: gctx}, userID)
		if err != nil {
			return fmt.Errorf("load applications: %w", err)
		}
		userApps = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		s.metrics.IncGapAnalysisError()
		span.RecordError(err)
		span.SetStatus(codes.Error, "load inputs")
		return nil, err
	}

	gaps := skillgap.Analyze(skillgap.FromUserSkills(userSkills), skillgap.FromApplications(userApps))
	summary := skillgap.Summarize(gaps)

	s.metrics.ObserveGapAnalysis(time.Since(start), summary.Missing, summary.NeedsImprovement)
	span.SetAttributes(
		attribute.Int("skillgap.skills", len(userSkills)),
		attribute.Int("skillgap.applications", len(userApps)),
		attribute.Int("skillgap.gaps", len(gaps)),
	)
	s.log.Debug("skill gap analysis",
		"user_id", userID.String(),
		"skills", len(userSkills),
		"applications", len(userApps),
		"missing", summary.Missing,
		"needs_improvement", summary.NeedsImprovement,
		"required_missing", summary.RequiredMissing,
	)
	return gaps, nil
}
