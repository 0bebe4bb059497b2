package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/jobtrack-backend/internal/domain"
	"github.com/yungbote/jobtrack-backend/internal/domain/application"
	"github.com/yungbote/jobtrack-backend/internal/domain/skill"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Name:     "Test User",
		Email:    email,
		Password: "pw",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedApplication stores an application for userID requiring the given skills.
func SeedApplication(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, company string, skills ...types.RequiredSkill) *types.JobApplication {
	tb.Helper()
	if skills == nil {
		skills = []types.RequiredSkill{}
	}
	app := &types.JobApplication{
		ID:              uuid.New(),
		UserID:          userID,
		Company:         company,
		Position:        "Engineer",
		JobDescription:  "Build things",
		Status:          application.StatusApplied,
		ApplicationDate: time.Now().UTC(),
		RequiredSkills:  skills,
	}
	if err := tx.WithContext(ctx).Create(app).Error; err != nil {
		tb.Fatalf("seed application: %v", err)
	}
	return app
}

func SeedSkill(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string, level skill.Level) *types.UserSkill {
	tb.Helper()
	s := &types.UserSkill{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
		Level:  level,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed skill: %v", err)
	}
	return s
}

func Required(name string, importance application.Importance) types.RequiredSkill {
	return types.RequiredSkill{Name: name, Importance: importance}
}

func PtrTime(v time.Time) *time.Time { return &v }
