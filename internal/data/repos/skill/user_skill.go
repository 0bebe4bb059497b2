package skill

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/jobtrack-backend/internal/data/dberr"
	types "github.com/yungbote/jobtrack-backend/internal/domain"
	"github.com/yungbote/jobtrack-backend/internal/pkg/dbctx"
	"github.com/yungbote/jobtrack-backend/internal/platform/logger"
)

type UserSkillRepo interface {
	ListByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.UserSkill, error)
	GetByNameKey(dbc dbctx.Context, userID uuid.UUID, nameKey string) (*types.UserSkill, error)
	Upsert(dbc dbctx.Context, row *types.UserSkill) error
	DeleteByName(dbc dbctx.Context, userID uuid.UUID, name string) (int64, error)
}

type userSkillRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserSkillRepo(db *gorm.DB, baseLog *logger.Logger) UserSkillRepo {
	repoLog := baseLog.With("repo", "UserSkillRepo")
	return &userSkillRepo{db: db, log: repoLog}
}

func (r *userSkillRepo) ListByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.UserSkill, error) {
	results := []*types.UserSkill{}
	if userID == uuid.Nil {
		return results, nil
	}
	if err := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("name_key ASC").
		Find(&results).Error; err != nil {
		return nil, dberr.Wrap("list user skills", err)
	}
	return results, nil
}

func (r *userSkillRepo) GetByNameKey(dbc dbctx.Context, userID uuid.UUID, nameKey string) (*types.UserSkill, error) {
	var results []*types.UserSkill
	if err := dbc.DB(r.db).
		Where("user_id = ? AND name_key = ?", userID, nameKey).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, dberr.Wrap("get user skill", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// Upsert inserts row or, when the user already has a skill with the same folded name,
// overwrites only its level. The stored display name is kept.
func (r *userSkillRepo) Upsert(dbc dbctx.Context, row *types.UserSkill) error {
	if row == nil {
		return nil
	}
	if err := dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "name_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"level", "updated_at"}),
		}).
		Create(row).Error; err != nil {
		return dberr.Wrap("upsert user skill", err)
	}
	return nil
}

// DeleteByName removes the skill whose stored name equals name exactly.
func (r *userSkillRepo) DeleteByName(dbc dbctx.Context, userID uuid.UUID, name string) (int64, error) {
	res := dbc.DB(r.db).
		Where("user_id = ? AND name = ?", userID, name).
		Delete(&types.UserSkill{})
	if res.Error != nil {
		return 0, dberr.Wrap("delete user skill", res.Error)
	}
	return res.RowsAffected, nil
}
