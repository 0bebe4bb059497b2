package application

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/jobtrack-backend/internal/data/dberr"
	types "github.com/yungbote/jobtrack-backend/internal/domain"
	"github.com/yungbote/jobtrack-backend/internal/pkg/dbctx"
	"github.com/yungbote/jobtrack-backend/internal/platform/logger"
)

type JobApplicationRepo interface {
	Create(dbc dbctx.Context, apps []*types.JobApplication) ([]*types.JobApplication, error)
	ListByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.JobApplication, error)
	ListByUserIDInCreationOrder(dbc dbctx.Context, userID uuid.UUID) ([]*types.JobApplication, error)
	GetByIDForUser(dbc dbctx.Context, userID, appID uuid.UUID) (*types.JobApplication, error)
	Update(dbc dbctx.Context, app *types.JobApplication) error
	DeleteByIDForUser(dbc dbctx.Context, userID, appID uuid.UUID) (int64, error)
	CountByStatus(dbc dbctx.Context, userID uuid.UUID) ([]types.StatusCount, error)
}

type jobApplicationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJobApplicationRepo(db *gorm.DB, baseLog *logger.Logger) JobApplicationRepo {
	repoLog := baseLog.With("repo", "JobApplicationRepo")
	return &jobApplicationRepo{db: db, log: repoLog}
}

func (r *jobApplicationRepo) Create(dbc dbctx.Context, apps []*types.JobApplication) ([]*types.JobApplication, error) {
	if len(apps) == 0 {
		return []*types.JobApplication{}, nil
	}
	if err := dbc.DB(r.db).Create(&apps).Error; err != nil {
		return nil, dberr.Wrap("create job applications", err)
	}
	return apps, nil
}

// ListByUserID returns the user's applications, most recent application date first.
func (r *jobApplicationRepo) ListByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.JobApplication, error) {
	results := []*types.JobApplication{}
	if userID == uuid.Nil {
		return results, nil
	}
	if err := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Order("application_date DESC").
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, dberr.Wrap("list job applications", err)
	}
	return results, nil
}

// ListByUserIDInCreationOrder returns the user's applications oldest record first,
// regardless of application date.
func (r *jobApplicationRepo) ListByUserIDInCreationOrder(dbc dbctx.Context, userID uuid.UUID) ([]*types.JobApplication, error) {
	results := []*types.JobApplication{}
	if userID == uuid.Nil {
		return results, nil
	}
	if err := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, dberr.Wrap("list job applications in creation order", err)
	}
	return results, nil
}

func (r *jobApplicationRepo) GetByIDForUser(dbc dbctx.Context, userID, appID uuid.UUID) (*types.JobApplication, error) {
	var results []*types.JobApplication
	if err := dbc.DB(r.db).
		Where("id = ? AND user_id = ?", appID, userID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, dberr.Wrap("get job application", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *jobApplicationRepo) Update(dbc dbctx.Context, app *types.JobApplication) error {
	if app == nil {
		return nil
	}
	if err := dbc.DB(r.db).Save(app).Error; err != nil {
		return dberr.Wrap("update job application", err)
	}
	return nil
}

func (r *jobApplicationRepo) DeleteByIDForUser(dbc dbctx.Context, userID, appID uuid.UUID) (int64, error) {
	res := dbc.DB(r.db).
		Where("id = ? AND user_id = ?", appID, userID).
		Delete(&types.JobApplication{})
	if res.Error != nil {
		return 0, dberr.Wrap("delete job application", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *jobApplicationRepo) CountByStatus(dbc dbctx.Context, userID uuid.UUID) ([]types.StatusCount, error) {
	results := []types.StatusCount{}
	if err := dbc.DB(r.db).
		Model(&types.JobApplication{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Order("status ASC").
		Scan(&results).Error; err != nil {
		return nil, dberr.Wrap("count job applications by status", err)
	}
	return results, nil
}
