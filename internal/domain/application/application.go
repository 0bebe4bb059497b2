package application

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Status string

const (
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusOffered      Status = "offered"
	StatusRejected     Status = "rejected"
	StatusAccepted     Status = "accepted"
)

var Statuses = []Status{StatusApplied, StatusInterviewing, StatusOffered, StatusRejected, StatusAccepted}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("invalid application status %q", raw)
	}
	return s, nil
}

// Importance tiers how critical a required skill is for one application.
type Importance string

const (
	ImportanceRequired  Importance = "required"
	ImportancePreferred Importance = "preferred"
	ImportanceOptional  Importance = "optional"
)

func (i Importance) Valid() bool {
	switch i {
	case ImportanceRequired, ImportancePreferred, ImportanceOptional:
		return true
	default:
		return false
	}
}

func ParseImportance(raw string) (Importance, error) {
	i := Importance(strings.ToLower(strings.TrimSpace(raw)))
	if !i.Valid() {
		return "", fmt.Errorf("invalid skill importance %q", raw)
	}
	return i, nil
}

type RequiredSkill struct {
	Name       string     `json:"name"`
	Importance Importance `json:"importance"`
}

type Contact struct {
	Name  string `gorm:"column:contact_name" json:"name,omitempty"`
	Email string `gorm:"column:contact_email" json:"email,omitempty"`
	Phone string `gorm:"column:contact_phone" json:"phone,omitempty"`
}

type Offer struct {
	Salary    *float64   `gorm:"column:offer_salary" json:"salary,omitempty"`
	Benefits  string     `gorm:"column:offer_benefits" json:"benefits,omitempty"`
	StartDate *time.Time `gorm:"column:offer_start_date" json:"startDate,omitempty"`
}

type JobApplication struct {
	ID              uuid.UUID                          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID                          `gorm:"type:uuid;index;not null" json:"userId"`
	Company         string                             `gorm:"not null;column:company" json:"company"`
	Position        string                             `gorm:"not null;column:position" json:"position"`
	JobDescription  string                             `gorm:"type:text;not null;column:job_description" json:"jobDescription"`
	Status          Status                             `gorm:"not null;column:status;index" json:"status"`
	ApplicationDate time.Time                          `gorm:"not null;column:application_date" json:"applicationDate"`
	Deadline        *time.Time                         `gorm:"column:deadline" json:"deadline,omitempty"`
	RequiredSkills  datatypes.JSONSlice[RequiredSkill] `gorm:"column:required_skills" json:"requiredSkills"`
	Contact         Contact                            `gorm:"embedded" json:"contact"`
	Notes           string                             `gorm:"type:text;column:notes" json:"notes,omitempty"`
	InterviewDate   *time.Time                         `gorm:"column:interview_date" json:"interviewDate,omitempty"`
	Offer           Offer                              `gorm:"embedded" json:"offerDetails"`
	CreatedAt       time.Time                          `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time                          `gorm:"not null" json:"updatedAt"`
	DeletedAt       gorm.DeletedAt                     `gorm:"index" json:"-"`
}

func (JobApplication) TableName() string { return "job_application" }

func (a *JobApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = StatusApplied
	}
	if a.ApplicationDate.IsZero() {
		a.ApplicationDate = time.Now().UTC()
	}
	if a.RequiredSkills == nil {
		a.RequiredSkills = datatypes.JSONSlice[RequiredSkill]{}
	}
	return nil
}

// StatusCount is one row of the per-status breakdown of a user's applications.
type StatusCount struct {
	Status Status `json:"status"`
	Count  int64  `json:"count"`
}

// MarshalJSON also writes the status under "_id", the key dashboard clients group by.
func (c StatusCount) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID     Status `json:"_id"`
		Status Status `json:"status"`
		Count  int64  `json:"count"`
	}{ID: c.Status, Status: c.Status, Count: c.Count})
}
