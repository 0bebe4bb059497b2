package skill

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Level is a self-assessed proficiency for one skill.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	default:
		return false
	}
}

func ParseLevel(raw string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(raw)))
	if !l.Valid() {
		return "", fmt.Errorf("invalid skill level %q", raw)
	}
	return l, nil
}

// UserSkill is one entry of a user's skill inventory. Name keeps the casing the user
// first typed; NameKey is the folded form that makes names unique per user.
type UserSkill struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_skill_user_name_key,priority:1" json:"-"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	NameKey   string    `gorm:"not null;column:name_key;uniqueIndex:idx_user_skill_user_name_key,priority:2" json:"-"`
	Level     Level     `gorm:"not null;column:level" json:"level"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}

func (UserSkill) TableName() string { return "user_skill" }

func (s *UserSkill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.NameKey == "" {
		s.NameKey = NameKey(s.Name)
	}
	return nil
}

// NameKey folds a skill name for the per-user uniqueness check.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
