package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sportshub-india/sportshub-backend/pkg/enums"
	"github.com/sportshub-india/sportshub-backend/pkg/types"
	"gorm.io/gorm"
)

// User is the persisted account record. PasswordHash holds an argon2id or bcrypt
// hash, or the plaintext secret of a record imported from the legacy store
// until its first successful login.
type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name           string         `gorm:"column:name;type:text;not null"`
	Email          string         `gorm:"column:email;type:text;not null;uniqueIndex:idx_users_email"`
	PasswordHash   string         `gorm:"column:password_hash;type:text;not null"`
	Role           enums.Role     `gorm:"column:role;type:text;not null;default:player"`
	Phone          *string        `gorm:"column:phone"`
	Location       types.Location `gorm:"embedded;embeddedPrefix:location_"`
	Position       *string        `gorm:"column:position"`
	Specialization *string        `gorm:"column:specialization"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name used by the SQL migrations.
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the id client-side so sqlite and postgres behave the same.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
