package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an email-addressed account. The password column only ever holds a
// bcrypt hash.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email       string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	FirstName   string         `gorm:"not null;size:255" json:"first_name"`
	LastName    string         `gorm:"not null;size:255" json:"last_name"`
	Password    string         `gorm:"not null" json:"-"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	IsStaff     bool           `json:"is_staff"`
	IsAdmin     bool           `json:"is_admin"`
	IsDemoUser  bool           `json:"is_demo_user"`
	IsSuperuser bool           `json:"is_superuser"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

// FullName is the display name; the surname is already stored upper-cased.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
