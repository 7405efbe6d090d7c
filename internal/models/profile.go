package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the organizational context of a user. Exactly one row exists
// per user; the unique index on user_id is what enforces it.
type Profile struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Title          *string   `gorm:"size:25" json:"title"`
	Company        *string   `gorm:"size:255" json:"company"`
	Position       *string   `gorm:"size:255" json:"position"`
	Location       *string   `gorm:"size:355" json:"location"`
	Country        *string   `gorm:"size:120" json:"country"`
	City           *string   `gorm:"size:120" json:"city"`
	IsCompanyAdmin bool      `json:"is_company_admin"`
	UpdatedAt      time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
