package dto

import (
	"time"

	"github.com/aeronautica/backend/internal/models"
	"github.com/google/uuid"
)

// ProfileResponse is the owner-facing representation. IsCompanyAdmin is
// deliberately absent: owners neither see nor set it.
type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	User      string    `json:"user"`
	Title     *string   `json:"title"`
	Company   *string   `json:"company"`
	Position  *string   `json:"position"`
	Location  *string   `json:"location"`
	Country   *string   `json:"country"`
	City      *string   `json:"city"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ProfileResponseFrom(p *models.Profile, userEmail string) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		User:      userEmail,
		Title:     p.Title,
		Company:   p.Company,
		Position:  p.Position,
		Location:  p.Location,
		Country:   p.Country,
		City:      p.City,
		UpdatedAt: p.UpdatedAt,
	}
}

// AdminProfileResponse adds the admin-only flag.
type AdminProfileResponse struct {
	ProfileResponse
	IsCompanyAdmin bool `json:"is_company_admin"`
}

func AdminProfileResponseFrom(p *models.Profile, userEmail string) AdminProfileResponse {
	return AdminProfileResponse{
		ProfileResponse: ProfileResponseFrom(p, userEmail),
		IsCompanyAdmin:  p.IsCompanyAdmin,
	}
}

// UpdateProfileRequest uses pointers so absent fields are left untouched.
type UpdateProfileRequest struct {
	Title    *string `json:"title"`
	Company  *string `json:"company"`
	Position *string `json:"position"`
	Location *string `json:"location"`
	Country  *string `json:"country"`
	City     *string `json:"city"`
}

type AdminUpdateProfileRequest struct {
	UpdateProfileRequest
	IsCompanyAdmin *bool `json:"is_company_admin"`
}
