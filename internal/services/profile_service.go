package services

import (
	"fmt"

	"github.com/aeronautica/backend/internal/dto"
	"github.com/aeronautica/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) GetByUserID(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, ErrProfileNotFound
	}
	return &profile, nil
}

// UpdateOwn applies an owner's changes. is_company_admin is not part of the
// update set, whatever the request body carried.
func (s *ProfileService) UpdateOwn(userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	updates := profileUpdates(req)
	if len(updates) == 0 {
		return profile, nil
	}

	if err := s.db.Model(profile).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	applyProfileUpdates(profile, req)
	return profile, nil
}

func (s *ProfileService) List() ([]models.Profile, error) {
	var profiles []models.Profile
	if err := s.db.Preload("User").Order("id").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func (s *ProfileService) GetByID(id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Preload("User").First(&profile, "id = ?", id).Error; err != nil {
		return nil, ErrProfileNotFound
	}
	return &profile, nil
}

// AdminUpdate may additionally flip is_company_admin.
func (s *ProfileService) AdminUpdate(id uuid.UUID, req *dto.AdminUpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := profileUpdates(&req.UpdateProfileRequest)
	if req.IsCompanyAdmin != nil {
		updates["is_company_admin"] = *req.IsCompanyAdmin
	}
	if len(updates) == 0 {
		return profile, nil
	}

	if err := s.db.Model(profile).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	applyProfileUpdates(profile, &req.UpdateProfileRequest)
	if req.IsCompanyAdmin != nil {
		profile.IsCompanyAdmin = *req.IsCompanyAdmin
	}
	return profile, nil
}

func applyProfileUpdates(profile *models.Profile, req *dto.UpdateProfileRequest) {
	if req.Title != nil {
		profile.Title = req.Title
	}
	if req.Company != nil {
		profile.Company = req.Company
	}
	if req.Position != nil {
		profile.Position = req.Position
	}
	if req.Location != nil {
		profile.Location = req.Location
	}
	if req.Country != nil {
		profile.Country = req.Country
	}
	if req.City != nil {
		profile.City = req.City
	}
}

func profileUpdates(req *dto.UpdateProfileRequest) map[string]interface{} {
	updates := make(map[string]interface{})
	set := func(column string, v *string) {
		if v != nil {
			updates[column] = *v
		}
	}
	set("title", req.Title)
	set("company", req.Company)
	set("position", req.Position)
	set("location", req.Location)
	set("country", req.Country)
	set("city", req.City)
	return updates
}
