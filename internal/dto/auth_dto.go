package dto

import (
	"time"

	"github.com/aeronautica/backend/internal/models"
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email          string `json:"email"`
	VerifyEmail    string `json:"verify_email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Password       string `json:"password"`
	VerifyPassword string `json:"verify_password"`
	Title          string `json:"title"`
	Company        string `json:"company"`
	Position       string `json:"position"`
	Country        string `json:"country"`
	City           string `json:"city"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID          uuid.UUID        `json:"id"`
	Email       string           `json:"email"`
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name"`
	IsActive    bool             `json:"is_active"`
	IsStaff     bool             `json:"is_staff"`
	IsAdmin     bool             `json:"is_admin"`
	IsDemoUser  bool             `json:"is_demo_user"`
	IsSuperuser bool             `json:"is_superuser"`
	CreatedAt   time.Time        `json:"created_at"`
	Profile     *ProfileResponse `json:"profile,omitempty"`
}

// UserResponseFrom maps a user row to its public representation. The password
// hash never leaves the models package boundary.
func UserResponseFrom(u *models.User) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		IsAdmin:     u.IsAdmin,
		IsDemoUser:  u.IsDemoUser,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
	}
	if u.Profile != nil {
		p := ProfileResponseFrom(u.Profile, u.Email)
		resp.Profile = &p
	}
	return resp
}

type UpdateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type PasswordChangeRequest struct {
	OldPassword    string `json:"old_password"`
	NewPassword    string `json:"new_password"`
	VerifyPassword string `json:"verify_password"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type PasswordResetConfirmRequest struct {
	UID            string `json:"uid"`
	Token          string `json:"token"`
	Password       string `json:"password"`
	VerifyPassword string `json:"verify_password"`
}

type AdminCreateUserRequest struct {
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Password    string `json:"password"`
	IsStaff     bool   `json:"is_staff"`
	IsAdmin     bool   `json:"is_admin"`
	IsDemoUser  bool   `json:"is_demo_user"`
	IsSuperuser bool   `json:"is_superuser"`
}

type ErrorResponse struct {
	Error   bool              `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
