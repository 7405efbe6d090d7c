package services

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/aeronautica/backend/internal/config"
	"github.com/aeronautica/backend/internal/dto"
	"github.com/aeronautica/backend/internal/mailer"
	"github.com/aeronautica/backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type PasswordService struct {
	db     *gorm.DB
	cfg    *config.Config
	mailer mailer.Mailer
}

func NewPasswordService(db *gorm.DB, cfg *config.Config, m mailer.Mailer) *PasswordService {
	return &PasswordService{db: db, cfg: cfg, mailer: m}
}

// Change verifies the current password before setting a new one.
func (s *PasswordService) Change(userID uuid.UUID, req *dto.PasswordChangeRequest) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		verr := newValidationError()
		verr.add("old_password", "Your old password was entered incorrectly.")
		return verr
	}

	if err := s.validateNewPassword(req.NewPassword, req.VerifyPassword); err != nil {
		return err
	}

	return s.setPassword(s.db, &user, req.NewPassword)
}

// RequestReset creates a single-use token and emails a link carrying the user
// id and the raw token in its path. An unknown email is deliberately a silent
// success so the endpoint cannot be used to enumerate accounts.
func (s *PasswordService) RequestReset(email string) error {
	var user models.User
	if err := s.db.Where("email = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
		slog.Info("password reset requested for unknown email")
		return nil
	}

	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return fmt.Errorf("failed to generate random bytes: %w", err)
	}
	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.PasswordResetExpiry),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/password-reset-confirm/%s/%s", s.cfg.BaseURL, user.ID, rawToken)
	if err := s.mailer.SendPasswordReset(user.Email, resetURL); err != nil {
		return err
	}

	slog.Info("password reset email sent", "user_id", user.ID.String())
	return nil
}

// ConfirmReset consumes a token. Expired, unknown, already-used or
// wrong-user tokens are all ErrInvalidToken.
func (s *PasswordService) ConfirmReset(req *dto.PasswordResetConfirmRequest) error {
	userID, err := uuid.Parse(req.UID)
	if err != nil {
		return ErrInvalidToken
	}

	var stored models.PasswordResetToken
	if err := s.db.Where("token_hash = ? AND used = false", hashToken(req.Token)).First(&stored).Error; err != nil {
		return ErrInvalidToken
	}
	if stored.UserID != userID || time.Now().After(stored.ExpiresAt) {
		return ErrInvalidToken
	}

	if err := s.validateNewPassword(req.Password, req.VerifyPassword); err != nil {
		return err
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.setPassword(tx, &user, req.Password); err != nil {
			return err
		}
		return tx.Model(&stored).Update("used", true).Error
	})
}

func (s *PasswordService) validateNewPassword(password, verify string) error {
	verr := newValidationError()
	if password != verify {
		verr.add("password", msgPasswordsDoNotMatch)
	}
	s.checkLength(verr, password)
	return verr.orNil()
}

func (s *PasswordService) checkLength(verr *ValidationError, password string) {
	if len(password) < s.cfg.PasswordMinLength {
		verr.add("password", fmt.Sprintf("Password must be at least %d characters.", s.cfg.PasswordMinLength))
	}
}

func (s *PasswordService) setPassword(db *gorm.DB, user *models.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := db.Model(user).Update("password", string(hash)).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
