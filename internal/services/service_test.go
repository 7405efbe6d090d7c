package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aeronautica/backend/internal/config"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:            "test-secret",
		JWTAccessExpiry:      15 * time.Minute,
		JWTRefreshExpiry:     168 * time.Hour,
		EmailDomainBlacklist: []string{"bad.com", "hotmail.com"},
		PasswordMinLength:    6,
		PasswordResetExpiry:  72 * time.Hour,
		BaseURL:              "http://localhost:8080",
	}
}

func validRegistration() *RegistrationInput {
	return &RegistrationInput{
		Email:          "a@good.com",
		VerifyEmail:    "a@good.com",
		FirstName:      "Jo",
		LastName:       "doe",
		Password:       "Secret1",
		VerifyPassword: "Secret1",
		Title:          "mr.",
		Company:        "Acme",
		Position:       "Eng",
		Country:        "X",
		City:           "Y",
	}
}
