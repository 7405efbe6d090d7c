package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aeronautica/backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileRows(profileID, userID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "title", "company", "is_company_admin"}).
		AddRow(profileID.String(), userID.String(), "mr.", "Acme", false)
}

func strPtr(s string) *string { return &s }

func TestGetByUserIDNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewProfileService(db)

	mock.ExpectQuery(`SELECT \* FROM "profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetByUserID(uuid.New())
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestUpdateOwn(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewProfileService(db)

	profileID := uuid.New()
	userID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "profiles"`).
		WillReturnRows(profileRows(profileID, userID))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(t, userID, "a@good.com", "Secret1", true))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "profiles"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	profile, err := svc.UpdateOwn(userID, &dto.UpdateProfileRequest{
		Company: strPtr("Initech"),
		City:    strPtr("Lyon"),
	})
	require.NoError(t, err)

	require.NotNil(t, profile.Company)
	assert.Equal(t, "Initech", *profile.Company)
	require.NotNil(t, profile.City)
	assert.Equal(t, "Lyon", *profile.City)
	require.NotNil(t, profile.Title)
	assert.Equal(t, "mr.", *profile.Title)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOwnNoChanges(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewProfileService(db)

	profileID := uuid.New()
	userID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "profiles"`).
		WillReturnRows(profileRows(profileID, userID))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(t, userID, "a@good.com", "Secret1", true))

	profile, err := svc.UpdateOwn(userID, &dto.UpdateProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, profileID, profile.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileUpdatesExcludesAdminFlag(t *testing.T) {
	updates := profileUpdates(&dto.UpdateProfileRequest{
		Title:   strPtr("mrs."),
		Company: strPtr("Acme"),
	})

	assert.Len(t, updates, 2)
	assert.NotContains(t, updates, "is_company_admin")
}

func TestAdminUpdateSetsAdminFlag(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewProfileService(db)

	profileID := uuid.New()
	userID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "profiles"`).
		WillReturnRows(profileRows(profileID, userID))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(t, userID, "a@good.com", "Secret1", true))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "profiles"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	admin := true
	profile, err := svc.AdminUpdate(profileID, &dto.AdminUpdateProfileRequest{
		UpdateProfileRequest: dto.UpdateProfileRequest{Position: strPtr("CTO")},
		IsCompanyAdmin:       &admin,
	})
	require.NoError(t, err)

	assert.True(t, profile.IsCompanyAdmin)
	require.NotNil(t, profile.Position)
	assert.Equal(t, "CTO", *profile.Position)

	require.NoError(t, mock.ExpectationsWereMet())
}
