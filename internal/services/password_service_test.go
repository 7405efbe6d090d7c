package services

import (
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aeronautica/backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to  string
	url string
}

func (m *fakeMailer) SendPasswordReset(to, resetURL string) error {
	m.to = to
	m.url = resetURL
	return nil
}

func TestChangeWrongOldPassword(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewPasswordService(db, testConfig(), &fakeMailer{})

	userID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(t, userID, "a@good.com", "Secret1", true))

	err := svc.Change(userID, &dto.PasswordChangeRequest{
		OldPassword:    "nope",
		NewPassword:    "Newpass1",
		VerifyPassword: "Newpass1",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Your old password was entered incorrectly.", verr.Fields["old_password"])
}

func TestChangeNewPasswordValidation(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewPasswordService(db, testConfig(), &fakeMailer{})

	userID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(t, userID, "a@good.com", "Secret1", true))

	err := svc.Change(userID, &dto.PasswordChangeRequest{
		OldPassword:    "Secret1",
		NewPassword:    "abc",
		VerifyPassword: "abc",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Password must be at least 6 characters.", verr.Fields["password"])
}

func TestChangeSuccess(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewPasswordService(db, testConfig(), &fakeMailer{})

	userID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(t, userID, "a@good.com", "Secret1", true))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.Change(userID, &dto.PasswordChangeRequest{
		OldPassword:    "Secret1",
		NewPassword:    "Newpass1",
		VerifyPassword: "Newpass1",
	})
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestResetUnknownEmailIsSilent(t *testing.T) {
	db, mock := newTestDB(t)
	m := &fakeMailer{}
	svc := NewPasswordService(db, testConfig(), m)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := svc.RequestReset("nobody@good.com")
	require.NoError(t, err)
	assert.Empty(t, m.url)
}

func TestRequestResetSendsLink(t *testing.T) {
	db, mock := newTestDB(t)
	m := &fakeMailer{}
	svc := NewPasswordService(db, testConfig(), m)

	userID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(t, userID, "a@good.com", "Secret1", true))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "password_reset_tokens"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	err := svc.RequestReset("a@good.com")
	require.NoError(t, err)

	assert.Equal(t, "a@good.com", m.to)
	assert.True(t, strings.HasPrefix(m.url, "http://localhost:8080/password-reset-confirm/"+userID.String()+"/"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmResetBadUID(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewPasswordService(db, testConfig(), &fakeMailer{})

	err := svc.ConfirmReset(&dto.PasswordResetConfirmRequest{
		UID:            "not-a-uuid",
		Token:          "whatever",
		Password:       "Newpass1",
		VerifyPassword: "Newpass1",
	})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestConfirmResetExpiredToken(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewPasswordService(db, testConfig(), &fakeMailer{})

	userID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "user_id", "token_hash", "expires_at", "used"}).
		AddRow(uuid.New().String(), userID.String(), hashToken("tok"), time.Now().Add(-time.Minute), false)
	mock.ExpectQuery(`SELECT \* FROM "password_reset_tokens"`).WillReturnRows(rows)

	err := svc.ConfirmReset(&dto.PasswordResetConfirmRequest{
		UID:            userID.String(),
		Token:          "tok",
		Password:       "Newpass1",
		VerifyPassword: "Newpass1",
	})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestConfirmResetWrongUser(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewPasswordService(db, testConfig(), &fakeMailer{})

	rows := sqlmock.NewRows([]string{"id", "user_id", "token_hash", "expires_at", "used"}).
		AddRow(uuid.New().String(), uuid.New().String(), hashToken("tok"), time.Now().Add(time.Hour), false)
	mock.ExpectQuery(`SELECT \* FROM "password_reset_tokens"`).WillReturnRows(rows)

	err := svc.ConfirmReset(&dto.PasswordResetConfirmRequest{
		UID:            uuid.New().String(),
		Token:          "tok",
		Password:       "Newpass1",
		VerifyPassword: "Newpass1",
	})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestConfirmResetSuccess(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewPasswordService(db, testConfig(), &fakeMailer{})

	userID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "user_id", "token_hash", "expires_at", "used"}).
		AddRow(uuid.New().String(), userID.String(), hashToken("tok"), time.Now().Add(time.Hour), false)
	mock.ExpectQuery(`SELECT \* FROM "password_reset_tokens"`).WillReturnRows(rows)
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(t, userID, "a@good.com", "Secret1", true))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "password_reset_tokens"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.ConfirmReset(&dto.PasswordResetConfirmRequest{
		UID:            userID.String(),
		Token:          "tok",
		Password:       "Newpass1",
		VerifyPassword: "Newpass1",
	})
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}
