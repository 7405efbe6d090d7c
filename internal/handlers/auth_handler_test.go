package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aeronautica/backend/internal/dto"
	"github.com/aeronautica/backend/internal/middleware"
	"github.com/aeronautica/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock, *services.AuthService) {
	t.Helper()

	db, mock := newTestDB(t)
	cfg := testConfig()
	accounts := services.NewAccountService(db, cfg)
	auth := services.NewAuthService(db, cfg)
	h := NewAuthHandler(accounts, auth)

	app := fiber.New()
	app.Post("/api/auth/register", h.Register)
	app.Post("/api/auth/login", h.Login)
	app.Get("/api/auth/user", middleware.JWTProtected(cfg), h.CurrentUser)

	return app, mock, auth
}

func validRegisterBody() dto.RegisterRequest {
	return dto.RegisterRequest{
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

func TestRegisterEndpointBadBody(t *testing.T) {
	app, _, _ := newAuthApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterEndpointFieldErrors(t *testing.T) {
	app, mock, _ := newAuthApp(t)

	body := validRegisterBody()
	body.VerifyEmail = "b@good.com"
	body.Company = ""

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp dto.ErrorResponse
	decodeJSON(t, resp, &errResp)
	assert.True(t, errResp.Error)
	assert.Equal(t, "Emails do not match.", errResp.Fields["email"])
	assert.Equal(t, "This field is required.", errResp.Fields["company"])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterEndpointCreated(t *testing.T) {
	app, mock, _ := newAuthApp(t)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectQuery(`INSERT INTO "profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", validRegisterBody()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var user dto.UserResponse
	decodeJSON(t, resp, &user)
	assert.Equal(t, "a@good.com", user.Email)
	assert.Equal(t, "DOE", user.LastName)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginEndpointUnknownEmail(t *testing.T) {
	app, mock, _ := newAuthApp(t)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email:    "nobody@good.com",
		Password: "Secret1",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var errResp dto.ErrorResponse
	decodeJSON(t, resp, &errResp)
	assert.Equal(t, "invalid email or password", errResp.Message)
}

func TestCurrentUserRequiresToken(t *testing.T) {
	app, _, _ := newAuthApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCurrentUserWithToken(t *testing.T) {
	app, mock, auth := newAuthApp(t)

	userID := uuid.New()
	token, err := auth.IssueAccessToken(userFixture(userID))
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(t, userID, "a@good.com", "Secret1", true))
	mock.ExpectQuery(`SELECT \* FROM "profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "company"}).
			AddRow(uuid.New().String(), userID.String(), "Acme"))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var user dto.UserResponse
	decodeJSON(t, resp, &user)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "a@good.com", user.Email)

	require.NoError(t, mock.ExpectationsWereMet())
}
