package handlers

import (
	"github.com/aeronautica/backend/internal/dto"
	"github.com/aeronautica/backend/internal/middleware"
	"github.com/aeronautica/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	accounts *services.AccountService
	auth     *services.AuthService
}

func NewAuthHandler(accounts *services.AccountService, auth *services.AuthService) *AuthHandler {
	return &AuthHandler{accounts: accounts, auth: auth}
}

// Register creates a User+Profile pair from a JSON submission.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.accounts.Register(&services.RegistrationInput{
		Email:          req.Email,
		VerifyEmail:    req.VerifyEmail,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Password:       req.Password,
		VerifyPassword: req.VerifyPassword,
		Title:          req.Title,
		Company:        req.Company,
		Position:       req.Position,
		Country:        req.Country,
		City:           req.City,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.UserResponseFrom(user))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.auth.Login(&req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.auth.Refresh(&req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.auth.Logout(&req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to logout",
		})
	}
	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}

// CurrentUser returns the authenticated user's public fields with the nested
// profile.
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	user, err := h.accounts.GetWithProfile(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.UserResponseFrom(user))
}

// UpdateCurrentUser changes first and last name only.
func (h *AuthHandler) UpdateCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.accounts.UpdateName(userID, req.FirstName, req.LastName)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.UserResponseFrom(user))
}
