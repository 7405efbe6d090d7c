package handlers

import (
	"github.com/aeronautica/backend/internal/dto"
	"github.com/aeronautica/backend/internal/middleware"
	"github.com/aeronautica/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PasswordHandler struct {
	passwords *services.PasswordService
}

func NewPasswordHandler(passwords *services.PasswordService) *PasswordHandler {
	return &PasswordHandler{passwords: passwords}
}

func (h *PasswordHandler) Change(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.passwords.Change(userID, &req); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Password updated successfully"})
}

// ResetRequest always answers 200; whether the email exists is not revealed.
func (h *PasswordHandler) ResetRequest(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.passwords.RequestReset(req.Email); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to process reset request",
		})
	}
	return c.JSON(dto.MessageResponse{Message: "If the email exists, a reset link has been sent"})
}

func (h *PasswordHandler) ResetConfirm(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.passwords.ConfirmReset(&req); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Password has been reset"})
}
