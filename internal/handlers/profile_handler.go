package handlers

import (
	"github.com/aeronautica/backend/internal/dto"
	"github.com/aeronautica/backend/internal/middleware"
	"github.com/aeronautica/backend/internal/models"
	"github.com/aeronautica/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetOwn returns the caller's profile, without the admin-only flag.
func (h *ProfileHandler) GetOwn(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	profile, err := h.profiles.GetByUserID(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.ProfileResponseFrom(profile, ownerEmail(profile)))
}

func (h *ProfileHandler) UpdateOwn(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	profile, err := h.profiles.UpdateOwn(userID, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.ProfileResponseFrom(profile, ownerEmail(profile)))
}

// AdminList returns every profile in full representation.
func (h *ProfileHandler) AdminList(c *fiber.Ctx) error {
	profiles, err := h.profiles.List()
	if err != nil {
		return serviceError(c, err)
	}

	resp := make([]dto.AdminProfileResponse, 0, len(profiles))
	for i := range profiles {
		resp = append(resp, dto.AdminProfileResponseFrom(&profiles[i], ownerEmail(&profiles[i])))
	}
	return c.JSON(resp)
}

func (h *ProfileHandler) AdminGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid profile id")
	}

	profile, err := h.profiles.GetByID(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.AdminProfileResponseFrom(profile, ownerEmail(profile)))
}

func (h *ProfileHandler) AdminUpdate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid profile id")
	}

	var req dto.AdminUpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	profile, err := h.profiles.AdminUpdate(id, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.AdminProfileResponseFrom(profile, ownerEmail(profile)))
}

func ownerEmail(p *models.Profile) string {
	if p.User != nil {
		return p.User.Email
	}
	return ""
}
