package handlers

import (
	"github.com/aeronautica/backend/internal/dto"
	"github.com/aeronautica/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler exposes the role-flag user factories to administrators.
type AdminHandler struct {
	accounts *services.AccountService
}

func NewAdminHandler(accounts *services.AccountService) *AdminHandler {
	return &AdminHandler{accounts: accounts}
}

// CreateUser builds staff, demo or superuser accounts from one creation path.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.AdminCreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.accounts.CreateUser(services.CreateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	}, services.RoleFlags{
		Active:    true,
		Staff:     req.IsStaff || req.IsSuperuser,
		Admin:     req.IsAdmin || req.IsSuperuser,
		Demo:      req.IsDemoUser,
		Superuser: req.IsSuperuser,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.UserResponseFrom(user))
}
