package handlers

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"time"

	"github.com/aeronautica/backend/internal/config"
	"github.com/aeronautica/backend/internal/dto"
	"github.com/aeronautica/backend/internal/middleware"
	"github.com/aeronautica/backend/internal/models"
	"github.com/aeronautica/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

//go:embed templates/*.html
var templatesFS embed.FS

var webTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// WebHandler is the browser-form surface: form-encoded submissions, redirects
// on success, re-rendered forms with field errors on failure.
type WebHandler struct {
	accounts  *services.AccountService
	auth      *services.AuthService
	passwords *services.PasswordService
	profiles  *services.ProfileService
	db        *gorm.DB
	cfg       *config.Config
}

func NewWebHandler(
	accounts *services.AccountService,
	auth *services.AuthService,
	passwords *services.PasswordService,
	profiles *services.ProfileService,
	db *gorm.DB,
	cfg *config.Config,
) *WebHandler {
	return &WebHandler{
		accounts:  accounts,
		auth:      auth,
		passwords: passwords,
		profiles:  profiles,
		db:        db,
		cfg:       cfg,
	}
}

func (h *WebHandler) render(c *fiber.Ctx, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := webTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// fieldErrors unwraps a *services.ValidationError; other errors become a
// single non-field message.
func fieldErrors(err error) (map[string]string, string) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields, ""
	}
	return nil, "Something went wrong. Please try again."
}

type registerForm struct {
	Email       string `form:"email"`
	VerifyEmail string `form:"verify_email"`
	Password1   string `form:"password1"`
	Password2   string `form:"password2"`
	FirstName   string `form:"first_name"`
	LastName    string `form:"last_name"`
	Title       string `form:"title"`
	Company     string `form:"company"`
	Position    string `form:"position"`
	Country     string `form:"country"`
	City        string `form:"city"`
}

type registerPage struct {
	Form    registerForm
	Errors  map[string]string
	Message string
}

func (h *WebHandler) Home(c *fiber.Ctx) error {
	user, err := middleware.UserFromCookie(c, h.db, h.cfg)
	if err != nil {
		return c.Redirect("/register", fiber.StatusFound)
	}
	return h.render(c, "home.html", fiber.Map{"User": user})
}

func (h *WebHandler) RegisterPage(c *fiber.Ctx) error {
	return h.render(c, "register.html", registerPage{})
}

func (h *WebHandler) RegisterSubmit(c *fiber.Ctx) error {
	var form registerForm
	if err := c.BodyParser(&form); err != nil {
		return h.render(c, "register.html", registerPage{Message: "Invalid form submission."})
	}

	_, err := h.accounts.Register(&services.RegistrationInput{
		Email:          form.Email,
		VerifyEmail:    form.VerifyEmail,
		FirstName:      form.FirstName,
		LastName:       form.LastName,
		Password:       form.Password1,
		VerifyPassword: form.Password2,
		Title:          form.Title,
		Company:        form.Company,
		Position:       form.Position,
		Country:        form.Country,
		City:           form.City,
	})
	if err != nil {
		fields, msg := fieldErrors(err)
		return h.render(c, "register.html", registerPage{Form: form, Errors: fields, Message: msg})
	}

	return c.Redirect("/login?registered=1", fiber.StatusFound)
}

func (h *WebHandler) LoginPage(c *fiber.Ctx) error {
	data := fiber.Map{"Email": ""}
	if c.Query("registered") != "" {
		data["Message"] = "Account created successfully. You can login now."
	}
	return h.render(c, "login.html", data)
}

func (h *WebHandler) LoginSubmit(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.auth.Authenticate(email, password)
	if err != nil {
		return h.render(c, "login.html", fiber.Map{
			"Error": "Credentials are not correct.",
			"Email": email,
		})
	}

	token, err := h.auth.IssueAccessToken(user)
	if err != nil {
		return h.render(c, "login.html", fiber.Map{
			"Error": "Something went wrong. Please try again.",
			"Email": email,
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(h.cfg.JWTAccessExpiry),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.Redirect("/user/profile", fiber.StatusFound)
}

func (h *WebHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.Redirect("/login", fiber.StatusFound)
}

type profileForm struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Title     string `form:"title"`
	Company   string `form:"company"`
	Position  string `form:"position"`
	Country   string `form:"country"`
	City      string `form:"city"`
	Location  string `form:"location"`
}

func (h *WebHandler) ProfilePage(c *fiber.Ctx) error {
	user, err := middleware.WebUser(c)
	if err != nil {
		return c.Redirect("/login", fiber.StatusFound)
	}

	profile, err := h.profiles.GetByUserID(user.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return h.render(c, "profile.html", fiber.Map{
		"User":    user,
		"Profile": profile,
		"Updated": c.Query("updated") != "",
		"Errors":  map[string]string{},
	})
}

func (h *WebHandler) ProfileSubmit(c *fiber.Ctx) error {
	user, err := middleware.WebUser(c)
	if err != nil {
		return c.Redirect("/login", fiber.StatusFound)
	}

	var form profileForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, "Invalid form submission")
	}

	if _, err := h.accounts.UpdateName(user.ID, form.FirstName, form.LastName); err != nil {
		return h.renderProfileError(c, user, err)
	}

	update := &dto.UpdateProfileRequest{
		Title:    &form.Title,
		Company:  &form.Company,
		Position: &form.Position,
		Country:  &form.Country,
		City:     &form.City,
		Location: &form.Location,
	}
	if _, err := h.profiles.UpdateOwn(user.ID, update); err != nil {
		return h.renderProfileError(c, user, err)
	}

	return c.Redirect("/user/profile?updated=1", fiber.StatusFound)
}

func (h *WebHandler) renderProfileError(c *fiber.Ctx, user *models.User, err error) error {
	fields, msg := fieldErrors(err)
	profile, perr := h.profiles.GetByUserID(user.ID)
	if perr != nil {
		return serviceError(c, perr)
	}
	return h.render(c, "profile.html", fiber.Map{
		"User":    user,
		"Profile": profile,
		"Errors":  fields,
		"Message": msg,
	})
}

func (h *WebHandler) PasswordChangePage(c *fiber.Ctx) error {
	return h.render(c, "password_change.html", fiber.Map{"Errors": map[string]string{}})
}

func (h *WebHandler) PasswordChangeSubmit(c *fiber.Ctx) error {
	user, err := middleware.WebUser(c)
	if err != nil {
		return c.Redirect("/login", fiber.StatusFound)
	}

	req := &dto.PasswordChangeRequest{
		OldPassword:    c.FormValue("old_password"),
		NewPassword:    c.FormValue("new_password1"),
		VerifyPassword: c.FormValue("new_password2"),
	}
	if err := h.passwords.Change(user.ID, req); err != nil {
		fields, msg := fieldErrors(err)
		return h.render(c, "password_change.html", fiber.Map{"Errors": fields, "Message": msg})
	}

	return c.Redirect("/user/profile?updated=1", fiber.StatusFound)
}

func (h *WebHandler) PasswordResetPage(c *fiber.Ctx) error {
	return h.render(c, "password_reset.html", fiber.Map{})
}

func (h *WebHandler) PasswordResetSubmit(c *fiber.Ctx) error {
	if err := h.passwords.RequestReset(c.FormValue("email")); err != nil {
		return h.render(c, "password_reset.html", fiber.Map{
			"Message": "Something went wrong. Please try again.",
		})
	}
	return c.Redirect("/password-reset/done", fiber.StatusFound)
}

func (h *WebHandler) PasswordResetDone(c *fiber.Ctx) error {
	return h.render(c, "password_reset_done.html", fiber.Map{})
}

func (h *WebHandler) PasswordResetConfirmPage(c *fiber.Ctx) error {
	return h.render(c, "password_reset_confirm.html", fiber.Map{
		"UID":    c.Params("uid"),
		"Token":  c.Params("token"),
		"Errors": map[string]string{},
	})
}

func (h *WebHandler) PasswordResetConfirmSubmit(c *fiber.Ctx) error {
	req := &dto.PasswordResetConfirmRequest{
		UID:            c.Params("uid"),
		Token:          c.Params("token"),
		Password:       c.FormValue("new_password1"),
		VerifyPassword: c.FormValue("new_password2"),
	}
	if err := h.passwords.ConfirmReset(req); err != nil {
		fields, msg := fieldErrors(err)
		if errors.Is(err, services.ErrInvalidToken) {
			msg = "This reset link is invalid or has expired."
		}
		return h.render(c, "password_reset_confirm.html", fiber.Map{
			"UID":     c.Params("uid"),
			"Token":   c.Params("token"),
			"Errors":  fields,
			"Message": msg,
		})
	}
	return c.Redirect("/password-reset-complete", fiber.StatusFound)
}

func (h *WebHandler) PasswordResetComplete(c *fiber.Ctx) error {
	return h.render(c, "password_reset_complete.html", fiber.Map{})
}
