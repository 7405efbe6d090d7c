package middleware

import (
	"errors"

	"github.com/aeronautica/backend/internal/config"
	"github.com/aeronautica/backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionCookie carries the access JWT for the browser surface.
const SessionCookie = "aero_session"

const webUserKey = "web_user"

// WebAuthRequired loads the browser user from the session cookie, redirecting
// to the login page when it is missing or stale.
func WebAuthRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := UserFromCookie(c, db, cfg)
		if err != nil {
			return c.Redirect("/login", fiber.StatusFound)
		}
		c.Locals(webUserKey, user)
		return c.Next()
	}
}

// WebUser returns the user loaded by WebAuthRequired.
func WebUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(webUserKey).(*models.User)
	if !ok || user == nil {
		return nil, errors.New("no authenticated web user in context")
	}
	return user, nil
}

// UserFromCookie parses the session cookie JWT and resolves its subject.
func UserFromCookie(c *fiber.Ctx, db *gorm.DB, cfg *config.Config) (*models.User, error) {
	raw := c.Cookies(SessionCookie)
	if raw == "" {
		return nil, errors.New("no session cookie")
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid session")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.New("invalid subject")
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, errors.New("user not found")
	}
	if !user.IsActive {
		return nil, errors.New("inactive user")
	}
	return &user, nil
}
