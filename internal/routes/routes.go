package routes

import (
	"time"

	"github.com/aeronautica/backend/internal/config"
	"github.com/aeronautica/backend/internal/handlers"
	"github.com/aeronautica/backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	passwordHandler *handlers.PasswordHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
	webHandler *handlers.WebHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/password/reset", passwordHandler.ResetRequest)
	auth.Post("/password/reset/confirm", passwordHandler.ResetConfirm)

	// Protected routes (JWT required) - apply middleware to individual routes
	// so public routes stay unaffected
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/user", middleware.JWTProtected(cfg), authHandler.CurrentUser)
	api.Put("/auth/user", middleware.JWTProtected(cfg), authHandler.UpdateCurrentUser)
	api.Post("/auth/password/change", middleware.JWTProtected(cfg), passwordHandler.Change)

	api.Get("/profile", middleware.JWTProtected(cfg), profileHandler.GetOwn)
	api.Put("/profile", middleware.JWTProtected(cfg), profileHandler.UpdateOwn)

	// Admin area (JWT + staff/superuser required)
	jwtMW := middleware.JWTProtected(cfg)
	adminMW := middleware.AdminRequired(db, cfg)
	api.Get("/profiles", jwtMW, adminMW, profileHandler.AdminList)
	api.Get("/profiles/:id", jwtMW, adminMW, profileHandler.AdminGet)
	api.Put("/profiles/:id", jwtMW, adminMW, profileHandler.AdminUpdate)
	api.Post("/admin/users", jwtMW, adminMW, adminHandler.CreateUser)

	// Browser-form surface
	app.Get("/", webHandler.Home)
	app.Get("/register", webHandler.RegisterPage)
	app.Post("/register", webHandler.RegisterSubmit)
	app.Get("/login", webHandler.LoginPage)
	app.Post("/login", webHandler.LoginSubmit)
	app.Get("/logout", webHandler.Logout)

	webAuth := middleware.WebAuthRequired(db, cfg)
	app.Get("/user/profile", webAuth, webHandler.ProfilePage)
	app.Post("/user/profile", webAuth, webHandler.ProfileSubmit)
	app.Get("/password/change", webAuth, webHandler.PasswordChangePage)
	app.Post("/password/change", webAuth, webHandler.PasswordChangeSubmit)

	app.Get("/password-reset", webHandler.PasswordResetPage)
	app.Post("/password-reset", webHandler.PasswordResetSubmit)
	app.Get("/password-reset/done", webHandler.PasswordResetDone)
	app.Get("/password-reset-confirm/:uid/:token", webHandler.PasswordResetConfirmPage)
	app.Post("/password-reset-confirm/:uid/:token", webHandler.PasswordResetConfirmSubmit)
	app.Get("/password-reset-complete", webHandler.PasswordResetComplete)
}
