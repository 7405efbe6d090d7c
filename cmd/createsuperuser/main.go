package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/aeronautica/backend/internal/config"
	"github.com/aeronautica/backend/internal/database"
	"github.com/aeronautica/backend/internal/logging"
	"github.com/aeronautica/backend/internal/services"
)

// createsuperuser bootstraps an administrator account, mirroring the usual
// first-run flow: all role flags set, active immediately.
func main() {
	logging.Setup()

	email := flag.String("email", "", "email address of the superuser")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	password := flag.String("password", os.Getenv("SUPERUSER_PASSWORD"), "password (or SUPERUSER_PASSWORD env)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	accounts := services.NewAccountService(database.DB, cfg)
	user, err := accounts.CreateUser(services.CreateUserInput{
		Email:     *email,
		FirstName: *firstName,
		LastName:  *lastName,
		Password:  *password,
	}, services.RoleFlags{
		Active:    true,
		Staff:     true,
		Admin:     true,
		Superuser: true,
	})
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			for field, msg := range verr.Fields {
				fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
			}
			os.Exit(1)
		}
		slog.Error("failed to create superuser", "error", err)
		os.Exit(1)
	}

	fmt.Printf("superuser %s created (id %s)\n", user.Email, user.ID)
}
