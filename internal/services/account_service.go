package services

import (
	"fmt"
	"strings"

	"github.com/aeronautica/backend/internal/config"
	"github.com/aeronautica/backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	msgEmailsDoNotMatch    = "Emails do not match."
	msgPasswordsDoNotMatch = "Passwords do not match."
	msgFieldRequired       = "This field is required."
	msgInvalidEmail        = "Enter a valid email address."
	msgEmailTaken          = "A user with this email already exists."
)

// RoleFlags parameterizes user creation; the standard, staff, demo and
// superuser variants are all the same operation with different flags.
type RoleFlags struct {
	Active    bool
	Staff     bool
	Admin     bool
	Demo      bool
	Superuser bool
}

// CreateUserInput carries the base fields every factory requires.
type CreateUserInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// RegistrationInput is a full public registration submission: base fields,
// their verification copies, and the initial profile attributes.
type RegistrationInput struct {
	Email          string
	VerifyEmail    string
	FirstName      string
	LastName       string
	Password       string
	VerifyPassword string
	Title          string
	Company        string
	Position       string
	Country        string
	City           string
}

type AccountService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAccountService(db *gorm.DB, cfg *config.Config) *AccountService {
	return &AccountService{db: db, cfg: cfg}
}

// Register validates a public registration submission and creates the
// User+Profile pair. On failure it returns a *ValidationError naming the
// offending fields and writes nothing.
func (s *AccountService) Register(input *RegistrationInput) (*models.User, error) {
	if err := s.validateRegistration(input); err != nil {
		return nil, err
	}

	profile := &models.Profile{
		Title:    nonEmpty(input.Title),
		Company:  nonEmpty(input.Company),
		Position: nonEmpty(input.Position),
		Country:  nonEmpty(input.Country),
		City:     nonEmpty(input.City),
	}

	base := CreateUserInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Password:  input.Password,
	}

	return s.createUser(base, RoleFlags{Active: true}, profile)
}

// CreateUser is the role-flag factory behind admin user creation and the
// createsuperuser command. The profile starts empty; its fields are filled in
// later by the owner.
func (s *AccountService) CreateUser(input CreateUserInput, flags RoleFlags) (*models.User, error) {
	if err := s.validateBase(input); err != nil {
		return nil, err
	}
	return s.createUser(input, flags, &models.Profile{})
}

// createUser writes the user row and its profile row in one transaction, so a
// user without a profile is never visible. A concurrent duplicate email loses
// the race at the unique index and surfaces as a field error.
func (s *AccountService) createUser(input CreateUserInput, flags RoleFlags, profile *models.Profile) (*models.User, error) {
	email := NormalizeEmail(input.Email)

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		verr := newValidationError()
		verr.add("email", msgEmailTaken)
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:          uuid.New(),
		Email:       email,
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.ToUpper(strings.TrimSpace(input.LastName)),
		Password:    string(hash),
		IsActive:    flags.Active,
		IsStaff:     flags.Staff,
		IsAdmin:     flags.Admin,
		IsDemoUser:  flags.Demo,
		IsSuperuser: flags.Superuser,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile.ID = uuid.New()
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			verr := newValidationError()
			verr.add("email", msgEmailTaken)
			return nil, verr
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.Profile = profile
	return &user, nil
}

// GetWithProfile loads a user with its profile for display.
func (s *AccountService) GetWithProfile(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Profile").First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// UpdateName changes first and last name; the surname stays upper-cased.
func (s *AccountService) UpdateName(userID uuid.UUID, firstName, lastName string) (*models.User, error) {
	verr := newValidationError()
	if strings.TrimSpace(firstName) == "" {
		verr.add("first_name", msgFieldRequired)
	}
	if strings.TrimSpace(lastName) == "" {
		verr.add("last_name", msgFieldRequired)
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	first := strings.TrimSpace(firstName)
	last := strings.ToUpper(strings.TrimSpace(lastName))
	updates := map[string]interface{}{"first_name": first, "last_name": last}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	user.FirstName = first
	user.LastName = last
	return &user, nil
}

func (s *AccountService) validateRegistration(input *RegistrationInput) error {
	verr := newValidationError()

	if input.Email != input.VerifyEmail {
		verr.add("email", msgEmailsDoNotMatch)
	}
	if input.Password != input.VerifyPassword {
		verr.add("password", msgPasswordsDoNotMatch)
	}
	s.checkPassword(verr, input.Password)
	s.checkEmail(verr, input.Email)
	checkRequired(verr, "first_name", input.FirstName)
	checkRequired(verr, "last_name", input.LastName)
	checkRequired(verr, "title", input.Title)
	checkRequired(verr, "company", input.Company)
	checkRequired(verr, "position", input.Position)
	checkRequired(verr, "country", input.Country)
	checkRequired(verr, "city", input.City)

	return verr.orNil()
}

func (s *AccountService) validateBase(input CreateUserInput) error {
	verr := newValidationError()
	s.checkPassword(verr, input.Password)
	s.checkEmail(verr, input.Email)
	checkRequired(verr, "first_name", input.FirstName)
	checkRequired(verr, "last_name", input.LastName)
	return verr.orNil()
}

func (s *AccountService) checkPassword(verr *ValidationError, password string) {
	if len(password) < s.cfg.PasswordMinLength {
		verr.add("password", fmt.Sprintf("Password must be at least %d characters.", s.cfg.PasswordMinLength))
	}
}

// checkEmail validates shape and rejects blacklisted domains. The domain is
// everything after the last '@', compared case-insensitively.
func (s *AccountService) checkEmail(verr *ValidationError, email string) {
	email = NormalizeEmail(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		verr.add("email", msgInvalidEmail)
		return
	}

	domain := email[at+1:]
	for _, banned := range s.cfg.EmailDomainBlacklist {
		if domain == strings.ToLower(strings.TrimSpace(banned)) {
			verr.add("email", fmt.Sprintf("This domain (%s) is not supported. Please provide a corporate email address.", domain))
			return
		}
	}
}

func checkRequired(verr *ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		verr.add(field, msgFieldRequired)
	}
}

// NormalizeEmail lower-cases the whole address before storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
