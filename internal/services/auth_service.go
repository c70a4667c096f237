package services

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"github.com/terraincognita07/sprout/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrCredentialsInvalid   = fmt.Errorf("%w: invalid credentials", ErrValidation)
	ErrWeakPassword         = fmt.Errorf("%w: password too weak", ErrValidation)
	ErrAccountAlreadySetUp  = fmt.Errorf("%w: account already set up", ErrValidation)
	ErrLoginFailed          = fmt.Errorf("%w: wrong email or password", ErrValidation)
	ErrUserNotFound         = fmt.Errorf("%w: user", ErrNotFound)
)

type AuthUserRepository interface {
	FindByEmail(email string) (models.User, bool, error)
	FindByID(userID uint) (models.User, bool, error)
	Create(user *models.User) error
	Count() (int64, error)
}

// AuthService manages the single household account guarding the tracker.
type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

// SetupCompleted reports whether the household account exists yet.
func (service *AuthService) SetupCompleted() (bool, error) {
	count, err := service.users.Count()
	if err != nil {
		return false, fmt.Errorf("%w: count users: %v", ErrStorage, err)
	}
	return count > 0, nil
}

// Setup creates the household account. Only one account can exist.
func (service *AuthService) Setup(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := normalizeCredentials(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}
	if err := validatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	done, err := service.SetupCompleted()
	if err != nil {
		return models.User{}, err
	}
	if done {
		return models.User{}, ErrAccountAlreadySetUp
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: hash password: %v", ErrStorage, err)
	}
	user := models.User{Email: email, PasswordHash: string(hash)}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("%w: create user: %v", ErrStorage, err)
	}
	return user, nil
}

func (service *AuthService) Login(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := normalizeCredentials(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}
	user, found, err := service.users.FindByEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: load user: %v", ErrStorage, err)
	}
	if !found {
		return models.User{}, ErrLoginFailed
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrLoginFailed
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	user, found, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: load user: %v", ErrStorage, err)
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func normalizeCredentials(emailRaw string, passwordRaw string) (string, string, error) {
	email := strings.ToLower(strings.TrimSpace(emailRaw))
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrCredentialsInvalid
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", "", ErrCredentialsInvalid
	}
	return email, password, nil
}

// validatePasswordStrength requires 8+ runes mixing upper, lower and digit.
func validatePasswordStrength(password string) error {
	if len([]rune(password)) < 8 {
		return ErrWeakPassword
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}
	if hasUpper && hasLower && hasDigit {
		return nil
	}
	return ErrWeakPassword
}
