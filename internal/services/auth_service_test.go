package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/sprout/internal/models"
)

type stubUserRepository struct {
	users  map[string]models.User
	nextID uint
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{users: map[string]models.User{}, nextID: 1}
}

func (stub *stubUserRepository) FindByEmail(email string) (models.User, bool, error) {
	user, ok := stub.users[email]
	return user, ok, nil
}

func (stub *stubUserRepository) FindByID(userID uint) (models.User, bool, error) {
	for _, user := range stub.users {
		if user.ID == userID {
			return user, true, nil
		}
	}
	return models.User{}, false, nil
}

func (stub *stubUserRepository) Create(user *models.User) error {
	user.ID = stub.nextID
	stub.nextID++
	stub.users[user.Email] = *user
	return nil
}

func (stub *stubUserRepository) Count() (int64, error) {
	return int64(len(stub.users)), nil
}

func TestSetupCreatesSingleAccount(t *testing.T) {
	t.Parallel()

	service := NewAuthService(newStubUserRepository())

	done, err := service.SetupCompleted()
	if err != nil || done {
		t.Fatalf("SetupCompleted = %v, %v before setup", done, err)
	}

	user, err := service.Setup("  Parent@Example.COM ", "Sunny2024")
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	if user.Email != "parent@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "Sunny2024" {
		t.Fatalf("password not hashed: %q", user.PasswordHash)
	}

	if _, err := service.Setup("other@example.com", "Sunny2024"); !errors.Is(err, ErrAccountAlreadySetUp) {
		t.Fatalf("second setup error = %v, want %v", err, ErrAccountAlreadySetUp)
	}
}

func TestSetupRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "empty email", email: "", password: "Sunny2024", wantErr: ErrCredentialsInvalid},
		{name: "malformed email", email: "not-an-email", password: "Sunny2024", wantErr: ErrCredentialsInvalid},
		{name: "short password", email: "a@b.com", password: "Ab1", wantErr: ErrWeakPassword},
		{name: "no digit", email: "a@b.com", password: "Sunnyday", wantErr: ErrWeakPassword},
		{name: "no upper", email: "a@b.com", password: "sunny2024", wantErr: ErrWeakPassword},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			service := NewAuthService(newStubUserRepository())
			if _, err := service.Setup(test.email, test.password); !errors.Is(err, test.wantErr) {
				t.Fatalf("Setup error = %v, want %v", err, test.wantErr)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	service := NewAuthService(newStubUserRepository())
	if _, err := service.Setup("parent@example.com", "Sunny2024"); err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}

	user, err := service.Login("PARENT@example.com", "Sunny2024")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.Email != "parent@example.com" {
		t.Fatalf("login email = %q", user.Email)
	}

	if _, err := service.Login("parent@example.com", "wrongPass1"); !errors.Is(err, ErrLoginFailed) {
		t.Fatalf("wrong password error = %v, want %v", err, ErrLoginFailed)
	}
	if _, err := service.Login("stranger@example.com", "Sunny2024"); !errors.Is(err, ErrLoginFailed) {
		t.Fatalf("unknown email error = %v, want %v", err, ErrLoginFailed)
	}
}
