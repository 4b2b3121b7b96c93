package account

import (
	"fmt"
	"strings"
	"time"

	"reversa-auctions/internal/auctionerrors"
	"reversa-auctions/internal/models"
	"reversa-auctions/internal/repository"
	"reversa-auctions/utils"
)

// RegistrationData carries the fields a visitor submits to open an account
type RegistrationData struct {
	Name      string
	Email     string
	Password  string
	Phone     string
	Documents models.Documents
}

// AccountService manages registration, login and the admin approval workflow
type AccountService struct {
	users repository.UserDB
	now   func() time.Time
}

// NewAccountService creates a new AccountService instance
func NewAccountService(users repository.UserDB) *AccountService {
	return &AccountService{
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the service clock, for tests
func (s *AccountService) WithClock(now func() time.Time) *AccountService {
	s.now = now
	return s
}

// Register creates a new account in PENDING status. The account cannot bid
// until an admin approves it.
func (s *AccountService) Register(data RegistrationData) (models.User, error) {
	switch {
	case strings.TrimSpace(data.Name) == "":
		return models.User{}, fmt.Errorf("service: %w - missing name", auctionerrors.ErrInvalidInput)
	case strings.TrimSpace(data.Email) == "":
		return models.User{}, fmt.Errorf("service: %w - missing email", auctionerrors.ErrInvalidInput)
	case data.Password == "":
		return models.User{}, fmt.Errorf("service: %w - missing password", auctionerrors.ErrInvalidInput)
	case strings.TrimSpace(data.Documents.CPF) == "":
		return models.User{}, fmt.Errorf("service: %w - missing CPF", auctionerrors.ErrInvalidInput)
	}

	user := models.User{
		UserID:    utils.GenerateID(),
		Name:      data.Name,
		Email:     data.Email,
		Password:  data.Password,
		Phone:     data.Phone,
		Role:      models.RoleUser,
		Status:    models.UserPending,
		Documents: data.Documents,
		JoinedAt:  s.now(),
	}

	if err := s.users.CreateUser(user); err != nil {
		return models.User{}, fmt.Errorf("service: failed to register %s: %w", data.Email, err)
	}

	utils.Info("user registered, pending approval", map[string]any{
		"user_id": user.UserID,
		"email":   user.Email,
	})

	return user, nil
}

// Authenticate matches the login (CPF or name) and password against a stored
// account. Passwords are compared opaquely; hardening is out of scope.
func (s *AccountService) Authenticate(login, password string) (models.User, error) {
	if login == "" || password == "" {
		return models.User{}, fmt.Errorf("service: %w - missing login or password", auctionerrors.ErrInvalidCredentials)
	}

	user, err := s.users.FindByCredentials(login, password)
	if err != nil {
		return models.User{}, fmt.Errorf("service: login failed for %s: %w", login, err)
	}

	utils.Info("user authenticated", map[string]any{"user_id": user.UserID})

	return user, nil
}

// SetStatus applies an admin approval decision to an account
func (s *AccountService) SetStatus(actingUserID, userID string, status models.UserStatus) (models.User, error) {
	if actingUserID == "" {
		return models.User{}, auctionerrors.ErrUnauthenticated
	}
	actor, err := s.users.GetUser(actingUserID)
	if err != nil {
		return models.User{}, fmt.Errorf("service: failed to resolve user %s: %w", actingUserID, err)
	}
	if actor.Role != models.RoleAdmin {
		return models.User{}, fmt.Errorf("service: user %s: %w", actingUserID, auctionerrors.ErrNotAllowed)
	}

	if status != models.UserApproved && status != models.UserRejected {
		return models.User{}, fmt.Errorf("service: %w - status must be APPROVED or REJECTED", auctionerrors.ErrInvalidInput)
	}

	user, err := s.users.SetUserStatus(userID, status)
	if err != nil {
		return models.User{}, fmt.Errorf("service: failed to set status for user %s: %w", userID, err)
	}

	utils.Info("user status updated", map[string]any{
		"user_id": userID,
		"status":  string(status),
		"by":      actingUserID,
	})

	return user, nil
}
