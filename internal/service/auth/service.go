package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dilshanuk/salespoint/internal/domain/models"
	"github.com/dilshanuk/salespoint/internal/repository/mongodb"
)

// Service implements registration, login, admin user management and
// self-service profile operations.
type Service struct {
	users  mongodb.UserStore
	tokens *TokenService
	logger *zap.Logger
}

// NewService wires a new auth service instance.
func NewService(users mongodb.UserStore, tokens *TokenService, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, tokens: tokens, logger: logger}
}

// UserUpdate carries an admin-side account update; empty fields keep their
// current value.
type UserUpdate struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// Register creates a representative account and returns it with a token.
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return nil, "", models.NewValidationError("username and email are required")
	}

	hash, err := HashPassword(password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooShort) {
			return nil, "", &models.ValidationError{Message: err.Error()}
		}
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleRepresentative,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.Hex()), zap.String("username", username))
	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
// Unknown accounts and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, models.ErrNotFound) {
		return nil, "", models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, "", models.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// ListUsers returns all accounts. Password hashes never serialize.
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// CreateUser creates an account with an explicit role (defaults to
// representative when empty).
func (s *Service) CreateUser(ctx context.Context, username, email, password string, role models.Role) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return nil, models.NewValidationError("username and email are required")
	}

	if role == "" {
		role = models.RoleRepresentative
	}
	if !role.Valid() {
		return nil, models.NewValidationError("invalid role %q", role)
	}

	hash, err := HashPassword(password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooShort) {
			return nil, &models.ValidationError{Message: err.Error()}
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.String("user_id", user.ID.Hex()), zap.String("role", string(role)))
	return user, nil
}

// UpdateUser applies an admin-side account update.
func (s *Service) UpdateUser(ctx context.Context, id string, update UserUpdate) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if username := strings.TrimSpace(update.Username); username != "" {
		user.Username = username
	}
	if email := strings.TrimSpace(update.Email); email != "" {
		user.Email = email
	}
	if update.Role != "" {
		if !update.Role.Valid() {
			return nil, models.NewValidationError("invalid role %q", update.Role)
		}
		user.Role = update.Role
	}
	if strings.TrimSpace(update.Password) != "" {
		hash, err := HashPassword(update.Password)
		if err != nil {
			if errors.Is(err, ErrPasswordTooShort) {
				return nil, &models.ValidationError{Message: err.Error()}
			}
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (s *Service) DeleteUser(ctx context.Context, actor models.Principal, id string) error {
	if actor.ID == id {
		return models.NewValidationError("you cannot delete your own account")
	}
	return s.users.Delete(ctx, id)
}

// Profile returns the actor's own account.
func (s *Service) Profile(ctx context.Context, actor models.Principal) (*models.User, error) {
	return s.users.GetByID(ctx, actor.ID)
}

// ChangeUsername updates the actor's username after a uniqueness check.
func (s *Service) ChangeUsername(ctx context.Context, actor models.Principal, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, models.NewValidationError("username is required")
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.ID.Hex() != actor.ID {
		return nil, &models.DuplicateError{Message: "username already taken"}
	}

	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	user.Username = username

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Service) ChangePassword(ctx context.Context, actor models.Principal, current, next string) error {
	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return err
	}

	if !CheckPassword(current, user.PasswordHash) {
		return models.NewValidationError("current password is incorrect")
	}

	hash, err := HashPassword(next)
	if err != nil {
		if errors.Is(err, ErrPasswordTooShort) {
			return &models.ValidationError{Message: err.Error()}
		}
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash

	return s.users.Update(ctx, user)
}
