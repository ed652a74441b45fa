package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/protrack-app/protrack/internal/permission"
)

// ErrBadCredentials occurs on a failed login. It deliberately does not say
// whether the account exists.
var ErrBadCredentials = errors.New("invalid email or password")

// Service provides business logic for user accounts.
type Service struct {
	logger *slog.Logger
	repo   *Repository
}

// NewService constructs a user service.
func NewService(logger *slog.Logger, repo *Repository) *Service {
	return &Service{logger: logger, repo: repo}
}

// List returns the tenant's users.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]User, error) {
	return s.repo.List(ctx, tenantID)
}

// Get returns a single user.
func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (*User, error) {
	return s.repo.Get(ctx, tenantID, id)
}

// Create validates, hashes the password and inserts a user.
func (s *Service) Create(ctx context.Context, u User, password string) (*User, error) {
	if err := validateUser(u); err != nil {
		return nil, err
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidUser)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	u.IsActive = true

	id, err := s.repo.Create(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	u.ID = id
	u.PasswordHash = ""
	return &u, nil
}

// Update rewrites a user's profile, role and permission map.
func (s *Service) Update(ctx context.Context, u User) (*User, error) {
	if err := validateUser(u); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.repo.Get(ctx, u.TenantID, u.ID)
}

// ChangePassword replaces a user's password.
func (s *Service) ChangePassword(ctx context.Context, tenantID, id uuid.UUID, password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidUser)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, tenantID, id, string(hash))
}

// Delete removes a user.
func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, id)
}

// Authenticate verifies credentials and returns the matching active user.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return u, nil
}

func validateUser(u User) error {
	if u.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidUser)
	}
	if u.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidUser)
	}
	switch u.Role {
	case permission.RoleMaster, permission.RoleManager, permission.RoleEntry:
	default:
		return fmt.Errorf("%w: unknown role %q", ErrInvalidUser, u.Role)
	}
	for area, level := range u.Permissions {
		if !knownArea(area) {
			return fmt.Errorf("%w: unknown permission area %q", ErrInvalidUser, area)
		}
		switch permission.Level(level) {
		case permission.LevelNone, permission.LevelRead, permission.LevelWrite:
		default:
			return fmt.Errorf("%w: unknown permission level %q", ErrInvalidUser, level)
		}
	}
	return nil
}

func knownArea(area string) bool {
	switch permission.Area(area) {
	case permission.AreaMaterial, permission.AreaLabor, permission.AreaEquipment,
		permission.AreaSubcontractor, permission.AreaOthers, permission.AreaCapLeases,
		permission.AreaConsumable, permission.AreaInvoices, permission.AreaProjects,
		permission.AreaUsers:
		return true
	}
	return false
}
