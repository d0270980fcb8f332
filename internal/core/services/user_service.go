package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/easyledger/internal/apperrors"
	"github.com/SscSPs/easyledger/internal/core/domain"
	portsrepo "github.com/SscSPs/easyledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/easyledger/internal/core/ports/services"
	"github.com/SscSPs/easyledger/internal/dto"
	"github.com/SscSPs/easyledger/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates the user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{BaseService: newBaseService(), userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, validationError("email is required")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooShort) {
			return nil, validationError(err.Error())
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = domain.RoleUser
	}

	now := s.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		Role:         role,
		AuthProvider: domain.ProviderLocal,
		PasswordHash: hash,
	}
	user.Touch(now)

	if err := s.userRepo.SaveUser(ctx, user, domain.NewDefaultSettings(user.UserID, now)); err != nil {
		s.LogError(ctx, err, "Failed to create user", slog.String("email", email))
		return nil, fmt.Errorf("failed to create user in service: %w", err)
	}
	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) FindOrCreateOAuthUser(ctx context.Context, provider domain.AuthProvider, providerUserID, email, name string, emailVerified bool) (*domain.User, error) {
	email = normalizeEmail(email)
	if providerUserID == "" || email == "" {
		return nil, validationError("external identity is missing subject or email")
	}

	user, err := s.userRepo.FindUserByProvider(ctx, provider, providerUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user by provider: %w", err)
	}

	now := s.Now()

	// Link to an existing account with the same (verified) email.
	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		if !emailVerified {
			return nil, fmt.Errorf("%w: unverified email cannot be linked to an existing account", apperrors.ErrForbidden)
		}
		existing.AuthProvider = provider
		existing.ProviderUserID = providerUserID
		existing.EmailVerified = true
		if existing.Name == "" {
			existing.Name = name
		}
		existing.LastUpdatedAt = now
		if err := s.userRepo.UpdateUser(ctx, *existing); err != nil {
			return nil, fmt.Errorf("failed to link external identity: %w", err)
		}
		s.LogInfo(ctx, "Linked external identity to existing user", slog.String("user_id", existing.UserID), slog.String("provider", string(provider)))
		return existing, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	user = &domain.User{
		UserID:         uuid.NewString(),
		Email:          email,
		Name:           strings.TrimSpace(name),
		Role:           domain.RoleUser,
		AuthProvider:   provider,
		ProviderUserID: providerUserID,
		EmailVerified:  emailVerified,
	}
	user.Touch(now)
	if err := s.userRepo.SaveUser(ctx, *user, domain.NewDefaultSettings(user.UserID, now)); err != nil {
		return nil, fmt.Errorf("failed to create oauth user: %w", err)
	}
	s.LogInfo(ctx, "User created from external identity", slog.String("user_id", user.UserID), slog.String("provider", string(provider)))
	return user, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}
	return user, nil
}
