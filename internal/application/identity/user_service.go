package identity

import (
	"context"
	"errors"
	"time"

	"github.com/garments-erp/backend/internal/domain/identity"
	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/garments-erp/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles user administration
type UserService struct {
	userRepo    identity.UserRepository
	roleRepo    identity.RoleRepository
	permissions *PermissionService
	tx          shared.TxRunner
	blacklist   auth.TokenBlacklist
	revokeTTL   time.Duration
	logger      *zap.Logger
}

// NewUserService creates a new user service; revokeTTL should cover the refresh token lifetime
func NewUserService(
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	permissions *PermissionService,
	tx shared.TxRunner,
	blacklist auth.TokenBlacklist,
	revokeTTL time.Duration,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		permissions: permissions,
		tx:          tx,
		blacklist:   blacklist,
		revokeTTL:   revokeTTL,
		logger:      logger,
	}
}

// UserListResult represents a page of users
type UserListResult = shared.Paginated[UserDTO]

// List returns users matching the filter
func (s *UserService) List(ctx context.Context, filter identity.UserFilter) (*UserListResult, error) {
	users, total, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, internalError("Failed to list users")
	}

	roleByID, err := s.rolesByID(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u, pickRoles(roleByID, u.RoleIDs))
	}

	result := shared.NewPaginated(dtos, total, filter.Number(), filter.Limit())
	return &result, nil
}

// GetByID returns a user with its roles
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDTO(ctx, user)
}

// Activate reactivates a user and clears any lock
func (s *UserService) Activate(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Activate()

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to activate user", zap.Error(err))
		return nil, internalError("Failed to activate user")
	}

	s.logger.Info("User activated", zap.String("user_id", id.String()))

	return s.toDTO(ctx, user)
}

// Deactivate deactivates a user and revokes its tokens
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := user.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to deactivate user", zap.Error(err))
		return nil, internalError("Failed to deactivate user")
	}
	s.revokeTokens(ctx, user.ID)

	s.logger.Info("User deactivated", zap.String("user_id", id.String()))

	return s.toDTO(ctx, user)
}

// Unlock unlocks a locked user account
func (s *UserService) Unlock(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := user.Unlock(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to unlock user", zap.Error(err))
		return nil, internalError("Failed to unlock user")
	}

	s.logger.Info("User unlocked", zap.String("user_id", id.String()))

	return s.toDTO(ctx, user)
}

// ResetPassword sets a new password without the old one (admin action)
func (s *UserService) ResetPassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to reset password", zap.Error(err))
		return internalError("Failed to reset password")
	}
	s.revokeTokens(ctx, user.ID)

	s.logger.Info("User password reset", zap.String("user_id", userID.String()))

	return nil
}

// AssignRoles replaces the roles of a user
func (s *UserService) AssignRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) (*UserDTO, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.SetRoles(roleIDs); err != nil {
		return nil, err
	}

	if len(user.RoleIDs) > 0 {
		roles, err := s.roleRepo.FindByIDs(ctx, user.RoleIDs)
		if err != nil {
			s.logger.Error("Failed to check roles", zap.Error(err))
			return nil, internalError("Failed to validate roles")
		}
		if len(roles) != len(user.RoleIDs) {
			return nil, ErrRoleNotFound
		}
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.SaveUserRoles(ctx, user); err != nil {
			return err
		}
		return s.userRepo.Update(ctx, user)
	})
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, domainErr
		}
		s.logger.Error("Failed to assign roles", zap.Error(err))
		return nil, internalError("Failed to assign roles")
	}

	s.permissions.Invalidate(ctx, user.ID)

	s.logger.Info("User roles assigned",
		zap.String("user_id", userID.String()),
		zap.Int("role_count", len(user.RoleIDs)))

	return s.toDTO(ctx, user)
}

func (s *UserService) revokeTokens(ctx context.Context, userID uuid.UUID) {
	if s.blacklist == nil {
		return
	}
	if err := s.blacklist.RevokeUser(ctx, userID.String(), s.revokeTTL); err != nil {
		s.logger.Error("Failed to revoke user tokens", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

func (s *UserService) toDTO(ctx context.Context, user *identity.User) (*UserDTO, error) {
	var roles []*identity.Role
	if len(user.RoleIDs) > 0 {
		var err error
		roles, err = s.roleRepo.FindByIDs(ctx, user.RoleIDs)
		if err != nil {
			s.logger.Error("Failed to load user roles", zap.Error(err))
			return nil, internalError("Failed to load user roles")
		}
	}
	dto := toUserDTO(user, roles)
	return &dto, nil
}

func (s *UserService) rolesByID(ctx context.Context) (map[uuid.UUID]*identity.Role, error) {
	roles, err := s.roleRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to load roles", zap.Error(err))
		return nil, internalError("Failed to load roles")
	}
	byID := make(map[uuid.UUID]*identity.Role, len(roles))
	for _, r := range roles {
		byID[r.ID] = r
	}
	return byID, nil
}

func pickRoles(byID map[uuid.UUID]*identity.Role, ids []uuid.UUID) []*identity.Role {
	roles := make([]*identity.Role, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			roles = append(roles, r)
		}
	}
	return roles
}

func (s *UserService) findUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("Failed to find user", zap.Error(err))
		return nil, internalError("Failed to find user")
	}
	return user, nil
}
