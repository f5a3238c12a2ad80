package identity

import (
	"context"
	"errors"
	"slices"
	"sort"

	"github.com/garments-erp/backend/internal/domain/identity"
	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/garments-erp/backend/internal/infrastructure/cache"
	"github.com/garments-erp/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PermissionService answers permission checks and manages permissions and direct user grants
type PermissionService struct {
	permRepo identity.PermissionRepository
	userRepo identity.UserRepository
	cache    *cache.PermissionCache
	metrics  *telemetry.Metrics
	logger   *zap.Logger
}

// NewPermissionService creates a permission service; permCache may be nil
func NewPermissionService(
	permRepo identity.PermissionRepository,
	userRepo identity.UserRepository,
	permCache *cache.PermissionCache,
	metrics *telemetry.Metrics,
	logger *zap.Logger,
) *PermissionService {
	return &PermissionService{
		permRepo: permRepo,
		userRepo: userRepo,
		cache:    permCache,
		metrics:  metrics,
		logger:   logger,
	}
}

// EffectivePermissions returns the sorted permission codes the user holds, direct grants first merged with role grants
func (s *PermissionService) EffectivePermissions(ctx context.Context, userID uuid.UUID) ([]string, error) {
	if s.cache != nil {
		codes, hit, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.logger.Warn("Permission cache read failed", zap.String("user_id", userID.String()), zap.Error(err))
		}
		s.metrics.CacheLookup("permissions", hit)
		if hit {
			return codes, nil
		}
	}

	direct, err := s.permRepo.FindDirectForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	viaRoles, err := s.permRepo.FindViaRolesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(direct)+len(viaRoles))
	codes := make([]string, 0, len(direct)+len(viaRoles))
	for _, p := range append(direct, viaRoles...) {
		if !p.IsActive || seen[p.Code()] {
			continue
		}
		seen[p.Code()] = true
		codes = append(codes, p.Code())
	}
	sort.Strings(codes)

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, codes); err != nil {
			s.logger.Warn("Permission cache write failed", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}

	return codes, nil
}

// HasPermission reports whether the user holds resource/action through an active grant
func (s *PermissionService) HasPermission(ctx context.Context, userID uuid.UUID, resource, action string) (bool, error) {
	codes, err := s.EffectivePermissions(ctx, userID)
	if err != nil {
		return false, err
	}
	_, found := slices.BinarySearch(codes, identity.PermissionCode(resource, action))
	return found, nil
}

// Check wraps HasPermission for the permission check endpoint
func (s *PermissionService) Check(ctx context.Context, userID uuid.UUID, resource, action string) (*PermissionCheckResult, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	ok, err := s.HasPermission(ctx, userID, resource, action)
	if err != nil {
		s.logger.Error("Permission check failed", zap.Error(err))
		return nil, internalError("Failed to check permission")
	}
	return &PermissionCheckResult{UserID: userID, Resource: resource, Action: action, HasPermission: ok}, nil
}

// List returns all permissions, optionally only active ones
func (s *PermissionService) List(ctx context.Context, activeOnly bool) ([]PermissionDTO, error) {
	perms, err := s.permRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list permissions", zap.Error(err))
		return nil, internalError("Failed to list permissions")
	}
	if activeOnly {
		perms = slices.DeleteFunc(perms, func(p *identity.Permission) bool { return !p.IsActive })
	}
	return toPermissionDTOs(perms), nil
}

// GetByID returns one permission
func (s *PermissionService) GetByID(ctx context.Context, id uuid.UUID) (*PermissionDTO, error) {
	perm, err := s.findPermission(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toPermissionDTO(perm)
	return &dto, nil
}

// Create adds a permission; resource/action pairs are unique ignoring case
func (s *PermissionService) Create(ctx context.Context, input CreatePermissionInput) (*PermissionDTO, error) {
	perm, err := identity.NewPermission(input.Name, input.Resource, input.Action, input.Description)
	if err != nil {
		return nil, err
	}

	_, err = s.permRepo.FindByResourceAction(ctx, perm.Resource, perm.Action)
	switch {
	case err == nil:
		return nil, ErrDuplicatePerm
	case !isNotFound(err):
		s.logger.Error("Failed to check permission existence", zap.Error(err))
		return nil, internalError("Failed to create permission")
	}

	if err := s.permRepo.Create(ctx, perm); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, ErrDuplicatePerm
		}
		s.logger.Error("Failed to create permission", zap.Error(err))
		return nil, internalError("Failed to create permission")
	}

	s.logger.Info("Permission created", zap.String("code", perm.Code()))

	dto := toPermissionDTO(perm)
	return &dto, nil
}

// Update changes name, description and active flag
func (s *PermissionService) Update(ctx context.Context, input UpdatePermissionInput) (*PermissionDTO, error) {
	perm, err := s.findPermission(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := perm.Update(input.Name, input.Description, input.IsActive); err != nil {
		return nil, err
	}
	if err := s.permRepo.Update(ctx, perm); err != nil {
		s.logger.Error("Failed to update permission", zap.Error(err))
		return nil, internalError("Failed to update permission")
	}

	s.InvalidateAll(ctx)

	dto := toPermissionDTO(perm)
	return &dto, nil
}

// Delete deactivates a permission; grants stay recorded but stop counting
func (s *PermissionService) Delete(ctx context.Context, id uuid.UUID) error {
	perm, err := s.findPermission(ctx, id)
	if err != nil {
		return err
	}
	if !perm.IsActive {
		return nil
	}
	if err := perm.Update(perm.Name, perm.Description, false); err != nil {
		return err
	}
	if err := s.permRepo.Update(ctx, perm); err != nil {
		s.logger.Error("Failed to deactivate permission", zap.Error(err))
		return internalError("Failed to delete permission")
	}

	s.logger.Info("Permission deactivated", zap.String("code", perm.Code()))
	s.InvalidateAll(ctx)
	return nil
}

// UserPermissions lists the permissions granted straight to a user
func (s *PermissionService) UserPermissions(ctx context.Context, userID uuid.UUID) ([]PermissionDTO, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	perms, err := s.permRepo.FindDirectForUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load user permissions", zap.Error(err))
		return nil, internalError("Failed to load user permissions")
	}
	return toPermissionDTOs(perms), nil
}

// GrantToUser adds a direct grant
func (s *PermissionService) GrantToUser(ctx context.Context, userID, permissionID uuid.UUID) error {
	if _, err := s.findUser(ctx, userID); err != nil {
		return err
	}
	perm, err := s.findPermission(ctx, permissionID)
	if err != nil {
		return err
	}
	if err := s.permRepo.GrantToUser(ctx, userID, perm.ID); err != nil {
		s.logger.Error("Failed to grant permission", zap.Error(err))
		return internalError("Failed to grant permission")
	}

	s.logger.Info("Permission granted to user",
		zap.String("user_id", userID.String()),
		zap.String("code", perm.Code()))
	s.Invalidate(ctx, userID)
	return nil
}

// RevokeFromUser removes a direct grant
func (s *PermissionService) RevokeFromUser(ctx context.Context, userID, permissionID uuid.UUID) error {
	if err := s.permRepo.RevokeFromUser(ctx, userID, permissionID); err != nil {
		if isNotFound(err) {
			return ErrPermissionNotFound
		}
		s.logger.Error("Failed to revoke permission", zap.Error(err))
		return internalError("Failed to revoke permission")
	}

	s.logger.Info("Permission revoked from user",
		zap.String("user_id", userID.String()),
		zap.String("permission_id", permissionID.String()))
	s.Invalidate(ctx, userID)
	return nil
}

// Invalidate drops the cached permissions of one user
func (s *PermissionService) Invalidate(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		s.logger.Warn("Permission cache invalidation failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

// InvalidateAll drops every cached permission set
func (s *PermissionService) InvalidateAll(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.logger.Warn("Permission cache flush failed", zap.Error(err))
	}
}

func (s *PermissionService) findPermission(ctx context.Context, id uuid.UUID) (*identity.Permission, error) {
	perm, err := s.permRepo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPermissionNotFound
		}
		s.logger.Error("Failed to find permission", zap.Error(err))
		return nil, internalError("Failed to find permission")
	}
	return perm, nil
}

func (s *PermissionService) findUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
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
