package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/garments-erp/backend/internal/domain/identity"
	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoleService handles role management and role permission sets
type RoleService struct {
	roleRepo    identity.RoleRepository
	permRepo    identity.PermissionRepository
	permissions *PermissionService
	tx          shared.TxRunner
	logger      *zap.Logger
}

// NewRoleService creates a new role service
func NewRoleService(
	roleRepo identity.RoleRepository,
	permRepo identity.PermissionRepository,
	permissions *PermissionService,
	tx shared.TxRunner,
	logger *zap.Logger,
) *RoleService {
	return &RoleService{
		roleRepo:    roleRepo,
		permRepo:    permRepo,
		permissions: permissions,
		tx:          tx,
		logger:      logger,
	}
}

// List returns all roles with their permission codes
func (s *RoleService) List(ctx context.Context) ([]RoleDTO, error) {
	roles, err := s.roleRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list roles", zap.Error(err))
		return nil, internalError("Failed to list roles")
	}

	dtos := make([]RoleDTO, len(roles))
	for i, r := range roles {
		dtos[i] = toRoleDTO(r)
	}
	return dtos, nil
}

// GetByID returns a role
func (s *RoleService) GetByID(ctx context.Context, id uuid.UUID) (*RoleDTO, error) {
	role, err := s.findRole(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toRoleDTO(role)
	return &dto, nil
}

// Create creates a custom role with an optional initial permission set
func (s *RoleService) Create(ctx context.Context, input CreateRoleInput) (*RoleDTO, error) {
	role, err := identity.NewRole(input.Name, input.Description)
	if err != nil {
		return nil, err
	}

	_, err = s.roleRepo.FindByName(ctx, role.Name)
	switch {
	case err == nil:
		return nil, ErrDuplicateRole
	case !isNotFound(err):
		s.logger.Error("Failed to check role name", zap.Error(err))
		return nil, internalError("Failed to create role")
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.roleRepo.Create(ctx, role); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				return ErrDuplicateRole
			}
			return err
		}
		if len(input.PermissionIDs) == 0 {
			return nil
		}
		return s.replacePermissions(ctx, role, input.PermissionIDs)
	})
	if err != nil {
		return nil, s.wrap(err, "Failed to create role")
	}

	s.logger.Info("Role created", zap.String("role", role.Name))

	dto := toRoleDTO(role)
	return &dto, nil
}

// Update renames a custom role or changes its description
func (s *RoleService) Update(ctx context.Context, input UpdateRoleInput) (*RoleDTO, error) {
	role, err := s.findRole(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if role.IsSystemRole() && name != role.Name {
		return nil, ErrSystemRole
	}
	if !strings.EqualFold(name, role.Name) {
		if _, err := s.roleRepo.FindByName(ctx, name); err == nil {
			return nil, ErrDuplicateRole
		}
	}

	if err := role.Update(name, input.Description); err != nil {
		return nil, err
	}
	if err := s.roleRepo.Update(ctx, role); err != nil {
		s.logger.Error("Failed to update role", zap.Error(err))
		return nil, internalError("Failed to update role")
	}

	dto := toRoleDTO(role)
	return &dto, nil
}

// Enable activates a role
func (s *RoleService) Enable(ctx context.Context, id uuid.UUID) (*RoleDTO, error) {
	return s.setActive(ctx, id, true)
}

// Disable deactivates a custom role; members lose its permissions
func (s *RoleService) Disable(ctx context.Context, id uuid.UUID) (*RoleDTO, error) {
	return s.setActive(ctx, id, false)
}

func (s *RoleService) setActive(ctx context.Context, id uuid.UUID, active bool) (*RoleDTO, error) {
	role, err := s.findRole(ctx, id)
	if err != nil {
		return nil, err
	}
	if !active && role.IsSystemRole() {
		return nil, ErrSystemRole
	}
	if active {
		role.Enable()
	} else {
		role.Disable()
	}
	if err := s.roleRepo.Update(ctx, role); err != nil {
		s.logger.Error("Failed to change role status", zap.Error(err))
		return nil, internalError("Failed to update role")
	}

	s.permissions.InvalidateAll(ctx)

	dto := toRoleDTO(role)
	return &dto, nil
}

// Permissions returns the permissions linked to a role
func (s *RoleService) Permissions(ctx context.Context, id uuid.UUID) ([]PermissionDTO, error) {
	role, err := s.findRole(ctx, id)
	if err != nil {
		return nil, err
	}
	dtos := make([]PermissionDTO, len(role.Permissions))
	for i := range role.Permissions {
		dtos[i] = toPermissionDTO(&role.Permissions[i])
	}
	return dtos, nil
}

// SetPermissions replaces the permission set of a role
func (s *RoleService) SetPermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) (*RoleDTO, error) {
	role, err := s.findRole(ctx, roleID)
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.replacePermissions(ctx, role, permissionIDs)
	})
	if err != nil {
		return nil, s.wrap(err, "Failed to update role permissions")
	}

	s.logger.Info("Role permissions replaced",
		zap.String("role", role.Name),
		zap.Int("permission_count", len(role.PermissionIDs)))
	s.permissions.InvalidateAll(ctx)

	dto := toRoleDTO(role)
	return &dto, nil
}

func (s *RoleService) replacePermissions(ctx context.Context, role *identity.Role, permissionIDs []uuid.UUID) error {
	wanted := make(map[uuid.UUID]bool, len(permissionIDs))
	for _, id := range permissionIDs {
		wanted[id] = true
	}

	for _, id := range append([]uuid.UUID(nil), role.PermissionIDs...) {
		if wanted[id] {
			continue
		}
		if err := s.roleRepo.RemovePermission(ctx, role.ID, id); err != nil && !isNotFound(err) {
			return err
		}
		if err := role.RevokePermission(id); err != nil {
			return err
		}
	}

	added := make([]uuid.UUID, 0, len(permissionIDs))
	for id := range wanted {
		if role.HasPermissionID(id) {
			continue
		}
		perm, err := s.permRepo.FindByID(ctx, id)
		if err != nil {
			if isNotFound(err) {
				return ErrPermissionNotFound
			}
			return err
		}
		role.GrantPermission(perm)
		added = append(added, id)
	}
	if len(added) == 0 {
		return nil
	}
	_, err := s.roleRepo.AddPermissions(ctx, role.ID, added)
	return err
}

func (s *RoleService) findRole(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrRoleNotFound
		}
		s.logger.Error("Failed to find role", zap.Error(err))
		return nil, internalError("Failed to find role")
	}
	return role, nil
}

// wrap passes domain errors through and hides infrastructure failures
func (s *RoleService) wrap(err error, message string) error {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	s.logger.Error(message, zap.Error(err))
	return internalError(message)
}
