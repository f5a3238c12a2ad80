package identity

import (
	"context"
	"fmt"

	"github.com/garments-erp/backend/internal/domain/identity"
	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PermissionSeeder makes sure the built-in roles and permissions exist
type PermissionSeeder struct {
	roleRepo    identity.RoleRepository
	permRepo    identity.PermissionRepository
	permissions *PermissionService
	tx          shared.TxRunner
	logger      *zap.Logger
}

// NewPermissionSeeder creates a seeder; permissions is used to flush cached grants and may be nil
func NewPermissionSeeder(
	roleRepo identity.RoleRepository,
	permRepo identity.PermissionRepository,
	permissions *PermissionService,
	tx shared.TxRunner,
	logger *zap.Logger,
) *PermissionSeeder {
	return &PermissionSeeder{
		roleRepo:    roleRepo,
		permRepo:    permRepo,
		permissions: permissions,
		tx:          tx,
		logger:      logger,
	}
}

// Seed is idempotent: it creates what is missing, reactivates inactive permissions,
// refreshes their descriptions and only inserts missing role links
func (s *PermissionSeeder) Seed(ctx context.Context) (*SeedSummary, error) {
	summary := &SeedSummary{}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		byCode, err := s.seedPermissions(ctx, summary)
		if err != nil {
			return err
		}
		return s.seedRoles(ctx, byCode, summary)
	})
	if err != nil {
		return nil, fmt.Errorf("seed permissions: %w", err)
	}

	if summary.Changed() && s.permissions != nil {
		s.permissions.InvalidateAll(ctx)
	}

	s.logger.Info("Permission seeding finished",
		zap.Int("permissions_created", summary.PermissionsCreated),
		zap.Int("permissions_updated", summary.PermissionsUpdated),
		zap.Int("roles_created", summary.RolesCreated),
		zap.Int("links_created", summary.LinksCreated))

	return summary, nil
}

func (s *PermissionSeeder) seedPermissions(ctx context.Context, summary *SeedSummary) (map[string]*identity.Permission, error) {
	existing, err := s.permRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]*identity.Permission, len(existing))
	for _, p := range existing {
		byCode[p.Code()] = p
	}

	for _, def := range identity.DefaultPermissions() {
		code := identity.PermissionCode(def.Resource, def.Action)
		perm, ok := byCode[code]
		if !ok {
			perm, err = identity.NewPermission(def.Name, def.Resource, def.Action, def.Description)
			if err != nil {
				return nil, err
			}
			if err := s.permRepo.Create(ctx, perm); err != nil {
				return nil, err
			}
			byCode[code] = perm
			summary.PermissionsCreated++
			continue
		}

		if perm.IsActive && perm.Description == def.Description {
			continue
		}
		if err := perm.Update(perm.Name, def.Description, true); err != nil {
			return nil, err
		}
		if err := s.permRepo.Update(ctx, perm); err != nil {
			return nil, err
		}
		summary.PermissionsUpdated++
	}

	return byCode, nil
}

func (s *PermissionSeeder) seedRoles(ctx context.Context, byCode map[string]*identity.Permission, summary *SeedSummary) error {
	for _, def := range identity.DefaultRoles() {
		role, err := s.roleRepo.FindByName(ctx, def.Name)
		if err != nil {
			if !isNotFound(err) {
				return err
			}
			role, err = identity.NewRole(def.Name, def.Description)
			if err != nil {
				return err
			}
			if err := s.roleRepo.Create(ctx, role); err != nil {
				return err
			}
			summary.RolesCreated++
		}

		missing := make([]*identity.Permission, 0, len(def.Permissions))
		for _, key := range def.Permissions {
			perm, ok := byCode[identity.PermissionCode(key.Resource, key.Action)]
			if !ok {
				return fmt.Errorf("role %s references unknown permission %s/%s", def.Name, key.Resource, key.Action)
			}
			if !role.HasPermissionID(perm.ID) {
				missing = append(missing, perm)
			}
		}
		if len(missing) == 0 {
			continue
		}

		ids := make([]uuid.UUID, len(missing))
		for i, perm := range missing {
			ids[i] = perm.ID
			role.GrantPermission(perm)
		}
		added, err := s.roleRepo.AddPermissions(ctx, role.ID, ids)
		if err != nil {
			return err
		}
		summary.LinksCreated += added
	}
	return nil
}
