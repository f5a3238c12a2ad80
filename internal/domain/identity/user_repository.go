package identity

import (
	"context"

	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository persists users and their role links. Lookups by
// username and email expect the normalized (lowercase) form.
type UserRepository interface {
	// Create inserts the user and its role links
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	// FindByID loads the user with RoleIDs populated
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindAll returns one page ordered by username, plus the total match count
	FindAll(ctx context.Context, filter UserFilter) ([]*User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// SaveUserRoles makes the stored links equal user.RoleIDs
	SaveUserRoles(ctx context.Context, user *User) error
}

// UserFilter narrows a user listing. Keyword matches username, email and
// either name part.
type UserFilter struct {
	shared.PageRequest
	Keyword string
	Status  *UserStatus
	RoleID  *uuid.UUID
}

// NewUserFilter asks for the first page at the default size
func NewUserFilter() UserFilter {
	return UserFilter{PageRequest: shared.PageRequest{Page: 1, PageSize: shared.DefaultPageSize}}
}
