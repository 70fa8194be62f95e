package ports

import (
	"context"

	"github.com/directorylabs/user-directory/internal/core/domain"
)

// ListUsersFilter carries all query parameters for listing users.
type ListUsersFilter struct {
	Search   string // optional: case-insensitive substring match on name
	Page     int    // 1-based
	PageSize int    // rows per page
}

// UserRepository defines persistence operations against the authoritative store.
type UserRepository interface {
	// FindByID retrieves a user by its opaque identifier.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByName retrieves a user by its unique name.
	FindByName(ctx context.Context, name string) (*domain.User, error)
	// Create inserts a new user. A duplicate name yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateRoles replaces the role set of the user with the given id and
	// returns the updated record.
	UpdateRoles(ctx context.Context, id string, roles []string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// List returns a page of users matching filter and the total match count.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
}
