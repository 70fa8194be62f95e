package ports

import (
	"context"
	"fmt"
	"time"

	"github.com/directorylabs/user-directory/internal/core/domain"
)

// CreateUserInput carries all data needed to create a new user.
type CreateUserInput struct {
	Name     string
	Password string
}

// UserView is the outward projection of a user record. The credential is
// omitted unless the projection was built with includePassword=true.
type UserView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Password  string    `json:"password,omitempty"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserView projects a record into its response shape. Credential exposure
// is a parameter of the projection, not a subtype.
func NewUserView(u *domain.User, includePassword bool) (*UserView, error) {
	if u == nil || u.ID == "" {
		return nil, fmt.Errorf("project user view: %w", domain.ErrInternal)
	}
	v := &UserView{
		ID:        u.ID,
		Name:      u.Name,
		Roles:     u.Roles,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if includePassword {
		v.Password = u.Password
	}
	return v, nil
}

// ListUsersInput carries all parameters for the list endpoint.
type ListUsersInput struct {
	Search   string
	Page     int
	PageSize int
}

// Pagination describes the page window of a list result.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ListUsersResult is returned by FindAll.
type ListUsersResult struct {
	Users      []*UserView `json:"users"`
	Pagination Pagination  `json:"pagination"`
}

// UserService defines the use-case operations of the directory.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*UserView, error)
	// FindOne resolves a user by id or name. The credential is included in
	// the projection only when explicitly requested.
	FindOne(ctx context.Context, idOrName string, includePassword bool) (*UserView, error)
	FindAll(ctx context.Context, input ListUsersInput) (*ListUsersResult, error)
	Delete(ctx context.Context, idOrName string) error
	// HasRoles reports membership for each requested label, valid or not.
	HasRoles(ctx context.Context, idOrName string, roles []string) (map[string]bool, error)
	AddRoles(ctx context.Context, idOrName string, roles []string) (*UserView, error)
	RemoveRoles(ctx context.Context, idOrName string, roles []string) (*UserView, error)
}
