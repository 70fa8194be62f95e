package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/directorylabs/user-directory/internal/api/metrics"
	"github.com/directorylabs/user-directory/internal/core/domain"
	"github.com/directorylabs/user-directory/internal/core/ports"
)

// UserService implements the directory use cases on top of the Resolver and
// the authoritative store.
type UserService struct {
	repo     ports.UserRepository
	resolver *Resolver
	log      zerolog.Logger
}

func NewUserService(repo ports.UserRepository, resolver *Resolver, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, resolver: resolver, log: log}
}

// Create persists a new user with the default role set. The name pre-check
// gives a clean duplicate error; the store's unique index backstops the race.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*ports.UserView, error) {
	if input.Name == "" || input.Password == "" {
		return nil, fmt.Errorf("Name and password are required: %w", domain.ErrInvalidUserData)
	}

	existing, err := s.repo.FindByName(ctx, input.Name)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrUserExists
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Password:  input.Password,
		Roles:     []string{domain.RoleUser},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.UsersCreatedTotal.Inc()
	s.log.Info().Str("user_id", created.ID).Str("name", created.Name).Msg("user created")

	return ports.NewUserView(created, false)
}

// FindOne resolves a user by id or name through the cache-aside path.
func (s *UserService) FindOne(ctx context.Context, idOrName string, includePassword bool) (*ports.UserView, error) {
	if idOrName == "" {
		return nil, fmt.Errorf("idOrName must be provided: %w", domain.ErrInvalidUserData)
	}

	user, err := s.resolver.Resolve(ctx, idOrName)
	if err != nil {
		return nil, err
	}

	view, err := ports.NewUserView(user, includePassword)
	if err != nil {
		s.log.Error().Err(err).Str("id_or_name", idOrName).Msg("failed to project user view")
		return nil, err
	}
	return view, nil
}

// FindAll lists users with optional name search. Pagination bounds are
// checked before any store query is issued.
func (s *UserService) FindAll(ctx context.Context, input ports.ListUsersInput) (*ports.ListUsersResult, error) {
	if input.Page < 1 || input.PageSize < 1 {
		return nil, fmt.Errorf("Page and pageSize must be greater than 0: %w", domain.ErrInvalidPagination)
	}

	users, total, err := s.repo.List(ctx, ports.ListUsersFilter{
		Search:   input.Search,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	views := make([]*ports.UserView, 0, len(users))
	for _, u := range users {
		view, err := ports.NewUserView(u, false)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	totalPages := int((total + int64(input.PageSize) - 1) / int64(input.PageSize))

	return &ports.ListUsersResult{
		Users: views,
		Pagination: ports.Pagination{
			Page:       input.Page,
			PageSize:   input.PageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// Delete removes a user from the store and drops both of its cache keys.
func (s *UserService) Delete(ctx context.Context, idOrName string) error {
	if idOrName == "" {
		return fmt.Errorf("idOrName must be provided: %w", domain.ErrInvalidUserData)
	}

	user, err := s.resolver.Resolve(ctx, idOrName)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	metrics.UsersDeletedTotal.Inc()
	s.log.Info().Str("user_id", user.ID).Str("name", user.Name).Msg("user deleted")

	s.resolver.Invalidate(ctx, user)
	return nil
}
