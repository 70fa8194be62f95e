package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/directorylabs/user-directory/internal/api/metrics"
	"github.com/directorylabs/user-directory/internal/core/domain"
	"github.com/directorylabs/user-directory/internal/core/ports"
)

// HasRoles reports, for every requested label, whether the resolved user
// holds it. Labels are not validated: unknown ones simply report false.
func (s *UserService) HasRoles(ctx context.Context, idOrName string, roles []string) (map[string]bool, error) {
	user, err := s.resolver.Resolve(ctx, idOrName)
	if err != nil {
		return nil, err
	}

	result := make(map[string]bool, len(roles))
	for _, role := range roles {
		result[role] = user.HasRole(role)
	}
	return result, nil
}

// AddRoles grants the requested roles that are both valid and not already
// held. A net-empty change is rejected rather than silently succeeding.
func (s *UserService) AddRoles(ctx context.Context, idOrName string, roles []string) (*ports.UserView, error) {
	user, err := s.resolver.Resolve(ctx, idOrName)
	if err != nil {
		return nil, err
	}

	newRoles := filterValidNewRoles(user.Roles, roles)
	if len(newRoles) == 0 {
		return nil, fmt.Errorf("User already has all these roles or invalid roles provided: %w", domain.ErrInvalidUserData)
	}

	updated, err := s.repo.UpdateRoles(ctx, user.ID, append(append([]string{}, user.Roles...), newRoles...))
	if err != nil {
		return nil, fmt.Errorf("add roles: %w", err)
	}

	metrics.RoleMutationsTotal.WithLabelValues("add").Inc()
	s.log.Info().Str("user_id", user.ID).Str("roles", strings.Join(newRoles, ",")).Msg("roles added")

	s.resolver.Refresh(ctx, updated)
	return ports.NewUserView(updated, false)
}

// RemoveRoles revokes the requested roles. The call fails when none of them
// are held, and when removal would leave the user with no role at all.
func (s *UserService) RemoveRoles(ctx context.Context, idOrName string, roles []string) (*ports.UserView, error) {
	user, err := s.resolver.Resolve(ctx, idOrName)
	if err != nil {
		return nil, err
	}

	remaining := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		if !contains(roles, r) {
			remaining = append(remaining, r)
		}
	}

	if len(remaining) == len(user.Roles) {
		return nil, fmt.Errorf("User does not have any of these roles: %w", domain.ErrInvalidUserData)
	}
	if len(remaining) == 0 {
		return nil, fmt.Errorf("User must have at least one role: %w", domain.ErrInvalidUserData)
	}

	updated, err := s.repo.UpdateRoles(ctx, user.ID, remaining)
	if err != nil {
		return nil, fmt.Errorf("remove roles: %w", err)
	}

	metrics.RoleMutationsTotal.WithLabelValues("remove").Inc()
	s.log.Info().Str("user_id", user.ID).Str("roles", strings.Join(roles, ",")).Msg("roles removed")

	s.resolver.Refresh(ctx, updated)
	return ports.NewUserView(updated, false)
}

// filterValidNewRoles keeps the requested labels that belong to the role
// domain and are not already held, deduplicating the request itself.
func filterValidNewRoles(existing, requested []string) []string {
	var out []string
	for _, r := range requested {
		if !domain.IsValidRole(r) {
			continue
		}
		if contains(existing, r) || contains(out, r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
