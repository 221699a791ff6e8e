package service

import (
	"context"
	"errors"
	"fmt"

	"basegraph.app/roster/internal/model"
	"basegraph.app/roster/internal/store"
)

// AccessGuard is the single authorization check for org-scoped operations.
type AccessGuard interface {
	// GetRole returns the user's role in org; ok is false when there is no membership.
	GetRole(ctx context.Context, userID, orgID int64) (role model.Role, ok bool, err error)
	HasRole(ctx context.Context, userID, orgID int64, minRole model.Role) (bool, error)
	// AssertMember fails with ErrForbidden unless the user holds at least minRole.
	AssertMember(ctx context.Context, userID, orgID int64, minRole model.Role) (model.Role, error)
}

type accessGuard struct {
	memberships store.MembershipStore
}

func NewAccessGuard(memberships store.MembershipStore) AccessGuard {
	return &accessGuard{memberships: memberships}
}

func (g *accessGuard) GetRole(ctx context.Context, userID, orgID int64) (model.Role, bool, error) {
	m, err := g.memberships.Get(ctx, userID, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("getting membership: %w", err)
	}
	return m.Role, true, nil
}

func (g *accessGuard) HasRole(ctx context.Context, userID, orgID int64, minRole model.Role) (bool, error) {
	role, ok, err := g.GetRole(ctx, userID, orgID)
	if err != nil || !ok {
		return false, err
	}
	return role.MeetsMinimum(minRole), nil
}

func (g *accessGuard) AssertMember(ctx context.Context, userID, orgID int64, minRole model.Role) (model.Role, error) {
	role, ok, err := g.GetRole(ctx, userID, orgID)
	if err != nil {
		return "", err
	}
	if !ok || !role.MeetsMinimum(minRole) {
		return "", Wrap(ErrForbidden, fmt.Errorf("user %d holds %q in org %d, needs %s", userID, role, orgID, minRole))
	}
	return role, nil
}
