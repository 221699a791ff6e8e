package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"basegraph.app/roster/common/id"
	"basegraph.app/roster/internal/model"
	"basegraph.app/roster/internal/store"
)

type MembershipService interface {
	EnsureProfile(ctx context.Context, userID int64, email string) (*model.Profile, error)
	CreateMembership(ctx context.Context, userID, orgID int64, role model.Role) (*model.Membership, error)
	ListMembers(ctx context.Context, orgID, actorID int64) ([]model.Member, error)
	Leave(ctx context.Context, orgID, actorID int64) error
	Remove(ctx context.Context, orgID, userID, actorID int64) error
}

type membershipService struct {
	profiles    store.ProfileStore
	memberships store.MembershipStore
	guard       AccessGuard
}

func NewMembershipService(profiles store.ProfileStore, memberships store.MembershipStore, guard AccessGuard) MembershipService {
	return &membershipService{
		profiles:    profiles,
		memberships: memberships,
		guard:       guard,
	}
}

func (s *membershipService) EnsureProfile(ctx context.Context, userID int64, email string) (*model.Profile, error) {
	return ensureProfile(ctx, s.profiles, userID, email)
}

func (s *membershipService) CreateMembership(ctx context.Context, userID, orgID int64, role model.Role) (*model.Membership, error) {
	return createMembership(ctx, s.memberships, userID, orgID, role)
}

func (s *membershipService) ListMembers(ctx context.Context, orgID, actorID int64) ([]model.Member, error) {
	if _, err := s.guard.AssertMember(ctx, actorID, orgID, model.RoleViewer); err != nil {
		return nil, err
	}

	members, err := s.memberships.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	return members, nil
}

func (s *membershipService) Leave(ctx context.Context, orgID, actorID int64) error {
	role, err := s.guard.AssertMember(ctx, actorID, orgID, model.RoleViewer)
	if err != nil {
		return err
	}
	if role == model.RoleOwner {
		return ErrOwnerCannotLeave
	}

	if err := s.memberships.Delete(ctx, actorID, orgID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("deleting membership: %w", err)
	}

	slog.InfoContext(ctx, "member left organization", "org_id", orgID, "user_id", actorID)
	return nil
}

func (s *membershipService) Remove(ctx context.Context, orgID, userID, actorID int64) error {
	actorRole, err := s.guard.AssertMember(ctx, actorID, orgID, model.RoleAdmin)
	if err != nil {
		return err
	}

	target, err := s.memberships.Get(ctx, userID, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("getting membership: %w", err)
	}

	switch {
	case target.Role == model.RoleOwner:
		return ErrCannotRemoveOwner
	case target.Role == model.RoleAdmin && actorRole != model.RoleOwner:
		return Wrap(ErrForbidden, fmt.Errorf("only the owner can remove an admin"))
	}

	if err := s.memberships.Delete(ctx, userID, orgID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("deleting membership: %w", err)
	}

	slog.InfoContext(ctx, "member removed from organization",
		"org_id", orgID,
		"user_id", userID,
		"removed_by", actorID,
	)
	return nil
}

// ensureProfile is an idempotent get-or-create. It relies on the upsert, never check-then-insert.
func ensureProfile(ctx context.Context, profiles store.ProfileStore, userID int64, email string) (*model.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	p, err := profiles.Ensure(ctx, userID, model.DefaultProfileName(email), email)
	if err != nil {
		return nil, fmt.Errorf("ensuring profile: %w", err)
	}
	return p, nil
}

// createMembership inserts (user, org, role). A duplicate pair surfaces as ErrAlreadyMember.
func createMembership(ctx context.Context, memberships store.MembershipStore, userID, orgID int64, role model.Role) (*model.Membership, error) {
	m := &model.Membership{
		ID:     id.New(),
		UserID: userID,
		OrgID:  orgID,
		Role:   role,
	}
	if err := memberships.Create(ctx, m); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, Wrap(ErrAlreadyMember, err)
		}
		return nil, fmt.Errorf("creating membership: %w", err)
	}
	return m, nil
}
