package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"basegraph.app/roster/common"
	"basegraph.app/roster/common/id"
	"basegraph.app/roster/common/logger"
	"basegraph.app/roster/internal/model"
	"basegraph.app/roster/internal/store"
)

const (
	minOrgNameLength = 2
	maxOrgNameLength = 100
)

// OrganizationList is what a user sees in the org switcher.
type OrganizationList struct {
	Organizations []model.OrganizationWithRole
	ActiveOrgID   *int64
}

type OrganizationService interface {
	Create(ctx context.Context, actorID int64, email, name string) (*model.Organization, error)
	ListForUser(ctx context.Context, actorID int64) (*OrganizationList, error)
	Get(ctx context.Context, actorID, orgID int64) (*model.OrganizationWithRole, error)
	Rename(ctx context.Context, actorID, orgID int64, name string) (*model.Organization, error)
	Switch(ctx context.Context, actorID, orgID int64) error
}

type organizationService struct {
	orgStore        store.OrganizationStore
	profileStore    store.ProfileStore
	membershipStore store.MembershipStore
	guard           AccessGuard
	txRunner        TxRunner
}

func NewOrganizationService(
	orgStore store.OrganizationStore,
	profileStore store.ProfileStore,
	membershipStore store.MembershipStore,
	guard AccessGuard,
	txRunner TxRunner,
) OrganizationService {
	return &organizationService{
		orgStore:        orgStore,
		profileStore:    profileStore,
		membershipStore: membershipStore,
		guard:           guard,
		txRunner:        txRunner,
	}
}

// Create makes the actor the OWNER of a new org and selects it as their active org.
func (s *organizationService) Create(ctx context.Context, actorID int64, email, name string) (*model.Organization, error) {
	name, slug, err := normalizeOrgName(name)
	if err != nil {
		return nil, err
	}

	org := &model.Organization{
		ID:      id.New(),
		OwnerID: actorID,
		Name:    name,
		Slug:    slug,
	}

	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if _, err := ensureProfile(ctx, sp.Profiles(), actorID, email); err != nil {
			return err
		}

		if err := sp.Organizations().Create(ctx, org); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return Wrap(ErrOrganizationNameTaken, err)
			}
			return fmt.Errorf("creating organization: %w", err)
		}

		if _, err := createMembership(ctx, sp.Memberships(), actorID, org.ID, model.RoleOwner); err != nil {
			return err
		}

		if err := sp.Profiles().SetActiveOrg(ctx, actorID, &org.ID); err != nil {
			return fmt.Errorf("setting active organization: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{OrgID: &org.ID, UserID: &actorID})
	slog.InfoContext(ctx, "organization created", "slug", org.Slug)

	return org, nil
}

func (s *organizationService) ListForUser(ctx context.Context, actorID int64) (*OrganizationList, error) {
	orgs, err := s.orgStore.ListForUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}

	list := &OrganizationList{Organizations: orgs}
	if len(orgs) == 0 {
		return list, nil
	}

	profile, err := s.profileStore.GetByUserID(ctx, actorID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("getting profile: %w", err)
	}
	if profile != nil && profile.ActiveOrgID != nil && containsOrg(orgs, *profile.ActiveOrgID) {
		list.ActiveOrgID = profile.ActiveOrgID
		return list, nil
	}

	first, err := s.membershipStore.GetFirstForUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("getting first membership: %w", err)
	}
	list.ActiveOrgID = &first.OrgID

	if profile != nil {
		if err := s.profileStore.SetActiveOrg(ctx, actorID, &first.OrgID); err != nil {
			slog.WarnContext(ctx, "failed to persist active organization",
				"error", err,
				"org_id", first.OrgID)
		}
	}

	return list, nil
}

func (s *organizationService) Get(ctx context.Context, actorID, orgID int64) (*model.OrganizationWithRole, error) {
	role, err := s.guard.AssertMember(ctx, actorID, orgID, model.RoleViewer)
	if err != nil {
		return nil, err
	}

	org, err := s.orgStore.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("getting organization: %w", err)
	}

	return &model.OrganizationWithRole{Organization: *org, Role: role}, nil
}

func (s *organizationService) Rename(ctx context.Context, actorID, orgID int64, name string) (*model.Organization, error) {
	name, slug, err := normalizeOrgName(name)
	if err != nil {
		return nil, err
	}

	if _, err := s.guard.AssertMember(ctx, actorID, orgID, model.RoleAdmin); err != nil {
		return nil, err
	}

	org, err := s.orgStore.Rename(ctx, orgID, name, slug)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, ErrOrganizationNotFound
		case errors.Is(err, store.ErrAlreadyExists):
			return nil, Wrap(ErrOrganizationNameTaken, err)
		}
		return nil, fmt.Errorf("renaming organization: %w", err)
	}

	slog.InfoContext(ctx, "organization renamed",
		"org_id", orgID,
		"renamed_by", actorID,
		"slug", org.Slug)

	return org, nil
}

func (s *organizationService) Switch(ctx context.Context, actorID, orgID int64) error {
	if _, err := s.guard.AssertMember(ctx, actorID, orgID, model.RoleViewer); err != nil {
		return err
	}

	if err := s.profileStore.SetActiveOrg(ctx, actorID, &orgID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("setting active organization: %w", err)
	}
	return nil
}

func normalizeOrgName(name string) (string, string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < minOrgNameLength || n > maxOrgNameLength {
		return "", "", ErrInvalidOrganizationName
	}

	slug, err := common.Slugify(name)
	if err != nil {
		return "", "", ErrInvalidOrganizationName
	}
	return name, slug, nil
}

func containsOrg(orgs []model.OrganizationWithRole, orgID int64) bool {
	for _, o := range orgs {
		if o.ID == orgID {
			return true
		}
	}
	return false
}
