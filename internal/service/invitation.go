package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"basegraph.app/roster/common/id"
	"basegraph.app/roster/common/logger"
	"basegraph.app/roster/internal/model"
	"basegraph.app/roster/internal/notification"
	"basegraph.app/roster/internal/store"
)

const (
	InviteTokenLength = 32
	InviteExpiry      = 7 * 24 * time.Hour

	maxEmailLength = 254
)

type InvitationAction string

const (
	InvitationActionAccept  InvitationAction = "accept"
	InvitationActionDecline InvitationAction = "decline"
)

// ParseInvitationAction defaults to accept; only "decline" selects the other branch.
func ParseInvitationAction(s string) InvitationAction {
	if strings.EqualFold(strings.TrimSpace(s), string(InvitationActionDecline)) {
		return InvitationActionDecline
	}
	return InvitationActionAccept
}

// IssuedInvitation is a freshly created or rotated invitation and its link.
type IssuedInvitation struct {
	Invitation *model.Invitation
	OrgName    string
	InviteURL  string
}

type InvitationService interface {
	Create(ctx context.Context, actorID, orgID int64, email string, role model.Role) (*IssuedInvitation, error)
	List(ctx context.Context, actorID, orgID int64) ([]model.InvitationWithOrg, error)
	// GetInfo is the public lookup behind an invite link.
	GetInfo(ctx context.Context, token string) (*model.InvitationWithOrg, error)
	Accept(ctx context.Context, token string, actorID int64, email string) (*model.Membership, error)
	Decline(ctx context.Context, token string) error
	Revoke(ctx context.Context, actorID, invitationID int64) (*model.Invitation, error)
	Resend(ctx context.Context, actorID, invitationID int64) (*IssuedInvitation, error)
}

type invitationService struct {
	invStore     store.InvitationStore
	orgStore     store.OrganizationStore
	profileStore store.ProfileStore
	guard        AccessGuard
	txRunner     TxRunner
	dispatcher   NotificationDispatcher
	analytics    AnalyticsService
	siteURL      string
	now          func() time.Time
}

func NewInvitationService(
	invStore store.InvitationStore,
	orgStore store.OrganizationStore,
	profileStore store.ProfileStore,
	guard AccessGuard,
	txRunner TxRunner,
	dispatcher NotificationDispatcher,
	analytics AnalyticsService,
	siteURL string,
) InvitationService {
	return &invitationService{
		invStore:     invStore,
		orgStore:     orgStore,
		profileStore: profileStore,
		guard:        guard,
		txRunner:     txRunner,
		dispatcher:   dispatcher,
		analytics:    analytics,
		siteURL:      siteURL,
		now:          time.Now,
	}
}

func (s *invitationService) Create(ctx context.Context, actorID, orgID int64, email string, role model.Role) (*IssuedInvitation, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	role, err = normalizeInviteRole(role)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{OrgID: &orgID, UserID: &actorID})

	if _, err := s.guard.AssertMember(ctx, actorID, orgID, model.RoleAdmin); err != nil {
		return nil, err
	}

	org, err := s.getOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	token, err := generateSecureToken(InviteTokenLength)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}
	expiresAt := s.now().Add(InviteExpiry)

	var inv *model.Invitation
	existing, err := s.invStore.GetByOrgAndEmail(ctx, orgID, email)
	switch {
	case err == nil && existing.IsPending():
		return nil, ErrInvitationExists
	case err == nil:
		// Resolved invitations are reused so (org, email) keeps a single row.
		// A concurrent create may reopen it first; the conditional update then matches nothing.
		inv, err = s.invStore.Reissue(ctx, existing.ID, token, role, expiresAt, actorID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, Wrap(ErrInvitationExists, err)
			}
			return nil, fmt.Errorf("reissuing invitation: %w", err)
		}
	case errors.Is(err, store.ErrNotFound):
		inv = &model.Invitation{
			ID:        id.New(),
			OrgID:     orgID,
			Email:     email,
			Role:      role,
			Token:     token,
			Status:    model.InvitationStatusPending,
			InvitedBy: &actorID,
			ExpiresAt: expiresAt,
		}
		if err := s.invStore.Create(ctx, inv); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return nil, Wrap(ErrInvitationExists, err)
			}
			return nil, fmt.Errorf("creating invitation: %w", err)
		}
	default:
		return nil, fmt.Errorf("checking existing invitation: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{InvitationID: &inv.ID})
	slog.InfoContext(ctx, "invitation created",
		"role", inv.Role,
		"expires_at", inv.ExpiresAt,
	)

	s.notify(ctx, inv, org.Name)
	s.track(ctx, actorID, EventInvitationCreated, inv)
	if err := s.profileStore.SetOnboardingStep(ctx, actorID, model.OnboardingInvitedMember, true); err != nil {
		slog.WarnContext(ctx, "failed to record onboarding step", "error", err)
	}

	return s.issued(inv, org.Name), nil
}

func (s *invitationService) List(ctx context.Context, actorID, orgID int64) ([]model.InvitationWithOrg, error) {
	if _, err := s.guard.AssertMember(ctx, actorID, orgID, model.RoleAdmin); err != nil {
		return nil, err
	}

	invitations, err := s.invStore.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing invitations: %w", err)
	}
	return invitations, nil
}

func (s *invitationService) GetInfo(ctx context.Context, token string) (*model.InvitationWithOrg, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvitationTokenRequired
	}

	inv, err := s.invStore.GetWithOrgByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("getting invitation: %w", err)
	}

	// Resolved invitations stay visible so the page can explain their state.
	if inv.IsPending() && inv.IsExpiredAt(s.now()) {
		return nil, ErrInvitationExpired
	}
	return inv, nil
}

func (s *invitationService) Accept(ctx context.Context, token string, actorID int64, email string) (*model.Membership, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvitationTokenRequired
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &actorID})

	var (
		accepted   *model.Invitation
		membership *model.Membership
	)
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		inv, err := sp.Invitations().GetByTokenForUpdate(ctx, token)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvitationNotFound
			}
			return fmt.Errorf("getting invitation: %w", err)
		}

		if !inv.IsPending() {
			return ErrInvitationProcessed
		}
		if inv.IsExpiredAt(s.now()) {
			return ErrInvitationExpired
		}

		if _, err := sp.Memberships().Get(ctx, actorID, inv.OrgID); err == nil {
			return ErrAlreadyMember
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("checking membership: %w", err)
		}

		if _, err := ensureProfile(ctx, sp.Profiles(), actorID, email); err != nil {
			return err
		}

		membership, err = createMembership(ctx, sp.Memberships(), actorID, inv.OrgID, inv.Role)
		if err != nil {
			return err
		}

		accepted, err = sp.Invitations().Accept(ctx, inv.ID, actorID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvitationProcessed
			}
			return fmt.Errorf("accepting invitation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{OrgID: &accepted.OrgID, InvitationID: &accepted.ID})
	slog.InfoContext(ctx, "invitation accepted", "role", membership.Role)
	s.track(ctx, actorID, EventInvitationAccepted, accepted)

	return membership, nil
}

func (s *invitationService) Decline(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvitationTokenRequired
	}

	declined, err := s.invStore.DeclineByToken(ctx, token)
	if err != nil {
		return fmt.Errorf("declining invitation: %w", err)
	}

	inv, err := s.invStore.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvitationNotFound
		}
		return fmt.Errorf("getting invitation: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{OrgID: &inv.OrgID, InvitationID: &inv.ID})
	if !declined {
		slog.InfoContext(ctx, "invitation already resolved, decline ignored", "status", inv.Status)
		return nil
	}

	slog.InfoContext(ctx, "invitation declined")
	s.track(ctx, 0, EventInvitationDeclined, inv)
	return nil
}

// Revoke marks the invitation DECLINED whatever its current state.
func (s *invitationService) Revoke(ctx context.Context, actorID, invitationID int64) (*model.Invitation, error) {
	inv, err := s.getInvitation(ctx, invitationID)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{OrgID: &inv.OrgID, InvitationID: &inv.ID, UserID: &actorID})

	if _, err := s.guard.AssertMember(ctx, actorID, inv.OrgID, model.RoleAdmin); err != nil {
		return nil, err
	}

	revoked, err := s.invStore.Revoke(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("revoking invitation: %w", err)
	}

	slog.InfoContext(ctx, "invitation revoked", "previous_status", inv.Status)
	s.track(ctx, actorID, EventInvitationRevoked, revoked)
	return revoked, nil
}

func (s *invitationService) Resend(ctx context.Context, actorID, invitationID int64) (*IssuedInvitation, error) {
	inv, err := s.getInvitation(ctx, invitationID)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{OrgID: &inv.OrgID, InvitationID: &inv.ID, UserID: &actorID})

	if _, err := s.guard.AssertMember(ctx, actorID, inv.OrgID, model.RoleAdmin); err != nil {
		return nil, err
	}

	org, err := s.getOrganization(ctx, inv.OrgID)
	if err != nil {
		return nil, err
	}

	token, err := generateSecureToken(InviteTokenLength)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	rotated, err := s.invStore.Rotate(ctx, inv.ID, token, inv.Role, s.now().Add(InviteExpiry))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("rotating invitation: %w", err)
	}

	slog.InfoContext(ctx, "invitation resent",
		"previous_status", inv.Status,
		"expires_at", rotated.ExpiresAt,
	)

	s.notify(ctx, rotated, org.Name)
	s.track(ctx, actorID, EventInvitationResent, rotated)

	return s.issued(rotated, org.Name), nil
}

func (s *invitationService) getInvitation(ctx context.Context, invitationID int64) (*model.Invitation, error) {
	inv, err := s.invStore.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("getting invitation: %w", err)
	}
	return inv, nil
}

func (s *invitationService) getOrganization(ctx context.Context, orgID int64) (*model.Organization, error) {
	org, err := s.orgStore.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("getting organization: %w", err)
	}
	return org, nil
}

func (s *invitationService) issued(inv *model.Invitation, orgName string) *IssuedInvitation {
	return &IssuedInvitation{
		Invitation: inv,
		OrgName:    orgName,
		InviteURL:  notification.InviteURL(s.siteURL, inv.Token),
	}
}

func (s *invitationService) notify(ctx context.Context, inv *model.Invitation, orgName string) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.DispatchInvitation(ctx, inv, orgName); err != nil {
		slog.WarnContext(ctx, "invitation email not delivered", "error", err)
	}
}

func (s *invitationService) track(ctx context.Context, actorID int64, event string, inv *model.Invitation) {
	if s.analytics == nil {
		return
	}
	var userID *int64
	if actorID != 0 {
		userID = &actorID
	}
	_ = s.analytics.Track(ctx, TrackEvent{
		UserID: userID,
		Name:   event,
		Properties: map[string]any{
			"org_id":        strconv.FormatInt(inv.OrgID, 10),
			"invitation_id": strconv.FormatInt(inv.ID, 10),
			"role":          string(inv.Role),
		},
	})
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(email) > maxEmailLength {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func normalizeInviteRole(role model.Role) (model.Role, error) {
	if strings.TrimSpace(string(role)) == "" {
		return model.RoleMember, nil
	}
	parsed, ok := model.ParseRole(string(role))
	if !ok || !parsed.IsInvitable() {
		return "", ErrInvalidRole
	}
	return parsed, nil
}

func generateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
