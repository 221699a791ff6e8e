package store

import (
	"context"
	"errors"
	"time"

	"basegraph.app/roster/internal/model"
)

var (
	// ErrNotFound is returned when a requested entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a write violates a unique constraint
	ErrAlreadyExists = errors.New("already exists")
)

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpsertByWorkOSID(ctx context.Context, user *model.User) error
}

// SessionStore defines the contract for session data access
type SessionStore interface {
	Create(ctx context.Context, session *model.Session) error
	GetValid(ctx context.Context, id int64) (*model.Session, error) // checks expiry
	Delete(ctx context.Context, id int64) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// OrganizationStore defines the contract for organization data access
type OrganizationStore interface {
	Create(ctx context.Context, org *model.Organization) error
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	Rename(ctx context.Context, id int64, name, slug string) (*model.Organization, error)
	ListForUser(ctx context.Context, userID int64) ([]model.OrganizationWithRole, error)
}

// ProfileStore defines the contract for profile data access
type ProfileStore interface {
	// Ensure is an upsert keyed by user id; concurrent callers converge on one row.
	Ensure(ctx context.Context, userID int64, fullName, email string) (*model.Profile, error)
	GetByUserID(ctx context.Context, userID int64) (*model.Profile, error)
	SetActiveOrg(ctx context.Context, userID int64, orgID *int64) error
	// UpdateSettings applies the non-nil fields of upd; ErrNotFound without a profile.
	UpdateSettings(ctx context.Context, userID int64, upd model.ProfileUpdate) (*model.Profile, error)
	SetOnboardingStep(ctx context.Context, userID int64, step model.OnboardingStep, done bool) error
}

// MembershipStore defines the contract for membership data access
type MembershipStore interface {
	Create(ctx context.Context, m *model.Membership) error
	Get(ctx context.Context, userID, orgID int64) (*model.Membership, error)
	GetFirstForUser(ctx context.Context, userID int64) (*model.Membership, error)
	ListByOrg(ctx context.Context, orgID int64) ([]model.Member, error)
	Delete(ctx context.Context, userID, orgID int64) error
}

// InvitationStore defines the contract for invitation data access
type InvitationStore interface {
	Create(ctx context.Context, inv *model.Invitation) error
	GetByID(ctx context.Context, id int64) (*model.Invitation, error)
	GetByToken(ctx context.Context, token string) (*model.Invitation, error)
	// GetByTokenForUpdate locks the row until the surrounding transaction ends.
	GetByTokenForUpdate(ctx context.Context, token string) (*model.Invitation, error)
	GetByOrgAndEmail(ctx context.Context, orgID int64, email string) (*model.Invitation, error)
	GetWithOrgByToken(ctx context.Context, token string) (*model.InvitationWithOrg, error)
	ListByOrg(ctx context.Context, orgID int64) ([]model.InvitationWithOrg, error)
	// Reissue reopens a resolved row with a new token; ErrNotFound when it is already PENDING.
	Reissue(ctx context.Context, id int64, token string, role model.Role, expiresAt time.Time, invitedBy int64) (*model.Invitation, error)
	// Rotate issues a new token and expiry and resets the row to PENDING.
	Rotate(ctx context.Context, id int64, token string, role model.Role, expiresAt time.Time) (*model.Invitation, error)
	// Accept only transitions PENDING rows; ErrNotFound when the row was already resolved.
	Accept(ctx context.Context, id, userID int64) (*model.Invitation, error)
	// DeclineByToken reports whether a PENDING row was transitioned.
	DeclineByToken(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, id int64) (*model.Invitation, error)
}

// AnalyticsEventStore defines the contract for analytics event writes
type AnalyticsEventStore interface {
	Create(ctx context.Context, event *model.AnalyticsEvent) error
}
