package model

import "time"

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "PENDING"
	InvitationStatusAccepted InvitationStatus = "ACCEPTED"
	InvitationStatusDeclined InvitationStatus = "DECLINED"
)

type Invitation struct {
	ID         int64            `json:"id"`
	OrgID      int64            `json:"org_id"`
	Email      string           `json:"email"`
	Role       Role             `json:"role"`
	Token      string           `json:"-"`
	Status     InvitationStatus `json:"status"`
	InvitedBy  *int64           `json:"invited_by,omitempty"`
	AcceptedBy *int64           `json:"accepted_by,omitempty"`
	ExpiresAt  time.Time        `json:"expires_at"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	AcceptedAt *time.Time       `json:"accepted_at,omitempty"`
}

// InvitationWithOrg is an invitation joined with its organization's display name.
type InvitationWithOrg struct {
	Invitation
	OrgName string `json:"org_name"`
}

func (i *Invitation) IsPending() bool {
	return i.Status == InvitationStatusPending
}

// IsExpiredAt reports whether the invitation can no longer be accepted at now.
// Expiry is derived, never stored as a status.
func (i *Invitation) IsExpiredAt(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// IsAcceptableAt reports whether an accept at now would pass status and expiry checks.
func (i *Invitation) IsAcceptableAt(now time.Time) bool {
	return i.IsPending() && !i.IsExpiredAt(now)
}
