package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure. The HTTP layer maps kinds to status codes.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindGone
	KindTooManyRequests
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindGone:
		return "gone"
	case KindTooManyRequests:
		return "too_many_requests"
	default:
		return "internal"
	}
}

// Error is a typed service error. Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind and Code so wrapped copies of a sentinel still compare equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

func newError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap returns a copy of sentinel carrying err as its cause.
func Wrap(sentinel *Error, err error) *Error {
	return &Error{Kind: sentinel.Kind, Code: sentinel.Code, Message: sentinel.Message, Err: err}
}

func Validation(code, message string) *Error {
	return newError(KindValidation, code, message)
}

// KindOf returns the kind of err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

var (
	ErrUnauthenticated = newError(KindUnauthenticated, "unauthenticated", "authentication required")
	ErrForbidden       = newError(KindForbidden, "forbidden", "insufficient permissions")

	ErrInvitationNotFound      = newError(KindNotFound, "invitation_not_found", "invitation not found")
	ErrInvitationExists        = newError(KindConflict, "invitation_exists", "invitation already exists")
	ErrInvitationProcessed     = newError(KindConflict, "invitation_processed", "invitation already processed")
	ErrInvitationExpired       = newError(KindGone, "invitation_expired", "invitation has expired")
	ErrAlreadyMember           = newError(KindConflict, "already_member", "user is already a member of this organization")
	ErrInvalidEmail            = newError(KindValidation, "invalid_email", "a valid email address is required")
	ErrInvalidRole             = newError(KindValidation, "invalid_role", "role must be one of ADMIN, MEMBER, VIEWER")
	ErrInvalidInvitationAction = newError(KindValidation, "invalid_action", "unsupported invitation action")
	ErrInvitationTokenRequired = newError(KindValidation, "token_required", "invitation token is required")
	ErrOrganizationNotFound    = newError(KindNotFound, "org_not_found", "organization not found")
	ErrOrganizationNameTaken   = newError(KindConflict, "org_name_taken", "an organization with this name already exists")
	ErrInvalidOrganizationName = newError(KindValidation, "invalid_org_name", "organization name must be between 2 and 100 characters")
	ErrMemberNotFound          = newError(KindNotFound, "member_not_found", "member not found")
	ErrOwnerCannotLeave        = newError(KindConflict, "owner_cannot_leave", "the organization owner cannot leave the organization")
	ErrCannotRemoveOwner       = newError(KindForbidden, "cannot_remove_owner", "the organization owner cannot be removed")
	ErrUserNotFound            = newError(KindNotFound, "user_not_found", "user not found")
	ErrSessionExpired          = newError(KindUnauthenticated, "session_expired", "session expired")
	ErrInvalidCode             = newError(KindUnauthenticated, "invalid_code", "invalid authorization code")
	ErrInvalidToken            = newError(KindUnauthenticated, "invalid_token", "invalid or expired access token")
	ErrInvalidAnalyticsEvent   = newError(KindValidation, "invalid_event", "event name is required")
	ErrProfileNotFound         = newError(KindNotFound, "profile_not_found", "profile not found")
	ErrInvalidDisplayName      = newError(KindValidation, "invalid_display_name", "display name must be at most 100 characters")
	ErrInvalidAvatarURL        = newError(KindValidation, "invalid_avatar_url", "avatar url must be an absolute http(s) url")
	ErrInvalidLocale           = newError(KindValidation, "invalid_locale", "locale must be a BCP 47 language tag")
	ErrInvalidOnboardingStep   = newError(KindValidation, "invalid_step", "unknown onboarding step")
)
