package model

import "strings"

type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
	RoleViewer Role = "VIEWER"
)

// roleRanks is the fixed privilege order. Never derive it from storage order.
var roleRanks = map[Role]int{
	RoleViewer: 1,
	RoleMember: 2,
	RoleAdmin:  3,
	RoleOwner:  4,
}

// Rank returns the privilege rank of a role. Unknown roles rank 0 and
// therefore never satisfy any minimum.
func (r Role) Rank() int {
	return roleRanks[r]
}

// MeetsMinimum reports whether r is at least as privileged as required.
func (r Role) MeetsMinimum(required Role) bool {
	return r.Rank() >= required.Rank() && r.Rank() > 0
}

func (r Role) IsValid() bool {
	_, ok := roleRanks[r]
	return ok
}

// IsInvitable reports whether an invitation may propose this role.
func (r Role) IsInvitable() bool {
	return r == RoleAdmin || r == RoleMember || r == RoleViewer
}

// Label is the human-readable noun used in invitation emails.
func (r Role) Label() string {
	switch r {
	case RoleOwner:
		return "Owner"
	case RoleAdmin:
		return "Administrator"
	case RoleMember:
		return "Member"
	case RoleViewer:
		return "Viewer"
	default:
		return string(r)
	}
}

// ParseRole normalizes user input ("admin", " Admin ") to a Role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", false
	}
	return r, true
}
