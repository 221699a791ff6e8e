package model

import "time"

type Organization struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsDeleted bool      `json:"-"` // internal, not exposed in API
}

// OrganizationWithRole is an organization as seen by one member.
type OrganizationWithRole struct {
	Organization
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}
