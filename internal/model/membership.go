package model

import "time"

type Membership struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	OrgID     int64     `json:"org_id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Member is a membership joined with the member's profile.
type Member struct {
	Membership
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}
