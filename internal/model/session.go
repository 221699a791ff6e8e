package model

import "time"

type Session struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	WorkOSSessionID *string   `json:"workos_session_id,omitempty"`
	ExpiresAt       time.Time `json:"expires_at"`
	CreatedAt       time.Time `json:"created_at"`
}

func (s *Session) IsExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
