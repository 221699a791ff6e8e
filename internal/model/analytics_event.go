package model

import "time"

type AnalyticsEvent struct {
	ID         int64          `json:"id"`
	UserID     *int64         `json:"user_id,omitempty"`
	Name       string         `json:"event"`
	Properties map[string]any `json:"properties"`
	UserAgent  *string        `json:"user_agent,omitempty"`
	IPAddress  *string        `json:"ip_address,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
