package service

import (
	"context"
	"log/slog"
	"strings"

	"basegraph.app/roster/common/id"
	"basegraph.app/roster/internal/model"
	"basegraph.app/roster/internal/store"
)

const maxEventNameLength = 100

const (
	EventInvitationCreated  = "invitation_created"
	EventInvitationAccepted = "invitation_accepted"
	EventInvitationDeclined = "invitation_declined"
	EventInvitationRevoked  = "invitation_revoked"
	EventInvitationResent   = "invitation_resent"
)

type TrackEvent struct {
	UserID     *int64
	Name       string
	Properties map[string]any
	UserAgent  *string
	IPAddress  *string
}

type AnalyticsService interface {
	// Track validates and records ev. Storage failures are logged, never returned.
	Track(ctx context.Context, ev TrackEvent) error
}

type analyticsService struct {
	events store.AnalyticsEventStore
}

func NewAnalyticsService(events store.AnalyticsEventStore) AnalyticsService {
	return &analyticsService{events: events}
}

func (s *analyticsService) Track(ctx context.Context, ev TrackEvent) error {
	name := strings.TrimSpace(ev.Name)
	if name == "" || len(name) > maxEventNameLength {
		return ErrInvalidAnalyticsEvent
	}

	event := &model.AnalyticsEvent{
		ID:         id.New(),
		UserID:     ev.UserID,
		Name:       name,
		Properties: ev.Properties,
		UserAgent:  ev.UserAgent,
		IPAddress:  ev.IPAddress,
	}
	if err := s.events.Create(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to record analytics event",
			"error", err,
			"event", name)
	}
	return nil
}
