package store

import (
	"context"
	"encoding/json"
	"fmt"

	"basegraph.app/roster/core/db/sqlc"
	"basegraph.app/roster/internal/model"
)

type analyticsEventStore struct {
	queries *sqlc.Queries
}

func newAnalyticsEventStore(queries *sqlc.Queries) AnalyticsEventStore {
	return &analyticsEventStore{queries: queries}
}

func (s *analyticsEventStore) Create(ctx context.Context, event *model.AnalyticsEvent) error {
	props := event.Properties
	if props == nil {
		props = map[string]any{}
	}
	raw, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("encoding properties: %w", err)
	}

	return s.queries.CreateAnalyticsEvent(ctx, sqlc.CreateAnalyticsEventParams{
		ID:         event.ID,
		UserID:     event.UserID,
		EventName:  event.Name,
		Properties: raw,
		UserAgent:  event.UserAgent,
		IpAddress:  event.IPAddress,
	})
}
