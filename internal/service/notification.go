package service

import (
	"context"
	"fmt"

	"basegraph.app/roster/common/logger"
	"basegraph.app/roster/internal/model"
	"basegraph.app/roster/internal/notification"
	"basegraph.app/roster/internal/queue"
)

// NotificationDispatcher delivers invitation emails. Callers treat failures
// as best-effort and never roll back the invitation because of them.
type NotificationDispatcher interface {
	DispatchInvitation(ctx context.Context, inv *model.Invitation, orgName string) error
}

type syncDispatcher struct {
	renderer  *notification.Renderer
	transport notification.Transport
}

// NewSyncDispatcher renders and sends inline.
func NewSyncDispatcher(renderer *notification.Renderer, transport notification.Transport) NotificationDispatcher {
	return &syncDispatcher{renderer: renderer, transport: transport}
}

func (d *syncDispatcher) DispatchInvitation(ctx context.Context, inv *model.Invitation, orgName string) error {
	msg, err := d.renderer.RenderInvitation(notification.InvitationData{
		To:        inv.Email,
		OrgName:   orgName,
		Role:      inv.Role,
		Token:     inv.Token,
		ExpiresAt: inv.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("rendering invitation: %w", err)
	}
	if err := d.transport.Send(ctx, msg); err != nil {
		return fmt.Errorf("sending invitation: %w", err)
	}
	return nil
}

type queuedDispatcher struct {
	producer queue.Producer
}

// NewQueuedDispatcher hands delivery to the worker through the notification stream.
func NewQueuedDispatcher(producer queue.Producer) NotificationDispatcher {
	return &queuedDispatcher{producer: producer}
}

func (d *queuedDispatcher) DispatchInvitation(ctx context.Context, inv *model.Invitation, _ string) error {
	task := queue.NewInvitationEmailTask(inv.ID, inv.Token, logger.TraceIDFromContext(ctx))
	if err := d.producer.Enqueue(ctx, task); err != nil {
		return fmt.Errorf("enqueueing invitation email: %w", err)
	}
	return nil
}
