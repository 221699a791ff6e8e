package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"basegraph.app/roster/internal/notification"
	"basegraph.app/roster/internal/queue"
	"basegraph.app/roster/internal/store"
)

// InvitationEmailProcessor delivers invitation emails enqueued by the API.
type InvitationEmailProcessor struct {
	invitations store.InvitationStore
	orgs        store.OrganizationStore
	renderer    *notification.Renderer
	transport   notification.Transport
	now         func() time.Time
}

func NewInvitationEmailProcessor(
	invitations store.InvitationStore,
	orgs store.OrganizationStore,
	renderer *notification.Renderer,
	transport notification.Transport,
) *InvitationEmailProcessor {
	return &InvitationEmailProcessor{
		invitations: invitations,
		orgs:        orgs,
		renderer:    renderer,
		transport:   transport,
		now:         time.Now,
	}
}

// Process sends the email for msg. Invitations that were resolved, expired
// or rotated since the task was queued are skipped without error.
func (p *InvitationEmailProcessor) Process(ctx context.Context, msg queue.Message) error {
	if msg.TaskType != queue.TaskTypeInvitationEmail {
		slog.WarnContext(ctx, "unsupported task type, skipping", "task_type", msg.TaskType)
		return nil
	}

	inv, err := p.invitations.GetByID(ctx, msg.InvitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.InfoContext(ctx, "invitation gone, skipping email")
			return nil
		}
		return fmt.Errorf("loading invitation: %w", err)
	}

	if !inv.IsAcceptableAt(p.now()) {
		slog.InfoContext(ctx, "invitation no longer pending, skipping email",
			"status", inv.Status,
			"expires_at", inv.ExpiresAt)
		return nil
	}

	if queue.TokenDigest(inv.Token) != msg.TokenDigest {
		slog.InfoContext(ctx, "invitation token rotated since enqueue, skipping email")
		return nil
	}

	org, err := p.orgs.GetByID(ctx, inv.OrgID)
	if err != nil {
		return fmt.Errorf("loading organization: %w", err)
	}

	email, err := p.renderer.RenderInvitation(notification.InvitationData{
		To:        inv.Email,
		OrgName:   org.Name,
		Role:      inv.Role,
		Token:     inv.Token,
		ExpiresAt: inv.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("rendering invitation email: %w", err)
	}

	if err := p.transport.Send(ctx, email); err != nil {
		return fmt.Errorf("sending invitation email: %w", err)
	}

	slog.InfoContext(ctx, "invitation email sent", "org_id", inv.OrgID)
	return nil
}
