package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"basegraph.app/roster/common/logger"
	"basegraph.app/roster/internal/queue"
	"go.opentelemetry.io/otel/attribute"
)

type Config struct {
	MaxAttempts int
	// ErrorBackoff is how long Run pauses after a failed read.
	ErrorBackoff time.Duration
}

type Worker struct {
	consumer  Consumer
	processor MessageProcessor
	cfg       Config

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(consumer Consumer, processor MessageProcessor, cfg Config) *Worker {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = time.Second
	}
	return &Worker{
		consumer:  consumer,
		processor: processor,
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	defer close(w.stoppedCh)

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "roster.worker",
	})

	slog.InfoContext(ctx, "worker started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-w.stopCh:
					return nil
				case <-time.After(w.cfg.ErrorBackoff):
				}
			}
		}
	}
}

func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		w.HandleMessage(ctx, msg)
	}

	return nil
}

// HandleMessage processes msg and settles it: ack on success, requeue or
// DLQ on failure. Exported so the reclaimer settles messages the same way.
func (w *Worker) HandleMessage(ctx context.Context, msg queue.Message) {
	msgID := msg.ID
	invitationID := msg.InvitationID
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MessageID:    &msgID,
		InvitationID: &invitationID,
	})

	sc := logger.StartSpanFromTraceID(ctx, msg.TraceID, "worker.invitation_email")
	defer sc.End()
	ctx = sc.Context()
	sc.SetAttributes(
		attribute.String("message.id", msg.ID),
		attribute.Int64("invitation.id", msg.InvitationID),
		attribute.Int("message.attempt", msg.Attempt),
	)

	slog.InfoContext(ctx, "processing message", "attempt", msg.Attempt)

	if err := w.processMessageSafe(ctx, msg); err != nil {
		sc.RecordError(err)
		slog.ErrorContext(ctx, "message processing failed", "error", err)
		w.handleFailedMessage(ctx, msg, err)
		return
	}

	if err := w.consumer.Ack(ctx, msg); err != nil {
		// The reclaimer will pick it up again; delivery checks make that safe.
		slog.WarnContext(ctx, "failed to ACK message", "error", err)
	}
}

func (w *Worker) processMessageSafe(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in message processing", "panic", r)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.processor.Process(ctx, msg)
}

func (w *Worker) handleFailedMessage(ctx context.Context, msg queue.Message, err error) {
	if msg.Attempt >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "max attempts reached, sending to DLQ", "attempts", msg.Attempt)
		if dlqErr := w.consumer.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return
	}

	slog.WarnContext(ctx, "requeuing failed message", "attempt", msg.Attempt)
	if requeueErr := w.consumer.Requeue(ctx, msg, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
}
