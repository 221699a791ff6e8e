package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

type Producer interface {
	Enqueue(ctx context.Context, task Task) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Enqueue(ctx context.Context, task Task) error {
	if task.TaskType == "" {
		return fmt.Errorf("enqueue: missing task type")
	}

	values := taskValues(task)

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: values,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue %s: %w", task.TaskType, err)
	}

	p.logger.InfoContext(ctx, "enqueued task",
		"task_type", task.TaskType,
		"invitation_id", task.InvitationID,
		"attempt", values["attempt"],
	)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}

func taskValues(task Task) map[string]any {
	attempt := task.Attempt
	if attempt <= 0 {
		attempt = 1
	}

	values := map[string]any{
		"task_type":     string(task.TaskType),
		"invitation_id": task.InvitationID,
		"attempt":       attempt,
	}
	if task.TokenDigest != "" {
		values["token_digest"] = task.TokenDigest
	}
	if task.TraceID != "" {
		values["trace_id"] = task.TraceID
	}
	return values
}
