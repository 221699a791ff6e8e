package worker

import (
	"context"

	"basegraph.app/roster/internal/queue"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// MessageProcessor performs the side effect a queue message asks for.
// Returning nil acks the message.
type MessageProcessor interface {
	Process(ctx context.Context, msg queue.Message) error
}
