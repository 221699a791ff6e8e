package queue

import (
	"crypto/sha256"
	"encoding/hex"
)

type TaskType string

const (
	TaskTypeInvitationEmail TaskType = "invitation_email"
)

// Task is the producer-side view of a queued job.
type Task struct {
	TaskType     TaskType
	InvitationID int64
	// TokenDigest fingerprints the token the email was requested for. The raw token never enters the stream.
	TokenDigest string
	TraceID     string
	Attempt     int
}

// NewInvitationEmailTask builds a delivery task for the invitation's current token.
func NewInvitationEmailTask(invitationID int64, token, traceID string) Task {
	return Task{
		TaskType:     TaskTypeInvitationEmail,
		InvitationID: invitationID,
		TokenDigest:  TokenDigest(token),
		TraceID:      traceID,
		Attempt:      1,
	}
}

func TokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
