package domain

import (
	"context"
	"encoding/json"
	"time"
)

// SubscriptionMailJobKey is the queue key of the organizer notification job.
const SubscriptionMailJobKey = "SubscriptionMail"

// Job is the envelope stored on the queue.
type Job struct {
	ID         string          `json:"id"`
	Key        string          `json:"key"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// JobHandler processes the payload of one job.
type JobHandler func(ctx context.Context, payload json.RawMessage) error

// JobQueue enqueues background jobs and runs handlers for them.
type JobQueue interface {
	Enqueue(ctx context.Context, key string, payload any) error
	// Process blocks, handing jobs queued under key to handler until ctx is done.
	Process(ctx context.Context, key string, handler JobHandler) error
}
