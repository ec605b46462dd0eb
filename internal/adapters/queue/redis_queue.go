package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"meetapp/internal/domain"
)

const (
	defaultPollTimeout = 5 * time.Second
	defaultJobTimeout  = 30 * time.Second
)

// RedisQueue is a domain.JobQueue backed by Redis lists: producers LPUSH onto
// <prefix>:<key>, consumers BRPOP from it. Jobs whose handler fails are pushed
// onto <prefix>:<key>:failed.
type RedisQueue struct {
	client      *redis.Client
	prefix      string
	logger      *slog.Logger
	pollTimeout time.Duration
	jobTimeout  time.Duration
}

// NewRedisQueue returns a queue using the given client and key prefix.
func NewRedisQueue(client *redis.Client, prefix string, logger *slog.Logger) *RedisQueue {
	if prefix == "" {
		prefix = "meetapp:jobs"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisQueue{
		client:      client,
		prefix:      prefix,
		logger:      logger,
		pollTimeout: defaultPollTimeout,
		jobTimeout:  defaultJobTimeout,
	}
}

// NewRedisClient parses a redis:// URL, falling back to treating it as host:port.
func NewRedisClient(redisURL string) *redis.Client {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return redis.NewClient(&redis.Options{Addr: redisURL})
	}
	return redis.NewClient(opts)
}

func (q *RedisQueue) listKey(key string) string {
	return q.prefix + ":" + key
}

func (q *RedisQueue) failedKey(key string) string {
	return q.listKey(key) + ":failed"
}

func (q *RedisQueue) Enqueue(ctx context.Context, key string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal job payload: %w", err)
	}
	job := domain.Job{
		ID:         uuid.NewString(),
		Key:        key,
		Payload:    raw,
		EnqueuedAt: time.Now().UTC(),
	}
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := q.client.LPush(ctx, q.listKey(key), body).Err(); err != nil {
		return fmt.Errorf("enqueue %s: %w", key, err)
	}
	q.logger.DebugContext(ctx, "job enqueued", "key", key, "job_id", job.ID)
	return nil
}

func (q *RedisQueue) Process(ctx context.Context, key string, handler domain.JobHandler) error {
	list := q.listKey(key)
	q.logger.Info("queue consumer started", "key", key, "list", list)
	for {
		if ctx.Err() != nil {
			return nil
		}
		res, err := q.client.BRPop(ctx, q.pollTimeout, list).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			q.logger.Error("queue receive failed", "key", key, "err", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}
		// res is [list, value]
		q.handle(ctx, key, res[1], handler)
	}
}

// handle runs one popped job detached from ctx cancellation, bounded by jobTimeout.
func (q *RedisQueue) handle(ctx context.Context, key, body string, handler domain.JobHandler) {
	jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), q.jobTimeout)
	defer cancel()

	var job domain.Job
	if err := json.Unmarshal([]byte(body), &job); err != nil {
		q.logger.Error("queue bad message", "key", key, "err", err)
		q.fail(ctx, key, body)
		return
	}
	start := time.Now()
	if err := handler(jobCtx, job.Payload); err != nil {
		q.logger.Error("job failed", "key", key, "job_id", job.ID, "err", err)
		q.fail(ctx, key, body)
		return
	}
	q.logger.Info("job processed", "key", key, "job_id", job.ID, "duration_ms", time.Since(start).Milliseconds())
}

func (q *RedisQueue) fail(ctx context.Context, key, body string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), q.pollTimeout)
	defer cancel()
	if err := q.client.LPush(ctx, q.failedKey(key), body).Err(); err != nil {
		q.logger.Error("queue failed-list push failed", "key", key, "err", err)
	}
}
