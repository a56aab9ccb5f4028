package notify

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const stream = "site:notify"

// Producer publishes new-submission events to a redis stream for downstream
// consumers (mail relay, chat hooks). Publish failures are logged, never
// surfaced: notifications must not block form handling.
type Producer struct {
	queue *redis.Client
	log   zerolog.Logger
}

func NewProducer(queue *redis.Client, log zerolog.Logger) *Producer {
	return &Producer{
		queue: queue,
		log:   log,
	}
}

func (p *Producer) ContactReceived(ctx context.Context, submissionID string, email string) {
	p.publish(ctx, map[string]any{
		"type":  "contact",
		"id":    submissionID,
		"email": email,
	})
}

func (p *Producer) ApplicationReceived(ctx context.Context, applicationID string, postingID string) {
	p.publish(ctx, map[string]any{
		"type":    "application",
		"id":      applicationID,
		"posting": postingID,
	})
}

func (p *Producer) publish(ctx context.Context, payload map[string]any) {
	if p.queue == nil {
		return
	}
	if _, err := p.queue.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: payload,
	}).Result(); err != nil {
		p.log.Warn().Err(err).Msg("notify publish failed")
	}
}
