package scheduler

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"cablecrm_backend/internal/events"
	"cablecrm_backend/platform/config"
	"cablecrm_backend/platform/logger"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Client enqueues background tasks on the asynq queue.
type Client struct {
	client *asynq.Client
	queue  string
	log    *logger.Logger
}

func NewClient(cfg config.SchedulerConfig, log *logger.Logger) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
		log:    log,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueQuoteAnalysis queues a raw completion for background parsing.
func (c *Client) EnqueueQuoteAnalysis(ctx context.Context, payload QuoteAnalysisPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewQuoteAnalysisTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	return err
}

// EnqueueConsistencyReport queues a comparison report run.
func (c *Client) EnqueueConsistencyReport(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewConsistencyReportTask(ConsistencyReportPayload{RequestedAt: time.Now()})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	return err
}

// RegisterHandlers subscribes the client to the domain events that hand work
// to the background worker.
func (c *Client) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.EventQuoteAnalysisRequested, events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		requested, ok := event.(events.QuoteAnalysisRequested)
		if !ok {
			return nil
		}
		if err := c.EnqueueQuoteAnalysis(ctx, QuoteAnalysisPayload{
			QuoteID:     requested.QuoteID,
			RawResponse: requested.RawResponse,
		}); err != nil {
			c.log.JobEvent(TaskQuoteAnalysis, "enqueue_failed", err)
			return err
		}
		c.log.JobEvent(TaskQuoteAnalysis, "enqueued", nil)
		return nil
	}))
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
