package journy

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/journy-io/sdk-go/internal/fifo"
)

// Tracker sends events and profile updates in the background.
//
// Calls validate their arguments, queue the request and return at once.
// Requests leave in the order they were queued. Results are discarded;
// failures are only visible in the debug log.
type Tracker struct {
	client *Client
	exec   *fifo.Executor
	log    logrus.FieldLogger

	ctx    context.Context
	cancel context.CancelFunc
}

type trackerConfig struct {
	concurrency int
}

// TrackerOption configures a Tracker.
type TrackerOption func(*trackerConfig)

// WithTrackerConcurrency sets how many queued requests may be in flight.
// Default: 1
func WithTrackerConcurrency(n int) TrackerOption {
	return func(c *trackerConfig) {
		c.concurrency = n
	}
}

// NewTracker creates a Tracker that sends through client.
func NewTracker(client *Client, opts ...TrackerOption) *Tracker {
	cfg := &trackerConfig{concurrency: 1}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Tracker{
		client: client,
		exec:   fifo.New(cfg.concurrency),
		log:    client.log,
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddEvent queues an event.
func (t *Tracker) AddEvent(event Event) error {
	if _, err := buildEventPayload(event); err != nil {
		return err
	}
	return t.enqueue("add_event", func(ctx context.Context) (Result[Empty], error) {
		return t.client.AddEvent(ctx, event)
	})
}

// UpsertUser queues a user upsert.
func (t *Tracker) UpsertUser(args UpsertUserArgs) error {
	if _, err := buildUserPayload(args); err != nil {
		return err
	}
	return t.enqueue("upsert_user", func(ctx context.Context) (Result[Empty], error) {
		return t.client.UpsertUser(ctx, args)
	})
}

// UpsertAccount queues an account upsert.
func (t *Tracker) UpsertAccount(args UpsertAccountArgs) error {
	if _, err := buildAccountPayload(args); err != nil {
		return err
	}
	return t.enqueue("upsert_account", func(ctx context.Context) (Result[Empty], error) {
		return t.client.UpsertAccount(ctx, args)
	})
}

// Link queues a device link.
func (t *Tracker) Link(args LinkArgs) error {
	if _, err := buildLinkPayload(args); err != nil {
		return err
	}
	return t.enqueue("link", func(ctx context.Context) (Result[Empty], error) {
		return t.client.Link(ctx, args)
	})
}

// Pending returns the number of queued requests not yet started.
func (t *Tracker) Pending() int {
	return t.exec.Pending()
}

// Close stops accepting work and waits for queued requests to finish.
// If ctx ends first, requests still running are cancelled.
func (t *Tracker) Close(ctx context.Context) error {
	err := t.exec.Close(ctx)
	t.cancel()
	return err
}

func (t *Tracker) enqueue(op string, call func(context.Context) (Result[Empty], error)) error {
	log := t.log.WithFields(logrus.Fields{
		"op":     op,
		"job_id": uuid.New().String(),
	})

	err := t.exec.Submit(func() {
		result, err := call(t.ctx)
		switch {
		case err != nil:
			log.WithError(err).Debug("tracking request rejected")
		case !result.Success:
			log.WithField("kind", result.Error).Debug("tracking request failed")
		default:
			log.Debug("tracking request sent")
		}
	})
	if errors.Is(err, fifo.ErrClosed) {
		return ErrClosed
	}
	return err
}
