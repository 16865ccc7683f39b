package transport

import (
	"context"
	"errors"

	"github.com/journy-io/sdk-go/internal/fifo"
)

// Outcome is the settled result of a queued request.
type Outcome struct {
	Response *Response
	Err      error
}

// Queue sends requests through next in the order they were submitted.
//
// With the default concurrency of 1 no two requests are ever in flight at
// the same time. Ordering applies to dispatch, not to completion.
type Queue struct {
	next Transport
	exec *fifo.Executor
}

// NewQueue wraps next with a FIFO dispatch queue. A concurrency below 1 is
// treated as 1.
func NewQueue(next Transport, concurrency int) *Queue {
	return &Queue{
		next: next,
		exec: fifo.New(concurrency),
	}
}

// Submit enqueues req and returns immediately. The returned channel receives
// exactly one Outcome once req has been dispatched and its call settled.
//
// If ctx is already done when req reaches the head of the queue, it is
// settled with ctx's error and next is not called.
func (q *Queue) Submit(ctx context.Context, req *Request) <-chan Outcome {
	done := make(chan Outcome, 1)
	err := q.exec.Submit(func() {
		if err := ctx.Err(); err != nil {
			done <- Outcome{Err: err}
			return
		}
		resp, err := q.next.Send(ctx, req)
		done <- Outcome{Response: resp, Err: err}
	})
	if err != nil {
		if errors.Is(err, fifo.ErrClosed) {
			err = ErrClosed
		}
		done <- Outcome{Err: err}
	}
	return done
}

// Send implements Transport. It blocks until req has had its turn and the
// inner call has settled, or until ctx is done.
func (q *Queue) Send(ctx context.Context, req *Request) (*Response, error) {
	select {
	case out := <-q.Submit(ctx, req):
		return out.Response, out.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Pending returns the number of requests waiting for their turn.
func (q *Queue) Pending() int {
	return q.exec.Pending()
}

// Close stops accepting requests and waits for queued ones to settle.
func (q *Queue) Close(ctx context.Context) error {
	return q.exec.Close(ctx)
}
