package journy

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/journy-io/sdk-go/transport"
	"github.com/journy-io/sdk-go/transport/transporttest"
)

func TestTracker_SendsInOrder(t *testing.T) {
	rec := &transporttest.Recorder{}
	tracker := NewTracker(newTestClient(t, rec))

	names := []string{"first", "second", "third", "fourth"}
	for _, name := range names {
		if err := tracker.AddEvent(EventForUser(name, UserByID("u1"))); err != nil {
			t.Fatalf("AddEvent(%s) error = %v", name, err)
		}
	}
	if err := tracker.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	requests := rec.Requests()
	if len(requests) != len(names) {
		t.Fatalf("requests = %d, want %d", len(requests), len(names))
	}
	for i, name := range names {
		body, _ := requests[i].Body().(string)
		if !strings.Contains(body, `"name":"`+name+`"`) {
			t.Errorf("request %d body = %s, want event %s", i, body, name)
		}
	}
}

func TestTracker_ReturnsBeforeRequestCompletes(t *testing.T) {
	release := make(chan struct{})
	rec := &transporttest.Recorder{
		Handler: func(context.Context, *transport.Request) (*transport.Response, error) {
			<-release
			return transport.NewResponse(201, transport.Headers{}, ""), nil
		},
	}
	tracker := NewTracker(newTestClient(t, rec))

	done := make(chan struct{})
	go func() {
		defer close(done)
		tracker.UpsertUser(UpsertUserArgs{User: UserByID("u1")})
		tracker.UpsertAccount(UpsertAccountArgs{Account: AccountByID("a1")})
		tracker.Link(LinkArgs{DeviceID: "d1", User: UserByID("u1")})
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("tracker calls blocked on the network")
	}

	close(release)
	if err := tracker.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if n := len(rec.Requests()); n != 3 {
		t.Errorf("requests = %d, want 3", n)
	}
	if tracker.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", tracker.Pending())
	}
}

func TestTracker_DiscardsFailures(t *testing.T) {
	tracker := NewTracker(newTestClient(t, transporttest.Throwing{}))

	if err := tracker.AddEvent(EventForUser("tag", UserByID("u1"))); err != nil {
		t.Errorf("AddEvent() error = %v, want nil", err)
	}
	if err := tracker.Close(context.Background()); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestTracker_ValidatesSynchronously(t *testing.T) {
	rec := &transporttest.Recorder{}
	tracker := NewTracker(newTestClient(t, rec))

	errs := []error{
		tracker.AddEvent(EventForUser("", UserByID("u1"))),
		tracker.UpsertUser(UpsertUserArgs{}),
		tracker.UpsertAccount(UpsertAccountArgs{}),
		tracker.Link(LinkArgs{User: UserByID("u1")}),
	}
	for i, err := range errs {
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("call %d error = %v, want ErrInvalidArgument", i, err)
		}
	}

	tracker.Close(context.Background())
	if n := len(rec.Requests()); n != 0 {
		t.Errorf("requests = %d, want 0", n)
	}
}

func TestTracker_RejectsAfterClose(t *testing.T) {
	tracker := NewTracker(newTestClient(t, &transporttest.Recorder{}))
	tracker.Close(context.Background())

	err := tracker.AddEvent(EventForUser("tag", UserByID("u1")))
	if !errors.Is(err, ErrClosed) {
		t.Errorf("AddEvent() error = %v, want ErrClosed", err)
	}
}

func TestTracker_CloseDeadlineCancelsRunningRequest(t *testing.T) {
	cancelled := make(chan struct{})
	rec := &transporttest.Recorder{
		Handler: func(ctx context.Context, _ *transport.Request) (*transport.Response, error) {
			<-ctx.Done()
			close(cancelled)
			return nil, ctx.Err()
		},
	}
	tracker := NewTracker(newTestClient(t, rec))
	tracker.AddEvent(EventForUser("slow", UserByID("u1")))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := tracker.Close(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Close() error = %v, want context.DeadlineExceeded", err)
	}

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("running request was not cancelled")
	}
}

func TestTracker_Concurrency(t *testing.T) {
	tracker := NewTracker(newTestClient(t, &transporttest.Recorder{}), WithTrackerConcurrency(3))
	for i := range 10 {
		if err := tracker.AddEvent(EventForUser("e", UserByID(string(rune('a'+i))))); err != nil {
			t.Fatalf("AddEvent() error = %v", err)
		}
	}
	if err := tracker.Close(context.Background()); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
