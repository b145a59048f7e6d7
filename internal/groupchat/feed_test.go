package groupchat

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/linka-app/linka/internal/api"
)

func TestPollingFeedFetchesImmediatelyAndPerTick(t *testing.T) {
	var fetches int32
	fetch := func(ctx context.Context) ([]api.Message, error) {
		n := atomic.AddInt32(&fetches, 1)
		return []api.Message{{ID: int(n)}}, nil
	}

	feed := NewPollingFeed(fetch, 20*time.Millisecond)
	if err := feed.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer feed.Close()

	// First snapshot arrives without waiting for a tick.
	select {
	case snapshot := <-feed.Updates():
		if len(snapshot) != 1 || snapshot[0].ID != 1 {
			t.Fatalf("first snapshot = %+v", snapshot)
		}
	case <-time.After(time.Second):
		t.Fatal("no immediate snapshot")
	}

	// Later snapshots arrive from ticks.
	select {
	case snapshot := <-feed.Updates():
		if len(snapshot) != 1 || snapshot[0].ID < 2 {
			t.Fatalf("tick snapshot = %+v", snapshot)
		}
	case <-time.After(time.Second):
		t.Fatal("no tick snapshot")
	}
}

func TestPollingFeedStopsOnClose(t *testing.T) {
	var fetches int32
	fetch := func(ctx context.Context) ([]api.Message, error) {
		atomic.AddInt32(&fetches, 1)
		return nil, nil
	}

	feed := NewPollingFeed(fetch, 10*time.Millisecond)
	if err := feed.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	time.Sleep(35 * time.Millisecond)
	feed.Close()

	// The channel closes and no fetch is issued afterwards.
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-feed.Updates():
			if !ok {
				goto closed
			}
		case <-deadline:
			t.Fatal("updates channel never closed")
		}
	}
closed:
	time.Sleep(20 * time.Millisecond)
	settled := atomic.LoadInt32(&fetches)
	time.Sleep(50 * time.Millisecond)
	if after := atomic.LoadInt32(&fetches); after != settled {
		t.Fatalf("fetch issued after close: %d -> %d", settled, after)
	}
}

func TestPollingFeedDropsFailedFetches(t *testing.T) {
	var fetches int32
	fetch := func(ctx context.Context) ([]api.Message, error) {
		if atomic.AddInt32(&fetches, 1) == 1 {
			return nil, errors.New("boom")
		}
		return []api.Message{{ID: 10}}, nil
	}

	feed := NewPollingFeed(fetch, 10*time.Millisecond)
	if err := feed.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer feed.Close()

	select {
	case snapshot := <-feed.Updates():
		if len(snapshot) != 1 || snapshot[0].ID != 10 {
			t.Fatalf("snapshot = %+v, want the successful fetch", snapshot)
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot after failed first fetch")
	}
}

func TestPollingFeedDiscardsStaleSlowFetch(t *testing.T) {
	release := make(chan struct{})
	var calls int32
	fetch := func(ctx context.Context) ([]api.Message, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			// The first fetch stalls until a later one has landed.
			select {
			case <-release:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			return []api.Message{{ID: 1}}, nil
		}
		return []api.Message{{ID: 1}, {ID: 2}}, nil
	}

	feed := NewPollingFeed(fetch, 10*time.Millisecond)
	if err := feed.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer feed.Close()

	// With the first fetch still in flight, a tick-driven fetch delivers the
	// newer two-message window.
	select {
	case snapshot := <-feed.Updates():
		if len(snapshot) != 2 {
			t.Fatalf("delivered %+v before the slow fetch resolved, want the newer window", snapshot)
		}
	case <-time.After(time.Second):
		t.Fatal("newer snapshot never delivered")
	}

	// Now let the slow first fetch complete. Its single-message result is
	// stale and must never surface.
	close(release)

	deadline := time.After(150 * time.Millisecond)
	for {
		select {
		case snapshot := <-feed.Updates():
			if len(snapshot) < 2 {
				t.Fatalf("stale snapshot surfaced after a newer one: %+v", snapshot)
			}
		case <-deadline:
			return
		}
	}
}

func TestPollingFeedRejectsDoubleStart(t *testing.T) {
	feed := NewPollingFeed(func(ctx context.Context) ([]api.Message, error) { return nil, nil }, time.Minute)
	if err := feed.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer feed.Close()
	if err := feed.Start(context.Background()); err == nil {
		t.Fatal("second Start should fail")
	}
}
