package groupchat

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/linka-app/linka/internal/api"
)

// Feed delivers message-list snapshots for a chat thread. The polling
// implementation below is the only one today; the interface exists so a
// push-based subscription can replace it without touching callers.
type Feed interface {
	// Start begins delivering snapshots until ctx is cancelled.
	Start(ctx context.Context) error
	// Updates returns the snapshot channel. It is closed after the feed
	// stops; each value replaces the previous snapshot wholesale.
	Updates() <-chan []api.Message
	// Close stops the feed.
	Close() error
}

// FetchFunc fetches the current message window of a thread.
type FetchFunc func(ctx context.Context) ([]api.Message, error)

// PollingFeed re-fetches the full recent message window on a fixed interval:
// one immediate fetch on start, then one per tick. Fetches may overlap when a
// response is slow; a result that arrives after a newer one has already been
// applied is discarded, so consumers observe snapshots in issue order.
type PollingFeed struct {
	fetch    FetchFunc
	interval time.Duration
	updates  chan []api.Message

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
}

type pollResult struct {
	seq  uint64
	msgs []api.Message
}

// NewPollingFeed creates a feed polling fetch on the given interval.
func NewPollingFeed(fetch FetchFunc, interval time.Duration) *PollingFeed {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &PollingFeed{
		fetch:    fetch,
		interval: interval,
		updates:  make(chan []api.Message, 1),
	}
}

// Start launches the polling loop. It returns immediately; snapshots arrive
// on Updates until the context is cancelled or Close is called.
func (f *PollingFeed) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.started {
		return fmt.Errorf("feed already started")
	}
	f.started = true

	ctx, f.cancel = context.WithCancel(ctx)
	go f.run(ctx)
	return nil
}

// Updates returns the snapshot channel.
func (f *PollingFeed) Updates() <-chan []api.Message {
	return f.updates
}

// Close cancels the polling loop. No fetch is issued after Close returns.
func (f *PollingFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
	}
	return nil
}

func (f *PollingFeed) run(ctx context.Context) {
	defer close(f.updates)

	results := make(chan pollResult)
	var seq uint64

	launch := func() {
		seq++
		s := seq
		go func() {
			if ctx.Err() != nil {
				return
			}
			msgs, err := f.fetch(ctx)
			if err != nil {
				slog.Debug("Message poll failed", "error", err)
				return
			}
			select {
			case results <- pollResult{seq: s, msgs: msgs}:
			case <-ctx.Done():
			}
		}()
	}

	launch()

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	var applied uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			launch()
		case res := <-results:
			// A newer snapshot already landed; drop the stale one.
			if res.seq <= applied && applied != 0 {
				continue
			}
			applied = res.seq
			f.publish(res.msgs)
		}
	}
}

// publish hands a snapshot to the consumer, replacing an unconsumed older
// one rather than blocking the poll loop.
func (f *PollingFeed) publish(msgs []api.Message) {
	for {
		select {
		case f.updates <- msgs:
			return
		default:
		}
		select {
		case <-f.updates:
		default:
		}
	}
}
