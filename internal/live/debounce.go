package live

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/premsagar/auctionlive/clients"
)

// debouncer coalesces rapid price adjustments into a single trailing-edge
// confirmation per player. Each player has at most one pending timer;
// rescheduling replaces the timer and the payload, so only the latest value
// reaches the server once the quiet period elapses.
type debouncer struct {
	clock    clockwork.Clock
	interval time.Duration
	fire     func(ctx context.Context, req clients.PriceUpdateRequest)

	mu      sync.Mutex
	pending map[string]*pendingConfirm
}

type pendingConfirm struct {
	timer  clockwork.Timer
	req    clients.PriceUpdateRequest
	cancel chan struct{}
}

func newDebouncer(clock clockwork.Clock, interval time.Duration, fire func(ctx context.Context, req clients.PriceUpdateRequest)) *debouncer {
	return &debouncer{
		clock:    clock,
		interval: interval,
		fire:     fire,
		pending:  make(map[string]*pendingConfirm),
	}
}

// Schedule queues req to fire after the quiet period, replacing any pending
// confirmation for the same player.
func (d *debouncer) Schedule(ctx context.Context, req clients.PriceUpdateRequest) {
	d.mu.Lock()
	if prev, ok := d.pending[req.PlayerID]; ok {
		stopAndDrainTimer(prev.timer)
		close(prev.cancel)
	}
	p := &pendingConfirm{
		timer:  d.clock.NewTimer(d.interval),
		req:    req,
		cancel: make(chan struct{}),
	}
	d.pending[req.PlayerID] = p
	d.mu.Unlock()

	go func() {
		select {
		case <-p.timer.Chan():
			d.mu.Lock()
			if d.pending[req.PlayerID] == p {
				delete(d.pending, req.PlayerID)
			}
			d.mu.Unlock()
			d.fire(ctx, p.req)

		case <-p.cancel:
			// Replaced by a newer adjustment.

		case <-ctx.Done():
			stopAndDrainTimer(p.timer)
			d.mu.Lock()
			if d.pending[req.PlayerID] == p {
				delete(d.pending, req.PlayerID)
			}
			d.mu.Unlock()
		}
	}()
}

// CancelAll stops every pending timer. Called on view close so no
// confirmation can fire against a torn-down mirror.
func (d *debouncer) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for playerID, p := range d.pending {
		stopAndDrainTimer(p.timer)
		close(p.cancel)
		delete(d.pending, playerID)
	}
}

// stopAndDrainTimer stops a timer and drains its channel so a concurrent
// fire cannot leak through, per the time.Timer.Stop documentation.
func stopAndDrainTimer(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}
