package chain

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Poller runs a function on repeat at a fixed interval until the function
// reports it is done or Stop is called. Ticks can be missed if fn is slow.
type Poller struct {
	fn       func(ctx context.Context) (done bool)
	clock    clock.Clock
	interval time.Duration

	mu     sync.Mutex
	ctx    context.Context // non-nil once started
	cancel context.CancelFunc
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewPoller creates a stopped poller. A nil clock means wall time.
func NewPoller(fn func(ctx context.Context) bool, clk clock.Clock, interval time.Duration) *Poller {
	if clk == nil {
		clk = clock.New()
	}
	return &Poller{
		fn:       fn,
		clock:    clk,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins polling in a background routine. The first run happens one
// interval after Start. Duplicate start calls are ignored.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctx != nil {
		return
	}

	p.ctx, p.cancel = context.WithCancel(context.Background())
	ticker := p.clock.Ticker(p.interval)
	ctx := p.ctx

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer close(p.done)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if p.fn(ctx) {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop cancels the poller and waits for an in-progress run to return.
// Duplicate calls are ignored.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	p.wg.Wait()
}

// Done is closed once the poller has exited for any reason.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}
