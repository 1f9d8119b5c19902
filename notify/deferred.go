package notify

import (
	"context"
	"sync"

	"github.com/zoe5466/Gudiee-sub001/wizard"
)

// Deferred queues notices while another component owns the terminal and
// delivers them on Flush.
type Deferred struct {
	mu      sync.Mutex
	pending []wizard.Notice
}

// Notify queues n.
func (d *Deferred) Notify(_ context.Context, n wizard.Notice) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = append(d.pending, n)
	return nil
}

// Pending returns the number of queued notices.
func (d *Deferred) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Flush delivers queued notices to to in order and empties the queue.
// Delivery stops at the first error.
func (d *Deferred) Flush(ctx context.Context, to wizard.Notifier) error {
	d.mu.Lock()
	pending := d.pending
	d.pending = nil
	d.mu.Unlock()

	for _, n := range pending {
		if err := to.Notify(ctx, n); err != nil {
			return err
		}
	}
	return nil
}
