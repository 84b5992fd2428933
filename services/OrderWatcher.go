package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// OrderWatcher polls the order count at a fixed interval and reports growth.
// There is no backoff and no jitter.
type OrderWatcher struct {
	interval time.Duration
	refresh  func(ctx context.Context) (int, bool)
	onNew    func(n int)
	log      *zap.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// NewOrderWatcher builds a stopped watcher. refresh reloads the orders and
// returns how many are known afterwards, and false when the reload failed.
func NewOrderWatcher(interval time.Duration, refresh func(ctx context.Context) (int, bool), onNew func(n int), log *zap.Logger) *OrderWatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderWatcher{
		interval: interval,
		refresh:  refresh,
		onNew:    onNew,
		log:      log.Named("watcher"),
	}
}

// Start launches the polling goroutine. The first successful refresh sets
// the baseline and is never reported.
func (w *OrderWatcher) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.done = make(chan struct{})
	go w.run(ctx)
}

// Stop cancels polling and waits for the goroutine to exit.
func (w *OrderWatcher) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
}

func (w *OrderWatcher) run(ctx context.Context) {
	defer close(w.done)
	prev, ready := w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur, ok := w.refresh(ctx)
			if ctx.Err() != nil {
				return
			}
			if !ok {
				continue
			}
			if ready && cur > prev {
				w.log.Debug("order count grew", zap.Int("prev", prev), zap.Int("cur", cur))
				if w.onNew != nil {
					w.onNew(cur - prev)
				}
			}
			prev, ready = cur, true
		}
	}
}

func (s *Store) refreshOrders(ctx context.Context) (int, bool) {
	if !s.fetchOrders(ctx) {
		return 0, false
	}
	return s.ordersCount(), true
}
