package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderWatcherReportsGrowth(t *testing.T) {
	counts := []int{2, 2, 5, 5, 4, 6}
	var calls atomic.Int32
	refresh := func(ctx context.Context) (int, bool) {
		i := int(calls.Add(1)) - 1
		if i >= len(counts) {
			return counts[len(counts)-1], true
		}
		return counts[i], true
	}
	got := make(chan int, 10)
	w := NewOrderWatcher(5*time.Millisecond, refresh, func(n int) { got <- n }, nil)
	w.Start()
	defer w.Stop()

	select {
	case n := <-got:
		assert.Equal(t, 3, n)
	case <-time.After(2 * time.Second):
		t.Fatal("no growth reported")
	}
	select {
	case n := <-got:
		assert.Equal(t, 2, n)
	case <-time.After(2 * time.Second):
		t.Fatal("second growth not reported")
	}
}

func TestOrderWatcherWaitsForFirstSuccessfulRefresh(t *testing.T) {
	type poll struct {
		n  int
		ok bool
	}
	polls := []poll{{0, false}, {0, false}, {3, true}, {3, true}, {0, false}, {4, true}}
	var calls atomic.Int32
	refresh := func(ctx context.Context) (int, bool) {
		i := int(calls.Add(1)) - 1
		if i >= len(polls) {
			return 4, true
		}
		return polls[i].n, polls[i].ok
	}
	got := make(chan int, 10)
	w := NewOrderWatcher(2*time.Millisecond, refresh, func(n int) { got <- n }, nil)
	w.Start()
	defer w.Stop()

	select {
	case n := <-got:
		assert.Equal(t, 1, n)
	case <-time.After(2 * time.Second):
		t.Fatal("growth after recovery not reported")
	}
	assert.Empty(t, got)
}

func TestOrderWatcherStop(t *testing.T) {
	var calls atomic.Int32
	w := NewOrderWatcher(time.Millisecond, func(ctx context.Context) (int, bool) {
		calls.Add(1)
		return 0, true
	}, nil, nil)
	w.Start()
	time.Sleep(10 * time.Millisecond)
	w.Stop()
	after := calls.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, after, calls.Load())

	// stopping a watcher that never started is a no-op
	NewOrderWatcher(time.Second, nil, nil, nil).Stop()
}

func TestAdminLoginStartsWatcher(t *testing.T) {
	env := newTestEnv(t)
	env.store.pollInterval = 5 * time.Millisecond
	got := make(chan int, 10)
	env.store.onNewOrders = func(n int) { got <- n }

	require.True(t, env.store.AdminLogin(DefaultAdminSecret))
	// wait for the baseline fetch before an order arrives
	require.Eventually(t, func() bool { return calls(env) > 0 }, time.Second, time.Millisecond)
	env.orders.addRemote("ORD-100")

	select {
	case n := <-got:
		assert.Equal(t, 1, n)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not report the new order")
	}

	env.store.AdminLogout()
	env.store.mu.RLock()
	assert.Nil(t, env.store.watcher)
	env.store.mu.RUnlock()
}

func TestWatcherIgnoresExistingOrdersAfterFailedFetch(t *testing.T) {
	env := newTestEnv(t)
	for _, id := range []string{"ORD-1", "ORD-2", "ORD-3"} {
		env.orders.addRemote(id)
	}
	env.orders.setListErr(errors.New("backend down"))
	env.store.pollInterval = 5 * time.Millisecond
	got := make(chan int, 10)
	env.store.onNewOrders = func(n int) { got <- n }

	require.True(t, env.store.AdminLogin(DefaultAdminSecret))
	require.Eventually(t, func() bool { return calls(env) > 1 }, time.Second, time.Millisecond)
	env.orders.setListErr(nil)
	require.Eventually(t, func() bool { return len(env.store.Orders()) == 3 }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return calls(env) > 6 }, time.Second, time.Millisecond)
	assert.Empty(t, got)

	env.orders.addRemote("ORD-4")
	select {
	case n := <-got:
		assert.Equal(t, 1, n)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not report the new order")
	}
}

func calls(env *testEnv) int {
	env.orders.mu.Lock()
	defer env.orders.mu.Unlock()
	return env.orders.listCalls
}
