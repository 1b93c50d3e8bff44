package worker_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/brainboost/internal/worker"
)

type funcJob struct {
	name string
	fn   func(context.Context) error
}

func (j funcJob) Name() string                  { return j.name }
func (j funcJob) Run(ctx context.Context) error { return j.fn(ctx) }

func TestPool_RunsAndDrainsOnStop(t *testing.T) {
	p := worker.NewPool(2, 16)
	var ran atomic.Int32
	p.Start(context.Background())

	for i := 0; i < 10; i++ {
		require.NoError(t, p.Submit(funcJob{name: "count", fn: func(context.Context) error {
			ran.Add(1)
			return nil
		}}))
	}
	p.Stop()

	assert.Equal(t, int32(10), ran.Load())
}

func TestPool_QueueFull(t *testing.T) {
	p := worker.NewPool(1, 1)
	release := make(chan struct{})
	started := make(chan struct{})
	p.Start(context.Background())
	defer p.Stop()
	defer close(release)

	require.NoError(t, p.Submit(funcJob{name: "block", fn: func(context.Context) error {
		close(started)
		<-release
		return nil
	}}))
	<-started

	noop := funcJob{name: "noop", fn: func(context.Context) error { return nil }}
	require.NoError(t, p.Submit(noop))
	assert.ErrorIs(t, p.Submit(noop), worker.ErrQueueFull)
	assert.Equal(t, 1, p.QueueSize())
}

func TestPool_SubmitAfterStop(t *testing.T) {
	p := worker.NewPool(1, 1)
	p.Start(context.Background())
	p.Stop()
	p.Stop()

	err := p.Submit(funcJob{name: "late", fn: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, worker.ErrPoolStopped)
}

func TestPool_Observer(t *testing.T) {
	p := worker.NewPool(1, 4)
	var (
		mu   sync.Mutex
		seen []string
	)
	p.Observe(func(job string, _ time.Duration, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			job += ":failed"
		}
		seen = append(seen, job)
	})
	p.Start(context.Background())

	require.NoError(t, p.Submit(funcJob{name: "ok", fn: func(context.Context) error { return nil }}))
	require.NoError(t, p.Submit(funcJob{name: "bad", fn: func(context.Context) error { return errors.New("boom") }}))
	p.Stop()

	assert.Equal(t, []string{"ok", "bad:failed"}, seen)
}
