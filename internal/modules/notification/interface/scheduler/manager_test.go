package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"Gigbell/internal/modules/notification/application/dto/respond"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingDispatch struct {
	dispatched atomic.Int32
	reconciled atomic.Int32
	hours      atomic.Int32
	block      chan struct{}
	err        error
}

func (s *countingDispatch) Dispatch(_ context.Context, now *time.Time) (*respond.DispatchRespond, error) {
	s.dispatched.Add(1)
	if s.block != nil {
		<-s.block
	}
	if s.err != nil {
		return nil, s.err
	}
	return &respond.DispatchRespond{CreatedTicketOpen: 1}, nil
}

func (s *countingDispatch) NotifyOnNewPerformance(context.Context, int64, []int64) (*respond.NotifyRespond, error) {
	return &respond.NotifyRespond{}, nil
}

func (s *countingDispatch) Reconcile(_ context.Context, sinceHours int) (*respond.ReconcileRespond, error) {
	s.reconciled.Add(1)
	s.hours.Store(int32(sinceHours))
	return &respond.ReconcileRespond{}, nil
}

func TestNewSchedulerManager_Defaults(t *testing.T) {
	m, err := NewSchedulerManager(&countingDispatch{}, Options{})
	require.NoError(t, err)
	assert.Len(t, m.cron.Entries(), 2)
}

func TestNewSchedulerManager_BadSpec(t *testing.T) {
	_, err := NewSchedulerManager(&countingDispatch{}, Options{DispatchSpec: "every minute"})
	assert.Error(t, err)

	_, err = NewSchedulerManager(&countingDispatch{}, Options{ReconcileSpec: "61 * * * *"})
	assert.Error(t, err)
}

func TestRunJobs(t *testing.T) {
	svc := &countingDispatch{}
	m, err := NewSchedulerManager(svc, Options{ReconcileHours: 6, Timeout: time.Second})
	require.NoError(t, err)

	m.runDispatch()
	m.runReconcile()
	assert.Equal(t, int32(1), svc.dispatched.Load())
	assert.Equal(t, int32(1), svc.reconciled.Load())
	assert.Equal(t, int32(6), svc.hours.Load())
}

func TestRunDispatch_ErrorIsSwallowed(t *testing.T) {
	svc := &countingDispatch{err: errors.New("db down")}
	m, err := NewSchedulerManager(svc, Options{})
	require.NoError(t, err)

	assert.NotPanics(t, m.runDispatch)
}

func TestScheduler_SkipsOverlappingRuns(t *testing.T) {
	svc := &countingDispatch{block: make(chan struct{})}
	m, err := NewSchedulerManager(svc, Options{DispatchSpec: "@every 1s", ReconcileSpec: "@yearly"})
	require.NoError(t, err)

	m.Start()
	require.Eventually(t, func() bool { return svc.dispatched.Load() == 1 }, 3*time.Second, 20*time.Millisecond)
	// 第一轮阻塞期间后续触发全部被跳过
	time.Sleep(2200 * time.Millisecond)
	assert.Equal(t, int32(1), svc.dispatched.Load())

	close(svc.block)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	m.Stop(ctx)
}
