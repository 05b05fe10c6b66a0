package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gigbell"

var (
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_created_total",
		Help:      "Notification rows inserted, by type.",
	}, []string{"type"})

	DispatchRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dispatch_runs_total",
		Help:      "Dispatcher and reconciler runs, by job and result.",
	}, []string{"job", "result"})

	DispatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "dispatch_duration_seconds",
		Help:      "Dispatcher and reconciler run duration.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"job"})

	PushEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "push_enqueued_total",
		Help:      "Push messages handed to the push queue.",
	})

	PushSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "push_sent_total",
		Help:      "Push messages accepted by the push gateway.",
	})

	PushFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "push_failures_total",
		Help:      "Push forwarding failures, by stage.",
	}, []string{"stage"})

	RealtimeDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "realtime_delivered_total",
		Help:      "In-app realtime deliveries, by result.",
	}, []string{"result"})
)

const (
	StageLookup   = "lookup"
	StageEnqueue  = "enqueue"
	StageDecode   = "decode"
	StageSend     = "send"
	StageRejected = "rejected"
	StageBreaker  = "breaker"
)
