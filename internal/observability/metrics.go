package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triphive_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// ScheduleBuilds counts schedule day-grid builds by outcome.
	ScheduleBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triphive_schedule_builds_total",
		Help: "Total number of trip schedule builds",
	}, []string{"outcome"})

	// ScheduleWarmRuns counts runs of the schedule cache warm job.
	ScheduleWarmRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triphive_schedule_warm_runs_total",
		Help: "Total number of schedule cache warm job runs",
	}, []string{"outcome"})

	// WebSocketTripConnections is the gauge of live connections per trip feed.
	WebSocketTripConnections = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "triphive_websocket_trip_connections",
		Help: "Number of WebSocket connections per trip feed",
	}, []string{"trip_id"})

	// WebSocketBackpressureDrops counts messages dropped because a client
	// send buffer was closed or full.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triphive_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})
)
