package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Operations counts domain operations by name and outcome (ok / error).
	Operations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_operations_total",
		Help: "Domain operations by operation name and outcome.",
	}, []string{"op", "outcome"})

	// PersistFailures counts snapshot writes that did not reach the store.
	PersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_persist_failures_total",
		Help: "Snapshot persistence attempts that failed.",
	})

	// SyncUpdates counts remote snapshot updates applied to a session cache.
	SyncUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_sync_updates_total",
		Help: "Remote document updates applied to session caches.",
	})

	// ActiveSessions tracks currently authenticated sessions.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pos_active_sessions",
		Help: "Number of active sessions.",
	})
)
