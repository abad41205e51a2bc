package collection

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

var (
	mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_collection_mutations_total",
		Help: "Collection mutations by operation and outcome.",
	}, []string{"collection", "op", "outcome"})

	rollbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_collection_rollbacks_total",
		Help: "Optimistic mutations undone after a failed write.",
	}, []string{"collection", "op"})

	syncs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_collection_syncs_total",
		Help: "Local-to-remote bulk merges on login by outcome.",
	}, []string{"collection", "outcome"})
)
