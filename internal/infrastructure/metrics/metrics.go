package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Vote subsystem counters, exposed on /metrics via promhttp.
var (
	// VotesTotal counts committed toggle actions by subject type and action.
	VotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "policytrack_votes_total",
		Help: "Committed vote toggles by subject type and resulting action.",
	}, []string{"subject", "action"})

	// RejectionsTotal counts rejected vote attempts by reason.
	RejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "policytrack_vote_rejections_total",
		Help: "Rejected vote attempts by rejection reason.",
	}, []string{"reason"})
)
