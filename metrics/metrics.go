// Package metrics exposes the solver's prometheus counters and
// gauges, grounded on the teacher's metrics/common.go namespace
// helpers.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace is the basic namespace every metric of this solver is
// defined under.
const Namespace = "chi_solver"

var (
	branchesExplored = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "branches_explored_total",
		Help:      "Branches popped from the local queue and processed by T3.",
	}, []string{"rank"})

	branchesPruned = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "branches_pruned_total",
		Help:      "Branches discarded by a bound check without further branching.",
	}, []string{"rank"})

	stealAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "steal_attempts_total",
		Help:      "Work-steal requests sent to a peer rank.",
	}, []string{"rank"})

	stealSuccesses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "steal_successes_total",
		Help:      "Work-steal requests that returned a branch.",
	}, []string{"rank"})

	bestUB = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "best_ub",
		Help:      "Current best known upper bound on chi(G), per rank.",
	}, []string{"rank"})
)

// Recorder implements engine.Metrics over the package's prometheus
// vectors.
type Recorder struct{}

func (Recorder) BranchExplored(rank int) { branchesExplored.WithLabelValues(label(rank)).Inc() }
func (Recorder) BranchPruned(rank int)   { branchesPruned.WithLabelValues(label(rank)).Inc() }
func (Recorder) StealAttempt(rank int)   { stealAttempts.WithLabelValues(label(rank)).Inc() }
func (Recorder) StealSuccess(rank int)   { stealSuccesses.WithLabelValues(label(rank)).Inc() }
func (Recorder) SetBestUB(rank int, ub uint16) {
	bestUB.WithLabelValues(label(rank)).Set(float64(ub))
}

func label(rank int) string {
	return strconv.Itoa(rank)
}

// Serve runs the optional /metrics HTTP endpoint on addr, blocking until
// the server stops and returning its error.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
