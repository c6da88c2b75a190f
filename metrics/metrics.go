// Package metrics exposes Prometheus counters for action protocol traffic.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ActionRequests counts protocol phases served, by action family,
	// phase (discover/propose/confirm), and outcome (ok/error).
	ActionRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "action_requests_total",
		Help: "Action protocol requests served",
	}, []string{"action", "phase", "status"})

	// UpstreamErrors counts failed ledger RPC and registry calls.
	UpstreamErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_errors_total",
		Help: "Failed upstream (RPC/registry) calls",
	}, []string{"action"})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
