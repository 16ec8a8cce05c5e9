// Package metrics holds the resolver's Prometheus collectors. Counters are
// usable without registration; Register attaches them to a registry for
// scraping.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ResolvesTotal counts dependency set resolutions by result
	// ("ok", "missing", "error").
	ResolvesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preload_resolves_total",
			Help: "Total number of dependency set resolutions by result",
		},
		[]string{"result"},
	)

	// MissingDependenciesTotal counts kind/config pairs that failed their
	// presence check during resolution.
	MissingDependenciesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "preload_missing_dependencies_total",
			Help: "Total number of dependencies reported missing during resolution",
		},
	)

	// ComponentsLoadedTotal counts components constructed by dependency
	// entries.
	ComponentsLoadedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "preload_components_loaded_total",
			Help: "Total number of components constructed",
		},
	)
)

// Register registers all resolver metrics with the given registerer.
func Register(r prometheus.Registerer) {
	r.MustRegister(
		ResolvesTotal,
		MissingDependenciesTotal,
		ComponentsLoadedTotal,
	)
}
