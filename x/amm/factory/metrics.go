package factory

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics of the factory code
type Metrics struct {
	PairsCreated    prometheus.Counter
	PairsRegistered prometheus.Counter
}

var (
	factoryMetricsOnce sync.Once
	factoryMetrics     *Metrics
)

// NewMetrics creates and registers factory metrics (singleton pattern)
func NewMetrics() *Metrics {
	factoryMetricsOnce.Do(func() {
		factoryMetrics = &Metrics{
			PairsCreated: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "pawswap",
				Subsystem: "factory",
				Name:      "pairs_created_total",
				Help:      "Pair instantiations requested",
			}),
			PairsRegistered: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "pawswap",
				Subsystem: "factory",
				Name:      "pairs_registered_total",
				Help:      "Pairs whose record was completed",
			}),
		}
	})
	return factoryMetrics
}
