package catalog

import "github.com/prometheus/client_golang/prometheus"

// StoreRows reports the live row count of each catalog.
var StoreRows = prometheus.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "catalog",
	Subsystem: "store",
	Name:      "rows",
	Help:      "Number of live rows in the store.",
}, []string{"catalog"})

// StoreReboundHandles counts handle remaps caused by row shifts.
var StoreReboundHandles = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "catalog",
	Subsystem: "store",
	Name:      "rebound_handles",
	Help:      "Handles rebound because their row moved during an insert or remove.",
}, []string{"catalog"})

// StoreFailures counts rejected operations by error kind.
var StoreFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "catalog",
	Subsystem: "store",
	Name:      "failures",
	Help:      "Store and spatial operations rejected, by error kind.",
}, []string{"catalog", "kind"})

// SpatialUpdateDuration observes the time spent in Spatial.Update.
var SpatialUpdateDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "catalog",
	Subsystem: "spatial",
	Name:      "update_seconds",
	Help:      "Time spent recomputing world positions and z order.",
	Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
}, []string{"catalog"})

// Collectors returns every catalog metric for registration with a
// prometheus.Registerer. The catalog never registers them itself.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		StoreRows,
		StoreReboundHandles,
		StoreFailures,
		SpatialUpdateDuration,
	}
}

// storeMetrics caches the label-bound children for one catalog name.
type storeMetrics struct {
	name    string
	rows    prometheus.Gauge
	rebound prometheus.Counter
}

func newStoreMetrics(name string) storeMetrics {
	return storeMetrics{
		name:    name,
		rows:    StoreRows.WithLabelValues(name),
		rebound: StoreReboundHandles.WithLabelValues(name),
	}
}

func (m storeMetrics) failed(err error) error {
	StoreFailures.WithLabelValues(m.name, errorKind(err)).Inc()
	return err
}
