package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Load sources.
const (
	SourceCatalog    = "catalog"
	SourceApproaches = "approaches"
)

var (
	recordsLoadedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "neotrack_records_loaded_total",
			Help: "Total number of records loaded from input files.",
		},
		[]string{"source"},
	)

	loadDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "neotrack_load_duration_seconds",
			Help:    "Time spent loading an input file.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	recordsWrittenTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "neotrack_records_written_total",
			Help: "Total number of close approaches written to result files.",
		},
		[]string{"format"},
	)

	linkedApproaches = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "neotrack_linked_approaches",
			Help: "Number of close approaches linked to a catalog entry.",
		},
	)
)

func init() {
	prometheus.MustRegister(recordsLoadedTotal)
	prometheus.MustRegister(loadDurationSeconds)
	prometheus.MustRegister(recordsWrittenTotal)
	prometheus.MustRegister(linkedApproaches)
}

// ObserveLoad records a completed load of count records from source.
func ObserveLoad(source string, count int, elapsed time.Duration) {
	recordsLoadedTotal.WithLabelValues(source).Add(float64(count))
	loadDurationSeconds.WithLabelValues(source).Observe(elapsed.Seconds())
}

// RecordsWritten adds n to the written-records counter for format.
func RecordsWritten(format string, n int) {
	recordsWrittenTotal.WithLabelValues(format).Add(float64(n))
}

// SetLinkedApproaches sets the linked approach gauge.
func SetLinkedApproaches(n int) {
	linkedApproaches.Set(float64(n))
}

// WriteTextfile writes all registered metrics to path in the text exposition
// format read by the node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
