package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "inventory"

// Recorder katalog operatsiyalari uchun prometheus hisoblagichlari.
// Tarmoq tinglovchisi yo'q: natija textfile ga yoziladi.
type Recorder struct {
	registry       *prometheus.Registry
	operations     *prometheus.CounterVec
	appendFailures prometheus.Counter
	products       prometheus.Gauge
}

// New yangi registry bilan Recorder yaratish
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Catalog operations by name and outcome.",
		}, []string{"op", "outcome"}),
		appendFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activity_append_failures_total",
			Help:      "Activity log lines that could not be written.",
		}),
		products: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "products",
			Help:      "Number of records currently in the catalog.",
		}),
	}
	r.registry.MustRegister(r.operations, r.appendFailures, r.products)
	return r
}

// Operation operatsiya natijasini hisoblash
func (r *Recorder) Operation(op, outcome string) {
	r.operations.WithLabelValues(op, outcome).Inc()
}

// ActivityAppendFailed jurnalga yozilmagan qatorni hisoblash
func (r *Recorder) ActivityAppendFailed() {
	r.appendFailures.Inc()
}

// SetProducts katalogdagi yozuvlar soni
func (r *Recorder) SetProducts(n int) {
	r.products.Set(float64(n))
}

// Registry ichki registry (testlar uchun)
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile node_exporter textfile formatida yozish
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
