// Package metrics holds the Prometheus instruments shared by the data
// container, the form controllers, and the web host.  All collectors are
// registered with the global registry, so mounting promhttp.Handler() is
// enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	EntitiesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_entities_total",
			Help: "Cumulative number of entities appended to the data container.",
		}, []string{"kind"})

	FormRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_form_rejections_total",
			Help: "Cumulative number of Save intents rejected, by reason.",
		}, []string{"kind", "reason"})

	FormIntentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_form_intents_total",
			Help: "Cumulative number of intents dispatched to form controllers.",
		}, []string{"kind", "intent"})

	FormEvictTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_form_evictions_total",
			Help: "Cumulative number of abandoned form sessions disposed, by cause.",
		}, []string{"cause"})

	OpenForms = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "roster_open_forms",
			Help: "Number of form windows currently shown and not yet disposed.",
		})
)

func init() {
	prometheus.MustRegister(
		EntitiesTotal,
		FormRejectionsTotal,
		FormIntentsTotal,
		FormEvictTotal,
		OpenForms,
	)
}
