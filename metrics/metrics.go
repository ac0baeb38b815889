// Package metrics holds the Prometheus instruments updated by every bind.
// All collectors are registered with the global registry, so a program that
// serves promhttp.Handler() exposes them without further wiring.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Result label values of BindsTotal.
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
)

var (
	BindsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goinput_binds_total",
			Help: "Cumulative number of binds, partitioned by outcome.",
		}, []string{"result"})

	BindErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goinput_bind_errors_total",
			Help: "Cumulative number of validation errors, partitioned by code.",
		}, []string{"code"})

	InstantiationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "goinput_instantiations_total",
			Help: "Cumulative number of host objects constructed by binds.",
		})
)

func init() {
	prometheus.MustRegister(
		BindsTotal,
		BindErrorsTotal,
		InstantiationsTotal,
	)
}

// ObserveBind records the outcome of one bind.
func ObserveBind(codes []string, instantiations int) {
	if len(codes) == 0 {
		BindsTotal.WithLabelValues(ResultValid).Inc()
	} else {
		BindsTotal.WithLabelValues(ResultInvalid).Inc()
	}
	for _, c := range codes {
		BindErrorsTotal.WithLabelValues(c).Inc()
	}
	if instantiations > 0 {
		InstantiationsTotal.Add(float64(instantiations))
	}
}
