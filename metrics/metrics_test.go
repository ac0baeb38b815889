package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/reoring/goinput/metrics"
)

func TestObserveBind(t *testing.T) {
	valid := testutil.ToFloat64(metrics.BindsTotal.WithLabelValues(metrics.ResultValid))
	invalid := testutil.ToFloat64(metrics.BindsTotal.WithLabelValues(metrics.ResultInvalid))
	required := testutil.ToFloat64(metrics.BindErrorsTotal.WithLabelValues("required"))
	inst := testutil.ToFloat64(metrics.InstantiationsTotal)

	metrics.ObserveBind(nil, 2)
	metrics.ObserveBind([]string{"required", "required", "invalid_type"}, 0)

	assert.Equal(t, valid+1, testutil.ToFloat64(metrics.BindsTotal.WithLabelValues(metrics.ResultValid)))
	assert.Equal(t, invalid+1, testutil.ToFloat64(metrics.BindsTotal.WithLabelValues(metrics.ResultInvalid)))
	assert.Equal(t, required+2, testutil.ToFloat64(metrics.BindErrorsTotal.WithLabelValues("required")))
	assert.Equal(t, inst+2, testutil.ToFloat64(metrics.InstantiationsTotal))
}
