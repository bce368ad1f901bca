package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetricsForTesting(t *testing.T) {
	m := NewMetricsForTesting()

	m.Lookups.WithLabelValues(OutcomeSuccess).Inc()
	m.Lookups.WithLabelValues("timeout").Add(2)
	m.Categories.WithLabelValues("Clear").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Lookups.WithLabelValues("timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Categories.WithLabelValues("Clear")))
}

func TestNewMetricsForTesting_Independent(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	a.Lookups.WithLabelValues(OutcomeSuccess).Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Lookups.WithLabelValues(OutcomeSuccess)))
}

func TestNewMetrics_Registers(t *testing.T) {
	m := NewMetrics()
	assert.NotNil(t, m.LookupDuration)
	assert.Panics(t, func() { NewMetrics() })
}
