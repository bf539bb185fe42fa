package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistered(t *testing.T) {
	m := New()

	m.Cycles.WithLabelValues("openai", OutcomeProcessed).Inc()
	m.Notifications.WithLabelValues("openai").Add(3)
	m.LedgerSize.WithLabelValues("openai").Set(7)

	require.Equal(t, 1.0, testutil.ToFloat64(m.Cycles.WithLabelValues("openai", OutcomeProcessed)))
	require.Equal(t, 3.0, testutil.ToFloat64(m.Notifications.WithLabelValues("openai")))
	require.Equal(t, 7.0, testutil.ToFloat64(m.LedgerSize.WithLabelValues("openai")))

	families, err := m.Registry.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, family := range families {
		names[family.GetName()] = true
	}
	require.True(t, names["status_watch_poll_cycles_total"])
	require.True(t, names["status_watch_notifications_total"])
}
