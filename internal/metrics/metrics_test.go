package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorsAreRegistered(t *testing.T) {
	m := New()
	m.GatewayCalls.WithLabelValues("popular", "fallback").Inc()
	m.FavoritesWrites.WithLabelValues("ok").Add(2)
	m.UpstreamUp.Set(1)

	families, err := m.Registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["moviedeck_gateway_calls_total"])
	assert.True(t, names["moviedeck_favorites_writes_total"])
	assert.True(t, names["moviedeck_upstream_up"])
	assert.True(t, names["go_goroutines"])

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FavoritesWrites.WithLabelValues("ok")))
}

func TestInstancesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.GatewayCalls.WithLabelValues("search", "live").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.GatewayCalls.WithLabelValues("search", "live")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.GatewayCalls.WithLabelValues("search", "live")))
}
