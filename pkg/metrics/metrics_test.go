package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterCollectors(reg)
	require.Panics(t, func() { RegisterCollectors(reg) })

	before := testutil.ToFloat64(ContentFetches.WithLabelValues("hit"))
	ContentFetches.WithLabelValues("hit").Inc()
	require.Equal(t, before+1, testutil.ToFloat64(ContentFetches.WithLabelValues("hit")))

	ContactSubmissions.WithLabelValues("ok").Inc()
	n, err := testutil.GatherAndCount(reg, "site_contact_submissions_total", "site_content_fetches_total")
	require.NoError(t, err)
	require.GreaterOrEqual(t, n, 2)
}
