package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/labcoats/internal/domain/activity"
)

func TestGenerations(t *testing.T) {
	fallback := generationsCounter.WithLabelValues(string(activity.OutcomeFallback), activity.ReasonMalformedResponse)
	before := testutil.ToFloat64(fallback)

	Generations{}.ObserveGeneration(activity.OutcomeFallback, activity.ReasonMalformedResponse, 0.2)
	require.Equal(t, before+1, testutil.ToFloat64(fallback))
}

func TestObserveHTTP(t *testing.T) {
	counter := httpRequestsCounter.WithLabelValues("POST", "/api/generate-project", "200")
	before := testutil.ToFloat64(counter)

	ObserveHTTP("POST", "/api/generate-project", "200", 15*time.Millisecond)
	require.Equal(t, before+1, testutil.ToFloat64(counter))
}
