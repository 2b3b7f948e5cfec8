package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertBizMetricLine checks that the Prometheus output contains a business metric
// matching the given name, partial label pattern, and value. Uses regex to handle
// extra OTel scope labels injected by the Prometheus exporter.
func assertBizMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")

	require.NoError(t, err)
	assert.NotNil(t, businessMetrics)
}

func TestNewNoOpBusinessMetrics(t *testing.T) {
	noOpMetrics := NewNoOpBusinessMetrics()

	assert.NotNil(t, noOpMetrics)
	assert.IsType(t, &NoOpBusinessMetrics{}, noOpMetrics)

	assert.NotPanics(t, func() {
		noOpMetrics.RecordOperation(context.Background(), "tokenization", "tokenize", "success")
		noOpMetrics.RecordDuration(context.Background(), "tokenization", "reveal", time.Millisecond, "error")
	})
}

func TestBusinessMetrics_Integration(t *testing.T) {
	provider, err := NewProvider("integration_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "integration_test")
	require.NoError(t, err)

	ctx := context.Background()

	bm.RecordOperation(ctx, "tokenization", "tokenize", "success")
	bm.RecordOperation(ctx, "tokenization", "tokenize", "success")
	bm.RecordOperation(ctx, "tokenization", "tokenize", "invalid_pan")
	bm.RecordOperation(ctx, "tokenization", "reveal", "not_found")

	bm.RecordDuration(ctx, "tokenization", "tokenize", 5*time.Millisecond, "success")
	bm.RecordDuration(ctx, "tokenization", "tokenize", 7*time.Millisecond, "success")

	output := scrape(t, provider)

	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="tokenization".*operation="tokenize".*status="success"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="tokenization".*operation="tokenize".*status="invalid_pan"`,
		`1`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operation_duration_seconds_count`,
		`domain="tokenization".*operation="tokenize".*status="success"`,
		`2`,
	)
	assert.NotContains(t, output, "integration_test_security_events_total{")
}

func TestBusinessMetrics_TamperDetectedCountsSecurityEvent(t *testing.T) {
	provider, err := NewProvider("security_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "security_test")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, "tokenization", "reveal", StatusTamperDetected)
	bm.RecordOperation(ctx, "tokenization", "describe", StatusTamperDetected)
	bm.RecordOperation(ctx, "tokenization", "reveal", StatusTamperDetected)
	bm.RecordOperation(ctx, "tokenization", "reveal", "not_found")

	output := scrape(t, provider)

	assertBizMetricLine(
		t,
		output,
		`security_test_security_events_total`,
		`event="tamper_detected".*operation="reveal"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`security_test_security_events_total`,
		`event="tamper_detected".*operation="describe"`,
		`1`,
	)
	assertBizMetricLine(
		t,
		output,
		`security_test_operations_total`,
		`domain="tokenization".*operation="reveal".*status="not_found"`,
		`1`,
	)
}
