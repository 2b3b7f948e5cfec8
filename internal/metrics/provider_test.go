package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	t.Run("ExplicitNamespace", func(t *testing.T) {
		provider, err := NewProvider("card_vault")
		require.NoError(t, err)

		assert.Equal(t, "card_vault", provider.Namespace())
		assert.NotNil(t, provider.MeterProvider())
	})

	t.Run("EmptyNamespaceFallsBackToDefault", func(t *testing.T) {
		provider, err := NewProvider("")
		require.NoError(t, err)

		assert.Equal(t, DefaultNamespace, provider.Namespace())
	})
}

func TestProvider_HandlerExposesRuntimeCollectors(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestProvider_Shutdown(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)
	assert.NoError(t, provider.Shutdown(context.Background()))

	var empty Provider
	assert.NoError(t, empty.Shutdown(context.Background()))
}
