package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetupTracingDisabledByDefault(t *testing.T) {
	prev := otel.GetTracerProvider()
	shutdown, err := setupTracing(context.Background(), Config{ChainID: "c"})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	require.Equal(t, prev, otel.GetTracerProvider())
}

func TestSetupTracingExportsSpans(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	shutdown, err := setupTracing(context.Background(), Config{
		ChainID:       "c",
		TraceEndpoint: server.URL + "/v1/traces",
	})
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "ping")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.Contains(t, paths, "/v1/traces")
}
