package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	middlewares "github.com/tnqbao/gau-vm-service/http/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) attribute.Value {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value
		}
	}
	return attribute.Value{}
}

func TestTelemetryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := tracetest.NewSpanRecorder()
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	defer func() {
		_ = tracerProvider.Shutdown(context.Background())
		_ = meterProvider.Shutdown(context.Background())
	}()

	telemetry, err := middlewares.TelemetryMiddleware("gau-vm-service-test")
	require.NoError(t, err)

	r := gin.New()
	r.Use(telemetry)
	r.GET("/vms/:id", func(c *gin.Context) {
		if c.Param("id") == "missing" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"vm": c.Param("id")})
	})

	for _, path := range []string{"/vms/abc", "/vms/missing"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	ok, failed := spans[0], spans[1]
	assert.Equal(t, "GET /vms/:id", ok.Name())
	assert.Equal(t, "/vms/:id", spanAttr(ok, "http.route").AsString(), "route template, not raw path")
	assert.Equal(t, int64(http.StatusOK), spanAttr(ok, "http.response.status_code").AsInt64())
	assert.Equal(t, codes.Unset, ok.Status().Code)

	assert.Equal(t, int64(http.StatusBadRequest), spanAttr(failed, "http.response.status_code").AsInt64())
	assert.Equal(t, codes.Error, failed.Status().Code)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != "http.server.requests" {
				continue
			}
			sum, isSum := m.Data.(metricdata.Sum[int64])
			require.True(t, isSum)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	assert.Equal(t, int64(2), total)
}
