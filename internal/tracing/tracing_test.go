package tracing_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/mohamadacma/capflow-demo/internal/config"
	"github.com/mohamadacma/capflow-demo/internal/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

// restoreProvider 测试结束后恢复全局 TracerProvider
func restoreProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
}

// TestInit_Disabled 测试未启用时不替换全局 provider
func TestInit_Disabled(t *testing.T) {
	restoreProvider(t)
	prev := otel.GetTracerProvider()

	shutdown, err := tracing.Init(context.Background(), &config.TracingConfig{Enabled: false}, nil)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, prev, otel.GetTracerProvider())

	shutdown, err = tracing.Init(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

// TestInit_StdoutExporter 测试 span 写入 stdout 导出器
func TestInit_StdoutExporter(t *testing.T) {
	restoreProvider(t)

	var buf bytes.Buffer
	shutdown, err := tracing.Init(context.Background(), &config.TracingConfig{
		Enabled:     true,
		Exporter:    "stdout",
		SampleRatio: 1,
	}, &buf)
	require.NoError(t, err)

	_, span := tracing.Tracer("test").Start(context.Background(), "decide-request")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "decide-request")
	assert.Contains(t, buf.String(), tracing.ServiceName)
}

// TestInit_UnsupportedExporter 测试不支持的导出器
func TestInit_UnsupportedExporter(t *testing.T) {
	restoreProvider(t)

	_, err := tracing.Init(context.Background(), &config.TracingConfig{Enabled: true, Exporter: "jaeger"}, nil)
	assert.Error(t, err)
}

// TestInit_NoneExporter 测试仅采样不导出
func TestInit_NoneExporter(t *testing.T) {
	restoreProvider(t)

	shutdown, err := tracing.Init(context.Background(), &config.TracingConfig{Enabled: true, Exporter: "none"}, nil)
	require.NoError(t, err)

	_, span := tracing.Tracer("test").Start(context.Background(), "sampled")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}
