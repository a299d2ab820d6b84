package tracing

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mohamadacma/capflow-demo/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// ServiceName 上报的服务名
const ServiceName = "capflow"

// ShutdownFunc 关闭追踪并刷新未导出的 span
type ShutdownFunc func(ctx context.Context) error

// Init 初始化 OpenTelemetry 追踪
// 未启用时不修改全局 TracerProvider,返回空的关闭函数
func Init(ctx context.Context, cfg *config.TracingConfig, w io.Writer) (ShutdownFunc, error) {
	noop := func(context.Context) error { return nil }
	if cfg == nil || !cfg.Enabled {
		return noop, nil
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(ServiceName)))
	if err != nil {
		return noop, fmt.Errorf("failed to create trace resource: %w", err)
	}

	ratio := cfg.SampleRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}
	opts := []tracesdk.TracerProviderOption{
		tracesdk.WithResource(res),
		tracesdk.WithSampler(tracesdk.ParentBased(tracesdk.TraceIDRatioBased(ratio))),
	}

	switch strings.ToLower(cfg.Exporter) {
	case "", "stdout":
		if w == nil {
			w = os.Stdout
		}
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return noop, fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		opts = append(opts, tracesdk.WithBatcher(exp))
	case "none":
	default:
		return noop, fmt.Errorf("unsupported trace exporter: %s", cfg.Exporter)
	}

	tp := tracesdk.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

// Tracer 返回组件的 tracer,使用全局 TracerProvider
func Tracer(component string) trace.Tracer {
	return otel.Tracer(ServiceName + "/" + component)
}
