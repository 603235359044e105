// Package otel provides lightweight wrapper functions to
// record OpenTelemetry metrics using Temporal activities.
package otel

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.temporal.io/sdk/workflow"

	"github.com/tzrikka/teambot/internal/logger"
)

const name = "github.com/tzrikka/teambot/internal/otel"

var activityOpts = workflow.LocalActivityOptions{
	ScheduleToCloseTimeout: time.Second,
}

type activityRequest struct {
	Name  string
	Inc   int64
	Attrs map[string]string
}

// Options configure the OTLP HTTP exporter. A disabled exporter
// still installs a meter provider, but one without any readers.
type Options struct {
	Disabled    bool
	Endpoint    string // Full URL, e.g. "https://localhost:4318".
	Timeout     time.Duration
	Compression string // Only "gzip" is supported.
}

// InitMetrics creates an OpenTelemetry meter provider, and sets it as the global one.
// The caller is responsible for shutting it down, to flush pending data points.
func InitMetrics(ctx context.Context, opts Options) (*metric.MeterProvider, error) {
	res := resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName("teambot"),
		semconv.ServiceVersion(version()))

	if opts.Disabled {
		provider := metric.NewMeterProvider(metric.WithResource(res))
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporterOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpointURL(opts.Endpoint)}
	if opts.Timeout > 0 {
		exporterOpts = append(exporterOpts, otlpmetrichttp.WithTimeout(opts.Timeout))
	}
	switch opts.Compression {
	case "":
	case "gzip":
		exporterOpts = append(exporterOpts, otlpmetrichttp.WithCompression(otlpmetrichttp.GzipCompression))
	default:
		return nil, fmt.Errorf("unsupported OTLP compression: %q", opts.Compression)
	}

	exporter, err := otlpmetrichttp.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	reader := metric.NewPeriodicReader(exporter)
	provider := metric.NewMeterProvider(metric.WithReader(reader), metric.WithResource(res))

	otel.SetMeterProvider(provider)
	return provider, nil
}

func version() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		return bi.Main.Version
	}
	return "unknown"
}

// IncrementCounter increments a metric counter. Attributes are optional.
func IncrementCounter(ctx workflow.Context, name string, incr int64, attrs map[string]string) {
	req := activityRequest{Name: name, Inc: incr, Attrs: attrs}
	ctx = workflow.WithLocalActivityOptions(ctx, activityOpts)
	if err := workflow.ExecuteLocalActivity(ctx, incrementCounterActivity, req).Get(ctx, nil); err != nil {
		logger.From(ctx).Error("failed to increment metric counter", slog.Any("error", err),
			slog.String("name", name), slog.Any("attrs", attrs))
	}
}

func incrementCounterActivity(ctx context.Context, req activityRequest) error {
	meter := otel.GetMeterProvider().Meter(name)
	counter, err := meter.Int64Counter(req.Name)
	if err != nil {
		return err
	}

	attrs := make([]attribute.KeyValue, 0, len(req.Attrs))
	for k, v := range req.Attrs {
		if v == "" {
			continue
		}
		attrs = append(attrs, attribute.String(k, v))
	}

	counter.Add(ctx, req.Inc, otelmetric.WithAttributes(attrs...))
	return nil
}

// SignalReceived increments a metric that a Temporal signal was
// received from Timpani, triggered by an incoming webhook event.
func SignalReceived(ctx workflow.Context, name string, draining bool) {
	msg := "received signal"
	if draining {
		msg += " while draining"
	}
	logger.From(ctx).Info(msg, slog.String("signal_name", name))
	IncrementCounter(ctx, "signal.received", 1, map[string]string{"signal_name": name})
}

// CommandReceived increments a metric that a bot command was handled.
func CommandReceived(ctx workflow.Context, command string) {
	IncrementCounter(ctx, "command.received", 1, map[string]string{"command": command})
}
