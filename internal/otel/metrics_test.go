package otel

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestInitMetrics(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{
			name: "disabled",
			opts: Options{Disabled: true},
		},
		{
			name: "gzip",
			opts: Options{Endpoint: "http://localhost:4318", Compression: "gzip"},
		},
		{
			name:    "unsupported_compression",
			opts:    Options{Endpoint: "http://localhost:4318", Compression: "zstd"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := InitMetrics(t.Context(), tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("InitMetrics() error = %v, wantErr %v", err, tt.wantErr)
			}
			if provider != nil {
				_ = provider.Shutdown(context.Background())
			}
		})
	}
}

func TestIncrementCounterActivity(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	prev := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)
	t.Cleanup(func() { otel.SetMeterProvider(prev) })

	req := activityRequest{Name: "command.received", Inc: 2, Attrs: map[string]string{"command": "pick", "empty": ""}}
	if err := incrementCounterActivity(t.Context(), req); err != nil {
		t.Fatalf("incrementCounterActivity() error = %v", err)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(t.Context(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if len(rm.ScopeMetrics) != 1 || len(rm.ScopeMetrics[0].Metrics) != 1 {
		t.Fatalf("collected metrics = %+v, want exactly one", rm.ScopeMetrics)
	}
	m := rm.ScopeMetrics[0].Metrics[0]
	if m.Name != "command.received" {
		t.Errorf("metric name = %q, want %q", m.Name, "command.received")
	}

	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok || len(sum.DataPoints) != 1 {
		t.Fatalf("metric data = %#v, want a single int64 sum data point", m.Data)
	}
	dp := sum.DataPoints[0]
	if dp.Value != 2 {
		t.Errorf("counter value = %d, want 2", dp.Value)
	}
	if v, ok := dp.Attributes.Value(attribute.Key("command")); !ok || v.AsString() != "pick" {
		t.Errorf("command attribute = %v, want %q", v, "pick")
	}
	if dp.Attributes.HasValue(attribute.Key("empty")) {
		t.Error("empty attribute should be skipped")
	}
}
