// Package telemetry wires OpenTelemetry metrics with a Prometheus exporter.
package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Telemetry holds all telemetry instruments and providers.
type Telemetry struct {
	meterProvider metric.MeterProvider
	meter         metric.Meter
	exporter      *prometheus.Exporter

	// Job metrics
	jobsTotal   metric.Int64Counter
	jobsActive  metric.Int64UpDownCounter
	jobDuration metric.Float64Histogram

	// Delivery metrics
	deliveriesTotal metric.Int64Counter
	deliveredBytes  metric.Int64Counter

	// Runtime health
	memoryUsage    metric.Int64Gauge
	goroutineCount metric.Int64Gauge
}

// Config holds telemetry configuration.
type Config struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
}

// New creates a new telemetry instance. When disabled, every recording
// method is a no-op on the zero-instrument value.
func New(ctx context.Context, cfg Config) (*Telemetry, error) {
	if !cfg.Enabled {
		return &Telemetry{}, nil
	}

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	otel.SetMeterProvider(meterProvider)

	t := &Telemetry{
		meterProvider: meterProvider,
		meter:         otel.Meter(cfg.ServiceName),
		exporter:      exporter,
	}

	if err := t.initializeMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	go t.collectRuntimeMetrics(ctx)

	return t, nil
}

// RecordJob records the outcome of one download job.
func (t *Telemetry) RecordJob(status string, duration time.Duration) {
	if t.jobsTotal != nil {
		t.jobsTotal.Add(context.Background(), 1,
			metric.WithAttributes(attribute.String("status", status)),
		)
	}

	if t.jobDuration != nil {
		t.jobDuration.Record(context.Background(), duration.Seconds(),
			metric.WithAttributes(attribute.String("status", status)),
		)
	}
}

// IncrementActiveJobs increments the active jobs counter.
func (t *Telemetry) IncrementActiveJobs() {
	if t.jobsActive != nil {
		t.jobsActive.Add(context.Background(), 1)
	}
}

// DecrementActiveJobs decrements the active jobs counter.
func (t *Telemetry) DecrementActiveJobs() {
	if t.jobsActive != nil {
		t.jobsActive.Add(context.Background(), -1)
	}
}

// RecordDelivery records a chat upload attempt and, on success, the bytes
// shipped.
func (t *Telemetry) RecordDelivery(status string, sizeBytes int64) {
	if t.deliveriesTotal != nil {
		t.deliveriesTotal.Add(context.Background(), 1,
			metric.WithAttributes(attribute.String("status", status)),
		)
	}

	if status == "ok" && t.deliveredBytes != nil {
		t.deliveredBytes.Add(context.Background(), sizeBytes)
	}
}

// Handler returns the HTTP handler for the metrics endpoint.
func (t *Telemetry) Handler() http.Handler {
	if t.exporter == nil {
		return http.NotFoundHandler()
	}

	return promhttp.Handler()
}

// Shutdown gracefully shuts down the telemetry system.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if mp, ok := t.meterProvider.(*sdkmetric.MeterProvider); ok {
		return mp.Shutdown(ctx)
	}

	return nil
}

func (t *Telemetry) initializeMetrics() error {
	var err error

	t.jobsTotal, err = t.meter.Int64Counter(
		"download_jobs_total",
		metric.WithDescription("Total number of download jobs by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create download_jobs_total counter: %w", err)
	}

	t.jobsActive, err = t.meter.Int64UpDownCounter(
		"download_jobs_active",
		metric.WithDescription("Number of download jobs currently running"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create download_jobs_active counter: %w", err)
	}

	t.jobDuration, err = t.meter.Float64Histogram(
		"download_job_duration_seconds",
		metric.WithDescription("Download job duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create download_job_duration histogram: %w", err)
	}

	t.deliveriesTotal, err = t.meter.Int64Counter(
		"deliveries_total",
		metric.WithDescription("Total number of chat uploads by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create deliveries_total counter: %w", err)
	}

	t.deliveredBytes, err = t.meter.Int64Counter(
		"delivered_bytes_total",
		metric.WithDescription("Total bytes uploaded to chats"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return fmt.Errorf("failed to create delivered_bytes_total counter: %w", err)
	}

	t.memoryUsage, err = t.meter.Int64Gauge(
		"memory_usage_bytes",
		metric.WithDescription("Current memory usage in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return fmt.Errorf("failed to create memory_usage gauge: %w", err)
	}

	t.goroutineCount, err = t.meter.Int64Gauge(
		"goroutines_count",
		metric.WithDescription("Number of running goroutines"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create goroutines_count gauge: %w", err)
	}

	return nil
}

func (t *Telemetry) collectRuntimeMetrics(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var memStats runtime.MemStats

			runtime.ReadMemStats(&memStats)

			if t.memoryUsage != nil {
				t.memoryUsage.Record(ctx, int64(memStats.Alloc))
			}

			if t.goroutineCount != nil {
				t.goroutineCount.Record(ctx, int64(runtime.NumGoroutine()))
			}
		}
	}
}
