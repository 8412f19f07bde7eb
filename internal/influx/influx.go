// Package influx records planner runs (overlap passes, alignments) as
// InfluxDB points.
package influx

import (
	"context"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/lumenrig/projplan/internal/config"
	"github.com/rs/zerolog"
)

// Measurement is the measurement name of every run point.
const Measurement = "planner_runs"

// Run describes one planner operation.
type Run struct {
	Op         string
	Collection string
	Count      int
	Projectors int
	At         time.Time
}

// Reporter writes run points. The zero value and a reporter built from a
// disabled config drop every run.
type Reporter struct {
	client influxdb2.Client
	writer influxdb2_api.WriteAPI
	logger zerolog.Logger
	done   chan struct{}
}

// NewReporter connects to InfluxDB when cfg.Enabled. The write API is
// non-blocking; write errors are logged as they arrive.
func NewReporter(cfg config.InfluxConfig, log zerolog.Logger) *Reporter {
	r := &Reporter{logger: log}
	if !cfg.Enabled {
		return r
	}

	r.client = influxdb2.NewClientWithOptions(
		cfg.URL,
		cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(100).
			SetFlushInterval(1000),
	)
	r.writer = r.client.WriteAPI(cfg.Org, cfg.Bucket)
	r.done = make(chan struct{})

	errorsCh := r.writer.Errors()
	go func() {
		defer close(r.done)
		for writeErr := range errorsCh {
			r.logger.Error().Err(writeErr).Str("bucket", cfg.Bucket).
				Msg("Error sending data to InfluxDB")
		}
	}()

	r.logger.Info().Str("url", cfg.URL).Msg("InfluxDB reporter initialized")
	return r
}

// Enabled reports whether runs are sent anywhere.
func (r *Reporter) Enabled() bool {
	return r != nil && r.writer != nil
}

// Ping checks the server health.
func (r *Reporter) Ping(ctx context.Context) (bool, error) {
	if !r.Enabled() {
		return false, nil
	}
	return r.client.Ping(ctx)
}

// Report queues a point for run.
func (r *Reporter) Report(run Run) {
	if !r.Enabled() {
		return
	}
	r.writer.WritePoint(NewPoint(run))
}

// NewPoint converts run to a point of Measurement.
func NewPoint(run Run) *influxdb2_write.Point {
	at := run.At
	if at.IsZero() {
		at = time.Now()
	}
	point := influxdb2_write.NewPointWithMeasurement(Measurement)
	// tags in key order
	if run.Collection != "" {
		point.AddTag("collection", run.Collection)
	}
	return point.
		AddTag("op", run.Op).
		AddField("count", run.Count).
		AddField("projectors", run.Projectors).
		SetTime(at)
}

// Close flushes pending points and closes the client.
func (r *Reporter) Close() {
	if !r.Enabled() {
		return
	}
	r.writer.Flush()
	r.client.Close()
	<-r.done
}
