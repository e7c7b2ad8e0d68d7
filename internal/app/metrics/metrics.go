// Package metrics counts what a transcription run did and writes it in the
// Prometheus text format, for node_exporter's textfile collector.
package metrics

import (
	"time"

	apperrors "audio-transcriber/internal/app/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "transcribe"

// Recorder is safe to use as a nil pointer; every method is then a no-op.
type Recorder struct {
	path     string
	registry *prometheus.Registry

	files          *prometheus.CounterVec
	fileSeconds    prometheus.Histogram
	audioSeconds   prometheus.Counter
	lastRunSeconds prometheus.Gauge
}

// NewRecorder returns a recorder that Flush writes to path.
func NewRecorder(path, backend, model string) *Recorder {
	labels := prometheus.Labels{"backend": backend, "model": model}
	r := &Recorder{
		path:     path,
		registry: prometheus.NewRegistry(),
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "files_total",
			Help:        "Files handed to the backend, by outcome.",
			ConstLabels: labels,
		}, []string{"status"}),
		fileSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "file_duration_seconds",
			Help:        "Wall time spent transcribing one file.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		audioSeconds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "audio_seconds_total",
			Help:        "Audio length of successfully transcribed files, when it could be probed.",
			ConstLabels: labels,
		}),
		lastRunSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "last_run_timestamp_seconds",
			Help:        "Unix time the run finished.",
			ConstLabels: labels,
		}),
	}
	r.registry.MustRegister(r.files, r.fileSeconds, r.audioSeconds, r.lastRunSeconds)
	return r
}

// ObserveFile records one backend call.
func (r *Recorder) ObserveFile(err error, elapsed time.Duration) {
	if r == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.files.WithLabelValues(status).Inc()
	r.fileSeconds.Observe(elapsed.Seconds())
}

func (r *Recorder) AddAudio(seconds float64) {
	if r == nil || seconds <= 0 {
		return
	}
	r.audioSeconds.Add(seconds)
}

// Flush stamps the run end and rewrites the textfile atomically.
func (r *Recorder) Flush() error {
	if r == nil {
		return nil
	}
	r.lastRunSeconds.Set(float64(time.Now().Unix()))
	if err := prometheus.WriteToTextfile(r.path, r.registry); err != nil {
		return apperrors.Wrapf(err, "write metrics %s", r.path)
	}
	return nil
}
