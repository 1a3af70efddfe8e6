// Package metrics defines the Prometheus collectors of playlist-maker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/FilipeMCruz/playlist-maker/maker"
)

// Query metrics
var (
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playlist_maker_queries_total",
			Help: "Total number of queries by output mode and outcome",
		},
		[]string{"mode", "outcome"}, // outcome: "matched", "empty", "rejected"
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "playlist_maker_query_duration_seconds",
			Help:    "Partitioned evaluation duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"mode"},
	)

	QueryResultTracks = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "playlist_maker_query_result_tracks",
			Help:    "Number of tracks returned per query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	PartitionsEvaluated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playlist_maker_partitions_evaluated_total",
			Help: "Total number of partitions evaluated",
		},
	)

	PartitionsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playlist_maker_partitions_failed_total",
			Help: "Partitions whose evaluation yielded no result",
		},
	)
)

// Library metrics
var (
	TracksScanned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playlist_maker_tracks_scanned_total",
			Help: "Audio files whose tags were read",
		},
	)

	ScanErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playlist_maker_scan_errors_total",
			Help: "Audio files whose tags could not be read",
		},
	)

	LibraryTracks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "playlist_maker_library_tracks",
			Help: "Number of tracks in the library",
		},
	)
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playlist_maker_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)

// Observer records engine outcomes on the package collectors.
type Observer struct{}

func (Observer) QueryRejected() {
	QueriesTotal.WithLabelValues("unknown", "rejected").Inc()
}

func (Observer) QueryEvaluated(res *maker.Result) {
	mode := res.Mode().String()
	outcome := "matched"
	if len(res.Tracks) == 0 {
		outcome = "empty"
	}
	QueriesTotal.WithLabelValues(mode, outcome).Inc()
	QueryDuration.WithLabelValues(mode).Observe(res.Duration.Seconds())
	QueryResultTracks.Observe(float64(len(res.Tracks)))
	PartitionsEvaluated.Add(float64(res.Groups))
	PartitionsFailed.Add(float64(res.Failed))
}

// RecordCollect records the outcome of gathering input tracks.
func RecordCollect(stats maker.CollectStats) {
	TracksScanned.Add(float64(stats.Scanned))
	ScanErrors.Add(float64(stats.ScanFailed))
}

// WriteTextfile writes every registered metric to path in the text
// exposition format, for node_exporter's textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
