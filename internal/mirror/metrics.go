package mirror

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// File outcomes used as the "outcome" label of mirror_files_total.
const (
	outcomeDownloaded = "downloaded"
	outcomeSkipped    = "skipped"
	outcomeFailed     = "failed"
)

var (
	// lastMirrorTimestamp captures the time of the last successful mirror per repo
	lastMirrorTimestamp *prometheus.GaugeVec
	// mirrorCount counts mirror runs per repo and result
	mirrorCount *prometheus.CounterVec
	// mirrorLatency tracks full mirror durations
	mirrorLatency *prometheus.HistogramVec
	// listingCount counts listing calls per repo and result
	listingCount *prometheus.CounterVec
	// filesTotal counts files per repo and outcome
	filesTotal *prometheus.CounterVec
)

// EnableMetrics enables metrics collection for mirror runs.
// Available metrics are...
//   - mirror_last_success_timestamp - (tags: repo)
//     A Gauge with the timestamp of the last successful mirror per repo.
//   - mirror_count - (tags: repo,success)
//     A Counter incremented for each mirror run, tagged with its result.
//   - mirror_latency_seconds - (tags: repo)
//     A Histogram of full mirror durations.
//   - mirror_listing_count - (tags: repo,success)
//     A Counter of directory listing calls.
//   - mirror_files_total - (tags: repo,outcome)
//     A Counter of files by outcome (downloaded, skipped, failed).
func EnableMetrics(metricsNamespace string, registerer prometheus.Registerer) {
	lastMirrorTimestamp = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "mirror_last_success_timestamp",
		Help:      "Timestamp of the last successful repository mirror",
	}, []string{"repo"})

	mirrorCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "mirror_count",
		Help:      "Count of repository mirror runs",
	}, []string{"repo", "success"})

	mirrorLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "mirror_latency_seconds",
		Help:      "Duration of repository mirror runs",
		Buckets:   []float64{0.5, 1, 5, 10, 20, 30, 60, 120, 300},
	}, []string{"repo"})

	listingCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "mirror_listing_count",
		Help:      "Count of remote directory listing calls",
	}, []string{"repo", "success"})

	filesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "mirror_files_total",
		Help:      "Count of mirrored files by outcome",
	}, []string{"repo", "outcome"})

	registerer.MustRegister(
		lastMirrorTimestamp,
		mirrorCount,
		mirrorLatency,
		listingCount,
		filesTotal,
	)
}

// recordMirror records the result of a full mirror run.
func recordMirror(repo string, success bool, start time.Time) {
	// if metrics not enabled return
	if mirrorCount == nil {
		return
	}
	if success {
		lastMirrorTimestamp.WithLabelValues(repo).Set(float64(time.Now().Unix()))
	}
	mirrorCount.WithLabelValues(repo, strconv.FormatBool(success)).Inc()
	mirrorLatency.WithLabelValues(repo).Observe(time.Since(start).Seconds())
}

func recordListing(repo string, success bool) {
	if listingCount == nil {
		return
	}
	listingCount.WithLabelValues(repo, strconv.FormatBool(success)).Inc()
}

func recordFile(repo, outcome string) {
	if filesTotal == nil {
		return
	}
	filesTotal.WithLabelValues(repo, outcome).Inc()
}
