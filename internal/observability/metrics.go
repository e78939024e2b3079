package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	identifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spkd_identifications_total",
		Help: "Total identification requests by resulting label class",
	}, []string{"result"}) // result: "matched", "unknown", "error"

	enrollments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spkd_enrollments_total",
		Help: "Total enrollment attempts",
	}, []string{"status"})

	summaries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spkd_summaries_total",
		Help: "Total meeting summary runs",
	}, []string{"status"})

	summaryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "spkd_summary_duration_seconds",
		Help:    "End-to-end meeting summary pipeline duration in seconds",
		Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
	})

	corrections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spkd_corrections_total",
		Help: "Total applied labeling corrections",
	})

	encoderLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "spkd_encoder_latency_seconds",
		Help:    "Voice embedding backend latency in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
	})
)

// RecordIdentification counts one identification by its result class.
func RecordIdentification(result string) {
	identifications.WithLabelValues(result).Inc()
}

// RecordEnrollment counts one enrollment attempt.
func RecordEnrollment(success bool) {
	enrollments.WithLabelValues(statusLabel(success)).Inc()
}

// RecordSummary counts one pipeline run and observes its duration.
func RecordSummary(success bool, seconds float64) {
	summaries.WithLabelValues(statusLabel(success)).Inc()
	summaryDuration.Observe(seconds)
}

// RecordCorrection counts one applied correction.
func RecordCorrection() {
	corrections.Inc()
}

// ObserveEncoderLatency records one embedding backend round trip.
func ObserveEncoderLatency(seconds float64) {
	encoderLatency.Observe(seconds)
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
