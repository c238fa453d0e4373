package metrics

import (
	"github.com/limaJavier/stablematching/pkg/matcher"
	"github.com/limaJavier/stablematching/pkg/verifier"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder stores all the metrics related to matching and verification runs.
type Recorder struct {
	registry *prometheus.Registry

	matches       *prometheus.CounterVec // by outcome
	proposals     prometheus.Counter
	rejections    prometheus.Counter
	verdicts      *prometheus.CounterVec // by verdict kind
	instanceSizes prometheus.Histogram
}

func NewRecorder() *Recorder {
	matches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stablematch_matches_total",
			Help: "Total number of matching requests, grouped by 'ok' and 'invalid_input'",
		}, []string{"outcome"})

	proposals := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stablematch_proposals_total",
			Help: "Total number of proposals made by hospitals across all matchings",
		})

	rejections := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stablematch_rejections_total",
			Help: "Total number of proposals turned down by students across all matchings",
		})

	verdicts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stablematch_verdicts_total",
			Help: "Total number of verifications, grouped by 'stable', 'invalid' and 'unstable'",
		}, []string{"kind"})

	instanceSizes := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stablematch_instance_size",
			Help:    "Number of hospitals (and students) per processed instance",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		})

	registry := prometheus.NewRegistry()
	registry.MustRegister(matches, proposals, rejections, verdicts, instanceSizes)

	return &Recorder{
		registry:      registry,
		matches:       matches,
		proposals:     proposals,
		rejections:    rejections,
		verdicts:      verdicts,
		instanceSizes: instanceSizes,
	}
}

// Registry exposes the private registry so it can be served
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) RecordMatch(n int, statistics matcher.Statistics) {
	r.matches.WithLabelValues("ok").Inc()
	r.proposals.Add(float64(statistics.Proposals))
	r.rejections.Add(float64(statistics.Rejections))
	r.instanceSizes.Observe(float64(n))
}

func (r *Recorder) RecordInvalidInput() {
	r.matches.WithLabelValues("invalid_input").Inc()
}

func (r *Recorder) RecordVerdict(n int, verdict verifier.Verdict) {
	r.verdicts.WithLabelValues(verdict.Kind.String()).Inc()
	r.instanceSizes.Observe(float64(n))
}
