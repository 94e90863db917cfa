package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess         = "success"
	OutcomeNoClassSelected = "no_class_selected"
	OutcomeInvalid         = "invalid"
	OutcomeError           = "error"
)

// Generator records password generation outcomes and the strength scores
// handed back to callers. A nil *Generator records nothing.
type Generator struct {
	Generations *prometheus.CounterVec
	Scores      *prometheus.HistogramVec
}

// NewGenerator registers the generation collectors.
func NewGenerator(opts Options) (*Generator, error) {
	reg := opts.registerer()
	ns := opts.namespace()

	generations, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Subsystem: "generator",
		Name:      "generations_total",
		Help:      "Total number of password generation attempts partitioned by outcome.",
	}, []string{"outcome"}))
	if err != nil {
		return nil, err
	}

	scores, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Subsystem: "generator",
		Name:      "strength_score",
		Help:      "Distribution of heuristic strength scores partitioned by label.",
		Buckets:   prometheus.LinearBuckets(10, 10, 10),
	}, []string{"label"}))
	if err != nil {
		return nil, err
	}

	return &Generator{Generations: generations, Scores: scores}, nil
}

// ObserveOutcome counts one generation attempt.
func (g *Generator) ObserveOutcome(outcome string) {
	if g == nil {
		return
	}
	g.Generations.WithLabelValues(outcome).Inc()
}

// ObserveScore records a strength score under its label.
func (g *Generator) ObserveScore(label string, score int) {
	if g == nil {
		return
	}
	g.Scores.WithLabelValues(label).Observe(float64(score))
}
