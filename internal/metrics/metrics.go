package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aliskhannn/lfca-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/lfca-quiz-bot/internal/service"
)

// unknownCategory is the label recorded for category ids users typed in
// that are not part of the catalog.
const unknownCategory = "unknown"

// Metrics counts quiz activity reported by session events.
type Metrics struct {
	registry *prometheus.Registry

	SessionsStarted  *prometheus.CounterVec
	LoadFailures     *prometheus.CounterVec
	AnswersSubmitted *prometheus.CounterVec
	Navigations      prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SessionsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lfca_quiz_sessions_started_total",
				Help: "Total number of quiz categories loaded successfully",
			},
			[]string{"category"},
		),
		LoadFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lfca_quiz_load_failures_total",
				Help: "Total number of failed category loads",
			},
			[]string{"category"},
		),
		AnswersSubmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lfca_quiz_answers_submitted_total",
				Help: "Total number of submitted answers by feedback",
			},
			[]string{"category", "feedback"},
		),
		Navigations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "lfca_quiz_navigations_total",
				Help: "Total number of question changes",
			},
		),
	}

	m.registry.MustRegister(
		m.SessionsStarted,
		m.LoadFailures,
		m.AnswersSubmitted,
		m.Navigations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Observe is a session listener.
func (m *Metrics) Observe(ev service.Event) {
	snap := ev.Snapshot
	category := categoryLabel(snap.Category)

	switch ev.Kind {
	case service.EventLoaded:
		m.SessionsStarted.WithLabelValues(category).Inc()
	case service.EventLoadFailed:
		m.LoadFailures.WithLabelValues(category).Inc()
	case service.EventNavigated:
		m.Navigations.Inc()
	case service.EventSubmitted:
		if fb, ok := snap.Feedback(); ok {
			m.AnswersSubmitted.WithLabelValues(category, string(fb.Feedback)).Inc()
		}
	}
}

func categoryLabel(id string) string {
	if _, ok := entities.LookupCategory(id); ok {
		return id
	}
	return unknownCategory
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
