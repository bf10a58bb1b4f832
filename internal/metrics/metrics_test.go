package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/aliskhannn/lfca-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/lfca-quiz-bot/internal/service"
)

type staticLoader map[string][]entities.Question

func (l staticLoader) LoadCategory(_ context.Context, id string) ([]entities.Question, error) {
	q, ok := l[id]
	if !ok {
		return nil, service.ErrUnknownCategory
	}
	return q, nil
}

func testLoader() staticLoader {
	q := func(id string) entities.Question {
		return entities.Question{
			ID:             id,
			Text:           "question " + id,
			Choices:        []entities.Choice{{ID: id + "c0", Text: "A"}, {ID: id + "c1", Text: "B"}},
			CorrectIndices: []int{1},
		}
	}
	return staticLoader{"linux": {q("q0"), q("q1")}}
}

func TestObserveCountsSessionEvents(t *testing.T) {
	m := New()
	s := service.NewQuizSession(testLoader(), nil)
	s.Subscribe(m.Observe)

	s.Start(context.Background(), "linux", 0)
	s.SelectChoice(1)
	s.SubmitAnswer()
	s.Next()
	s.SelectChoice(0)
	s.SubmitAnswer()
	s.Start(context.Background(), "missing", 0)

	if got := testutil.ToFloat64(m.SessionsStarted.WithLabelValues("linux")); got != 1 {
		t.Fatalf("sessions started = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.LoadFailures.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("load failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Navigations); got != 1 {
		t.Fatalf("navigations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.AnswersSubmitted.WithLabelValues("linux", "correct")); got != 1 {
		t.Fatalf("correct answers = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.AnswersSubmitted.WithLabelValues("linux", "incorrect")); got != 1 {
		t.Fatalf("incorrect answers = %v, want 1", got)
	}
}

func TestObserveCollapsesUnknownCategories(t *testing.T) {
	m := New()
	s := service.NewQuizSession(testLoader(), nil)
	s.Subscribe(m.Observe)

	for i := 0; i < 50; i++ {
		s.Start(context.Background(), "junk"+strconv.Itoa(i), 0)
	}
	s.Start(context.Background(), "cloud", 0)

	if got := testutil.CollectAndCount(m.LoadFailures); got != 2 {
		t.Fatalf("load failure series = %d, want 2", got)
	}
	if got := testutil.ToFloat64(m.LoadFailures.WithLabelValues("unknown")); got != 50 {
		t.Fatalf("unknown load failures = %v, want 50", got)
	}
	if got := testutil.ToFloat64(m.LoadFailures.WithLabelValues("cloud")); got != 1 {
		t.Fatalf("cloud load failures = %v, want 1", got)
	}
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.Navigations.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "lfca_quiz_navigations_total 1") {
		t.Fatalf("navigations counter missing from output:\n%s", rec.Body.String())
	}
}
