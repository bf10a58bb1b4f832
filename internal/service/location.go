package service

import (
	"context"
	"math"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

// Query parameter names of a quiz location.
const (
	ParamCategory = "category"
	ParamQuestion = "question"
)

// Location is the navigation state a quiz is addressed by, read as single
// values and written by merging.
type Location interface {
	QueryParam(name string) string
	SetQueryParams(params map[string]string)
}

// QueryLocation keeps location state as URL query values.
type QueryLocation struct {
	mu     sync.RWMutex
	values url.Values
}

// NewQueryLocation parses rawQuery; an unparsable query yields an empty location.
func NewQueryLocation(rawQuery string) *QueryLocation {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		values = url.Values{}
	}
	return &QueryLocation{values: values}
}

func (l *QueryLocation) QueryParam(name string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.values.Get(name)
}

// SetQueryParams sets the given parameters and leaves all others untouched.
func (l *QueryLocation) SetQueryParams(params map[string]string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, v := range params {
		l.values.Set(k, v)
	}
}

// Replace drops the current state and navigates to params, as opening a new link does.
func (l *QueryLocation) Replace(params map[string]string) {
	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.values = values
}

// Encode returns the location as a query string, e.g. "category=linux&question=3".
func (l *QueryLocation) Encode() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.values.Encode()
}

// ParseQuestionParam returns the one-based question number in raw, or 0 when
// raw is not a number within [1, total].
func ParseQuestionParam(raw string, total int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > total {
		return 0
	}
	return n
}

// StartFromLocation starts s with the category and question read from loc.
// This is the only place where the location feeds back into a session.
func StartFromLocation(ctx context.Context, s *QuizSession, loc Location) Snapshot {
	category := loc.QueryParam(ParamCategory)

	// The question count is unknown until the load finishes; Start falls
	// back to the first question when n is past the end.
	n := ParseQuestionParam(loc.QueryParam(ParamQuestion), math.MaxInt)

	return s.Start(ctx, category, n)
}

// LocationSync returns a listener that projects the displayed question onto
// loc after a load or a navigation. It only writes when the stored values differ.
func LocationSync(loc Location) Listener {
	return func(ev Event) {
		if ev.Kind != EventLoaded && ev.Kind != EventNavigated {
			return
		}

		snap := ev.Snapshot
		if snap.Status != StatusReady || len(snap.Questions) == 0 {
			return
		}

		question := strconv.Itoa(snap.QuestionNumber())
		if loc.QueryParam(ParamQuestion) == question && loc.QueryParam(ParamCategory) == snap.Category {
			return
		}

		loc.SetQueryParams(map[string]string{
			ParamCategory: snap.Category,
			ParamQuestion: question,
		})
	}
}
