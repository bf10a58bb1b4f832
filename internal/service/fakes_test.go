package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/lfca-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/lfca-quiz-bot/internal/repository"
)

type fakeBank struct {
	records map[string][]entities.RawQuestion
	order   []string
	err     error
}

func (b *fakeBank) GetRecords(_ context.Context, id string) ([]entities.RawQuestion, error) {
	if b.err != nil {
		return nil, b.err
	}
	r, ok := b.records[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	return r, nil
}

func (b *fakeBank) Categories(_ context.Context) ([]string, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.order, nil
}

func rawQuestions(n int) []entities.RawQuestion {
	out := make([]entities.RawQuestion, n)
	for i := range out {
		out[i] = entities.RawQuestion{
			Question:        fmt.Sprintf("question %d", i+1),
			Answers:         []string{"A", "B", "C", "D"},
			CorrectResponse: []string{"b"},
		}
	}
	return out
}

// newTestBank has linux with 4 single-answer questions and "multi" whose
// only question has the answer key a,c.
func newTestBank() *fakeBank {
	return &fakeBank{
		records: map[string][]entities.RawQuestion{
			"linux": rawQuestions(4),
			"cloud": rawQuestions(2),
			"multi": {{
				Question:        "pick a and c",
				Answers:         []string{"A", "B", "C", "D"},
				CorrectResponse: []string{"a", "c"},
			}},
		},
		order: []string{"cloud", "linux", "multi"},
	}
}

// loaderFunc adapts a function to CategoryLoader.
type loaderFunc func(ctx context.Context, id string) ([]entities.Question, error)

func (f loaderFunc) LoadCategory(ctx context.Context, id string) ([]entities.Question, error) {
	return f(ctx, id)
}
