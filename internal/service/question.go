package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/lfca-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/lfca-quiz-bot/internal/repository"
)

// QuestionBank is a read-only source of raw question records.
type QuestionBank interface {
	GetRecords(ctx context.Context, categoryID string) ([]entities.RawQuestion, error)
	Categories(ctx context.Context) ([]string, error)
}

type QuestionService struct {
	bank QuestionBank
}

func NewQuestionService(bank QuestionBank) *QuestionService {
	return &QuestionService{bank: bank}
}

// LoadCategory returns the questions of a category in source order.
func (s *QuestionService) LoadCategory(ctx context.Context, categoryID string) ([]entities.Question, error) {
	records, err := s.bank.GetRecords(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, categoryID)
		}
		return nil, fmt.Errorf("get records of %s: %w", categoryID, err)
	}

	questions := make([]entities.Question, 0, len(records))
	for i, r := range records {
		q, err := TransformQuestion(r, i)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", categoryID, err)
		}
		questions = append(questions, q)
	}

	return questions, nil
}

// ListCategories returns the categories available in the bank. Known
// categories come first in their canonical order.
func (s *QuestionService) ListCategories(ctx context.Context) ([]entities.Category, error) {
	ids, err := s.bank.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	available := make(map[string]bool, len(ids))
	for _, id := range ids {
		available[id] = true
	}

	categories := make([]entities.Category, 0, len(ids))
	for _, c := range entities.KnownCategories {
		if available[c.ID] {
			categories = append(categories, c)
			delete(available, c.ID)
		}
	}

	for _, id := range ids {
		if available[id] {
			categories = append(categories, entities.Category{ID: id, Title: id})
		}
	}

	return categories, nil
}
