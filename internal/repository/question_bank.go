package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/aliskhannn/lfca-quiz-bot/internal/domain/entities"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidRecord    = errors.New("invalid question record")
)

// QuestionBank provides read-only access to the bundled question sets.
// All category files are read and validated once, at construction.
type QuestionBank struct {
	records map[string][]entities.RawQuestion
	order   []string
}

// NewQuestionBank loads every known category file found in dir.
// Missing files are skipped; unreadable or invalid files are an error.
func NewQuestionBank(dir string) (*QuestionBank, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	bank := &QuestionBank{
		records: make(map[string][]entities.RawQuestion, len(entities.KnownCategories)),
	}

	for _, c := range entities.KnownCategories {
		path := filepath.Join(dir, c.File)

		questions, err := readCategoryFile(path, validate)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load category %s: %w", c.ID, err)
		}

		bank.records[c.ID] = questions
		bank.order = append(bank.order, c.ID)
	}

	return bank, nil
}

// GetRecords returns the raw questions of a category in file order.
func (b *QuestionBank) GetRecords(_ context.Context, categoryID string) ([]entities.RawQuestion, error) {
	records, ok := b.records[categoryID]
	if !ok {
		return nil, ErrCategoryNotFound
	}

	return records, nil
}

// Categories returns the ids of all loaded categories.
func (b *QuestionBank) Categories(_ context.Context) ([]string, error) {
	return append([]string(nil), b.order...), nil
}

func readCategoryFile(path string, validate *validator.Validate) ([]entities.RawQuestion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper entities.CategoryData
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions JSON: %w", err)
	}

	if err = validate.Struct(wrapper); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	return wrapper.Questions, nil
}
