package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/lfca-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/lfca-quiz-bot/internal/infra/postgres"
	filebank "github.com/aliskhannn/lfca-quiz-bot/internal/repository"
)

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// QuestionBankRepository serves question records stored in PostgreSQL.
type QuestionBankRepository struct {
	db postgres.DBTX
	tx TxRunner
}

// NewQuestionBankRepository creates a new QuestionBankRepository.
func NewQuestionBankRepository(db postgres.DBTX, tx TxRunner) *QuestionBankRepository {
	return &QuestionBankRepository{db: db, tx: tx}
}

// GetRecords returns the records of a category ordered by position.
// A category without rows is reported as not found.
func (r *QuestionBankRepository) GetRecords(ctx context.Context, categoryID string) ([]entities.RawQuestion, error) {
	query := `
		SELECT question, answers, explanation, correct_response
		FROM question_records
		WHERE category = $1
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("query question records: %w", err)
	}
	defer rows.Close()

	var records []entities.RawQuestion
	for rows.Next() {
		var q entities.RawQuestion
		if err := rows.Scan(&q.Question, &q.Answers, &q.Explanation, &q.CorrectResponse); err != nil {
			return nil, fmt.Errorf("scan question record: %w", err)
		}
		records = append(records, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate question records: %w", err)
	}

	if len(records) == 0 {
		return nil, filebank.ErrCategoryNotFound
	}

	return records, nil
}

// Categories returns the distinct category ids present in the table.
func (r *QuestionBankRepository) Categories(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT category FROM question_records ORDER BY category`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect categories: %w", err)
	}

	return ids, nil
}

// ReplaceCategory atomically swaps the stored records of a category.
func (r *QuestionBankRepository) ReplaceCategory(ctx context.Context, categoryID string, records []entities.RawQuestion) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM question_records WHERE category = $1`, categoryID); err != nil {
			return fmt.Errorf("delete category %s: %w", categoryID, err)
		}

		batch := &pgx.Batch{}
		for i, q := range records {
			batch.Queue(`
				INSERT INTO question_records (
					category, position, question, answers, explanation, correct_response
				) VALUES ($1, $2, $3, $4, $5, $6)
			`, categoryID, i, q.Question, q.Answers, q.Explanation, q.CorrectResponse)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert category %s: %w", categoryID, err)
		}

		return nil
	})
}
