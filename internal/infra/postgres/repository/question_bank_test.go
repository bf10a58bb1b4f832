package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aliskhannn/lfca-quiz-bot/internal/domain/entities"
	filebank "github.com/aliskhannn/lfca-quiz-bot/internal/repository"
)

// fakeRows serves fixed rows. Unused pgx.Rows methods panic through the nil embed.
type fakeRows struct {
	pgx.Rows
	data   [][]any
	pos    int
	err    error
	closed bool
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d targets for %d columns", len(dest), len(row))
	}
	for i, d := range dest {
		switch d := d.(type) {
		case *string:
			*d = row[i].(string)
		case *[]string:
			*d = row[i].([]string)
		default:
			return fmt.Errorf("scan: unsupported target %T", d)
		}
	}
	return nil
}

func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) Close()     { r.closed = true }

type fakeDB struct {
	rows     *fakeRows
	queryErr error
	queries  []string
	args     [][]any
}

func (db *fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("unexpected Exec")
}

func (db *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	db.queries = append(db.queries, sql)
	db.args = append(db.args, args)
	if db.queryErr != nil {
		return nil, db.queryErr
	}
	return db.rows, nil
}

func (db *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("unexpected QueryRow")
}

type fakeBatchResults struct {
	pgx.BatchResults
	err error
}

func (b fakeBatchResults) Close() error { return b.err }

type fakeTx struct {
	pgx.Tx
	execs    []string
	execArgs [][]any
	batch    *pgx.Batch
	execErr  error
	batchErr error
}

func (tx *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	tx.execs = append(tx.execs, sql)
	tx.execArgs = append(tx.execArgs, args)
	return pgconn.CommandTag{}, tx.execErr
}

func (tx *fakeTx) SendBatch(_ context.Context, b *pgx.Batch) pgx.BatchResults {
	tx.batch = b
	return fakeBatchResults{err: tx.batchErr}
}

type fakeTxRunner struct {
	tx    *fakeTx
	calls int
}

func (r *fakeTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	r.calls++
	return fn(ctx, r.tx)
}

func TestGetRecordsScansRows(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{data: [][]any{
		{"What is ls?", []string{"list", "move"}, "", []string{"a"}},
		{"Pick two", []string{"x", "y", "z"}, "because", []string{"a", "c"}},
	}}}
	repo := NewQuestionBankRepository(db, nil)

	records, err := repo.GetRecords(context.Background(), "linux")
	if err != nil {
		t.Fatalf("GetRecords: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[1].Explanation != "because" || !slices.Equal(records[1].CorrectResponse, []string{"a", "c"}) {
		t.Fatalf("second record = %+v", records[1])
	}
	if got := db.args[0]; len(got) != 1 || got[0] != "linux" {
		t.Fatalf("query args = %v, want [linux]", got)
	}
	if !db.rows.closed {
		t.Fatal("rows not closed")
	}
}

func TestGetRecordsWithoutRowsIsNotFound(t *testing.T) {
	repo := NewQuestionBankRepository(&fakeDB{rows: &fakeRows{}}, nil)

	_, err := repo.GetRecords(context.Background(), "missing")
	if !errors.Is(err, filebank.ErrCategoryNotFound) {
		t.Fatalf("err = %v, want ErrCategoryNotFound", err)
	}
}

func TestGetRecordsWrapsErrors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name string
		db   *fakeDB
	}{
		{"query", &fakeDB{queryErr: boom}},
		{"iterate", &fakeDB{rows: &fakeRows{err: boom}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQuestionBankRepository(tt.db, nil).GetRecords(context.Background(), "linux")
			if !errors.Is(err, boom) {
				t.Fatalf("err = %v, want wrapped boom", err)
			}
			if errors.Is(err, filebank.ErrCategoryNotFound) {
				t.Fatal("database error reported as not found")
			}
		})
	}
}

func TestCategoriesCollectsIDs(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{data: [][]any{{"cloud"}, {"linux"}}}}

	ids, err := NewQuestionBankRepository(db, nil).Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if !slices.Equal(ids, []string{"cloud", "linux"}) {
		t.Fatalf("ids = %v", ids)
	}
	if !strings.Contains(db.queries[0], "DISTINCT category") {
		t.Fatalf("query = %q", db.queries[0])
	}
}

func TestReplaceCategoryDeletesThenInserts(t *testing.T) {
	runner := &fakeTxRunner{tx: &fakeTx{}}
	repo := NewQuestionBankRepository(&fakeDB{}, runner)

	records := []entities.RawQuestion{
		{Question: "q1", Answers: []string{"a1", "a2"}, CorrectResponse: []string{"b"}},
		{Question: "q2", Answers: []string{"b1", "b2"}, CorrectResponse: []string{"a"}},
	}

	if err := repo.ReplaceCategory(context.Background(), "cloud", records); err != nil {
		t.Fatalf("ReplaceCategory: %v", err)
	}

	if runner.calls != 1 {
		t.Fatalf("transactions = %d, want 1", runner.calls)
	}
	tx := runner.tx
	if len(tx.execs) != 1 || !strings.Contains(tx.execs[0], "DELETE FROM question_records") {
		t.Fatalf("execs = %v", tx.execs)
	}
	if tx.execArgs[0][0] != "cloud" {
		t.Fatalf("delete args = %v", tx.execArgs[0])
	}
	if tx.batch == nil || tx.batch.Len() != 2 {
		t.Fatalf("batch = %+v, want 2 inserts", tx.batch)
	}
	second := tx.batch.QueuedQueries[1].Arguments
	if second[0] != "cloud" || second[1] != 1 || second[2] != "q2" {
		t.Fatalf("second insert args = %v", second)
	}
}

func TestReplaceCategoryReturnsTxErrors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name string
		tx   *fakeTx
	}{
		{"delete", &fakeTx{execErr: boom}},
		{"insert", &fakeTx{batchErr: boom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewQuestionBankRepository(&fakeDB{}, &fakeTxRunner{tx: tt.tx})

			err := repo.ReplaceCategory(context.Background(), "cloud", []entities.RawQuestion{{Question: "q"}})
			if !errors.Is(err, boom) {
				t.Fatalf("err = %v, want wrapped boom", err)
			}
		})
	}
}
