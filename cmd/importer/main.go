package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/aliskhannn/lfca-quiz-bot/internal/config"
	"github.com/aliskhannn/lfca-quiz-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/lfca-quiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/lfca-quiz-bot/internal/logger"
	"github.com/aliskhannn/lfca-quiz-bot/internal/repository"
	"github.com/aliskhannn/lfca-quiz-bot/internal/service"
)

// importer copies the bundled JSON question sets into PostgreSQL.
func main() {
	dir := flag.String("dir", "assets/data", "directory with the category JSON files")
	category := flag.String("category", "", "import only this category")
	flag.Parse()

	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg, *dir, *category); err != nil {
		lg.Fatal("import failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger, dir, only string) error {
	bank, err := repository.NewQuestionBank(dir)
	if err != nil {
		return fmt.Errorf("load question bank: %w", err)
	}

	dsn, err := cfg.DB.DSN()
	if err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	repo := pgrepo.NewQuestionBankRepository(pool, postgres.NewTransactor(pool))

	ids, err := bank.Categories(ctx)
	if err != nil {
		return err
	}
	if only != "" {
		ids = []string{only}
	}

	for _, id := range ids {
		records, err := bank.GetRecords(ctx, id)
		if err != nil {
			return fmt.Errorf("read category %s: %w", id, err)
		}

		// Refuse categories the bot could not serve.
		for i, r := range records {
			if _, err := service.TransformQuestion(r, i); err != nil {
				return fmt.Errorf("category %s: %w", id, err)
			}
		}

		if err := repo.ReplaceCategory(ctx, id, records); err != nil {
			return err
		}

		lg.Info("category imported",
			zap.String("category", id),
			zap.Int("questions", len(records)),
		)
	}

	return nil
}
