package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/lfca-quiz-bot/internal/config"
	"github.com/aliskhannn/lfca-quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/lfca-quiz-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/lfca-quiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/lfca-quiz-bot/internal/logger"
	"github.com/aliskhannn/lfca-quiz-bot/internal/metrics"
	"github.com/aliskhannn/lfca-quiz-bot/internal/repository"
	"github.com/aliskhannn/lfca-quiz-bot/internal/service"
	"github.com/aliskhannn/lfca-quiz-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
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

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("bot stopped with error", zap.Error(err))
	}

	lg.Info("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	bank, closeBank, err := newQuestionBank(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBank()

	questionService := service.NewQuestionService(bank)

	categories, err := questionService.ListCategories(ctx)
	if err != nil {
		return err
	}
	lg.Info("question bank ready",
		zap.String("source", cfg.QuestionSource),
		zap.Int("categories", len(categories)),
	)

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return fmt.Errorf("init telegram bot: %w", err)
	}
	bot.Debug = cfg.Env != "production"
	lg.Info("authorized on telegram", zap.String("bot", bot.Self.UserName))

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "categories", Description: "Choose a quiz category"},
		{Command: "quiz", Description: "Start a category: /quiz linux 3"},
		{Command: "goto", Description: "Jump to a question: /goto 5"},
		{Command: "first", Description: "First question"},
		{Command: "prev", Description: "Previous question"},
		{Command: "next", Description: "Next question"},
		{Command: "last", Description: "Last question"},
		{Command: "link", Description: "Share a link to this question"},
		{Command: "stop", Description: "End the current quiz"},
		{Command: "help", Description: "Help"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	chats := storage.NewChatStorage()
	m := metrics.New()

	handler := telegram.NewHandler(bot, lg, questionService, chats, bot.Self.UserName, m.Observe)
	janitor := service.NewJanitor(chats, cfg.Session.IdleTTL, cfg.Session.CleanupSpec, lg)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return handler.Run(ctx)
	})

	g.Go(func() error {
		return janitor.Start(ctx)
	})

	if cfg.Metrics.Addr != "" {
		srv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           metricsMux(m),
			ReadHeaderTimeout: 5 * time.Second,
		}

		g.Go(func() error {
			lg.Info("metrics server started", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	lg.Info("shutdown signal received", zap.Int("active_chats", chats.Len()))
	return nil
}

// newQuestionBank opens the configured question source.
func newQuestionBank(ctx context.Context, cfg *config.Config) (service.QuestionBank, func(), error) {
	if cfg.QuestionSource != config.SourcePostgres {
		bank, err := repository.NewQuestionBank(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("load question bank: %w", err)
		}
		return bank, func() {}, nil
	}

	dsn, err := cfg.DB.DSN()
	if err != nil {
		return nil, nil, err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	return pgrepo.NewQuestionBankRepository(pool, postgres.NewTransactor(pool)), pool.Close, nil
}

func metricsMux(m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return mux
}
