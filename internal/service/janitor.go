package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// IdleEvictor drops chats whose last activity is older than a cutoff.
type IdleEvictor interface {
	EvictIdle(before time.Time) int
}

// Janitor periodically evicts idle quiz chats.
type Janitor struct {
	store  IdleEvictor
	ttl    time.Duration
	spec   string
	logger *zap.Logger
	now    func() time.Time
}

func NewJanitor(store IdleEvictor, ttl time.Duration, spec string, logger *zap.Logger) *Janitor {
	return &Janitor{
		store:  store,
		ttl:    ttl,
		spec:   spec,
		logger: logger,
		now:    time.Now,
	}
}

// Start schedules the sweep and blocks until ctx is done.
func (j *Janitor) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(j.spec, func() { j.sweep() }); err != nil {
		return fmt.Errorf("add cleanup job %q: %w", j.spec, err)
	}

	c.Start()
	j.logger.Info("janitor started",
		zap.String("spec", j.spec),
		zap.Duration("idle_ttl", j.ttl),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	j.logger.Info("janitor stopped")

	return nil
}

func (j *Janitor) sweep() int {
	evicted := j.store.EvictIdle(j.now().Add(-j.ttl))
	if evicted > 0 {
		j.logger.Info("evicted idle chats", zap.Int("count", evicted))
	}
	return evicted
}
