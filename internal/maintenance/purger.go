// Package maintenance runs the periodic housekeeping jobs of the API
// process. Currently that is a single job: expiring stale password-reset
// tokens so a leaked reset link stops working after a day.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// resetTokenStore is the subset of the user repository the purger needs.
type resetTokenStore interface {
	PurgeExpiredResetTokens(ctx context.Context, cutoff time.Time) (int, error)
}

const (
	// resetTokenMaxAge matches the expiry promised in the reset email.
	resetTokenMaxAge = 24 * time.Hour

	purgeSchedule = "@hourly"
	purgeTimeout  = 30 * time.Second
)

type Purger struct {
	users  resetTokenStore
	logger *slog.Logger
	cron   *cron.Cron
}

func NewPurger(users resetTokenStore, logger *slog.Logger) *Purger {
	return &Purger{
		users:  users,
		logger: logger.With("component", "maintenance"),
		cron:   cron.New(),
	}
}

// Start schedules the purge job. It returns immediately; the job runs on
// the cron's own goroutine until Stop is called.
func (p *Purger) Start() error {
	if _, err := p.cron.AddFunc(purgeSchedule, p.purgeResetTokens); err != nil {
		return err
	}
	p.cron.Start()
	p.logger.Info("maintenance started", "schedule", purgeSchedule)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (p *Purger) Stop() {
	<-p.cron.Stop().Done()
	p.logger.Info("maintenance stopped")
}

func (p *Purger) purgeResetTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	n, err := p.users.PurgeExpiredResetTokens(ctx, time.Now().Add(-resetTokenMaxAge))
	if err != nil {
		p.logger.Error("purge reset tokens", "error", err)
		return
	}
	if n > 0 {
		p.logger.Info("purged expired reset tokens", "count", n)
	}
}
