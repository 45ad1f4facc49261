package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Sweepable is the part of the ledger the sweeper drives.
type Sweepable interface {
	SweepExpirations() int
	PurgeOld() int
}

// RunPurger removes finished order runs past the retention window.
type RunPurger interface {
	PurgeFinished(olderThan time.Time) int
}

// Sweeper runs the ledger's expiry sweep and retention purge on independent tickers.
type Sweeper struct {
	Ledger         Sweepable
	Runs           RunPurger
	ExpiryInterval time.Duration
	PurgeInterval  time.Duration
	Retention      time.Duration
}

func NewSweeper(ledger Sweepable, runs RunPurger, expiryInterval, purgeInterval, retention time.Duration) *Sweeper {
	return &Sweeper{
		Ledger:         ledger,
		Runs:           runs,
		ExpiryInterval: expiryInterval,
		PurgeInterval:  purgeInterval,
		Retention:      retention,
	}
}

// Start launches the sweep loops. They stop when ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	go s.loop(ctx, s.ExpiryInterval, "expiry", func() {
		s.Ledger.SweepExpirations()
	})
	go s.loop(ctx, s.PurgeInterval, "purge", func() {
		s.Ledger.PurgeOld()
		if s.Runs != nil {
			if n := s.Runs.PurgeFinished(time.Now().Add(-s.Retention)); n > 0 {
				logrus.Infof("purged %d finished order runs", n)
			}
		}
	})
}

func (s *Sweeper) loop(ctx context.Context, interval time.Duration, name string, sweep func()) {
	if interval <= 0 {
		logrus.Warnf("%s sweep disabled: interval %v", name, interval)
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sweep()
		case <-ctx.Done():
			logrus.Infof("%s sweep stopped", name)
			return
		}
	}
}
