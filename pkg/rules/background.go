package rules

import (
	"context"
	"time"

	"github.com/aretw0/ruleforge/pkg/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultPollInterval is the completion polling interval of LoadInBackground.
const DefaultPollInterval = 50 * time.Millisecond

// PollOptions configure LoadInBackground.
type PollOptions struct {
	// Interval between completion checks. Zero uses DefaultPollInterval.
	Interval time.Duration
	// Progress is called on the caller's goroutine between checks with the
	// time spent so far.
	Progress func(elapsed time.Duration)
}

// LoadInBackground runs Load on a worker goroutine while the calling
// goroutine polls for completion, calling opts.Progress between polls.
// The load is not cancelled once started; ctx is passed to Load unchanged.
func (l *Loader) LoadInBackground(ctx context.Context, req LoadRequest, opts PollOptions) (*domain.Ruleset, error) {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	var (
		g      errgroup.Group
		result *domain.Ruleset
		done   = make(chan struct{})
	)
	g.Go(func() error {
		defer close(done)
		rs, err := l.Load(ctx, req)
		result = rs
		return err
	})

	start := time.Now()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			if err := g.Wait(); err != nil {
				return nil, err
			}
			return result, nil
		case <-ticker.C:
			if opts.Progress != nil {
				opts.Progress(time.Since(start))
			}
		}
	}
}
