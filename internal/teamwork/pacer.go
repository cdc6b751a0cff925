package teamwork

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// pacer keeps billr under Teamwork's request quota. It lets maxCalls
// requests through, then blocks for pause before allowing the next batch.
type pacer struct {
	maxCalls int
	pause    time.Duration
	calls    int
	sleep    func(ctx context.Context, d time.Duration) error
	logger   *slog.Logger
}

func (p *pacer) wait(ctx context.Context) error {
	if p.maxCalls > 0 && p.calls >= p.maxCalls {
		p.logger.Info("request quota reached, pausing", "calls", p.calls, "pause", p.pause)
		if err := p.sleep(ctx, p.pause); err != nil {
			return fmt.Errorf("waiting out rate limit: %w", err)
		}
		p.calls = 0
	}
	p.calls++
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
