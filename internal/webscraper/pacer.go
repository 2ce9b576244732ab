package webscraper

import (
	"context"
	"time"
)

// Pacer is the politeness policy applied after every request of a crawl.
type Pacer interface {
	Pause(ctx context.Context) error
}

// FixedDelay pauses for the same duration after every request.
type FixedDelay struct {
	Delay time.Duration
}

// Pause blocks for the delay or until ctx is done, whichever comes first.
func (p FixedDelay) Pause(ctx context.Context) error {
	if p.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
