package util

import (
	"context"
	"time"
)

// PollOpts bounds Poll. Wait doubles from Initial up to Max between checks.
// Delay is slept before the first check and counts against Timeout.
type PollOpts struct {
	Initial time.Duration
	Max     time.Duration
	Timeout time.Duration
	Delay   time.Duration
}

var DefaultPoll = PollOpts{
	Initial: 100 * time.Millisecond,
	Max:     2 * time.Second,
	Timeout: 5 * time.Second,
}

// Poll calls cond until it reports true, returns an error, ctx is done or
// opts.Timeout elapses. It returns whether cond was satisfied; running out
// of time is not an error.
func Poll(ctx context.Context, opts PollOpts, cond func() (bool, error)) (bool, error) {
	if opts.Initial <= 0 {
		opts.Initial = DefaultPoll.Initial
	}
	if opts.Max < opts.Initial {
		opts.Max = opts.Initial
	}
	deadline := time.Now().Add(opts.Timeout)
	wait := opts.Initial

	if d := min(opts.Delay, opts.Timeout); d > 0 {
		if err := sleep(ctx, d); err != nil {
			return false, err
		}
	}

	for {
		ok, err := cond()
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}

		left := time.Until(deadline)
		if left <= 0 {
			return false, nil
		}
		if err := sleep(ctx, min(wait, left)); err != nil {
			return false, err
		}

		wait *= 2
		if wait > opts.Max {
			wait = opts.Max
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
