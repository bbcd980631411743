// Package race implements StaggeredRacer: the §4.3 scheduling state machine
// that starts attempts one at a time, staggered by a wall-clock delay, and
// returns the first successful socket while draining every other attempt.
package race

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	applicationdial "racetcp/application/dial"
)

// StaggeredRacer is the default Racer. It is stateless between calls: all
// per-race bookkeeping lives on the stack of Race itself.
type StaggeredRacer struct{}

func NewStaggeredRacer() *StaggeredRacer {
	return &StaggeredRacer{}
}

type attemptResult struct {
	index int
	sock  applicationdial.Socket
	err   error
}

// Race runs factories with staggered starts and returns the winning socket,
// its index, and the terminal error of every other attempt that was actually
// started, in start order. A non-nil final error means the race itself was
// cancelled (via ctx) rather than that every attempt failed; "every attempt
// failed" is reported as (nil, -1, errs, nil).
func (r *StaggeredRacer) Race(ctx context.Context, factories []applicationdial.AttemptFactory, delay time.Duration) (applicationdial.Socket, int, []error, error) {
	n := len(factories)
	if n == 0 {
		return nil, -1, nil, nil
	}

	raceCtx, cancelAll := context.WithCancel(ctx)
	defer cancelAll()

	results := make(chan attemptResult, n)
	kick := make(chan struct{}, 1)

	var g errgroup.Group
	launch := func(i int) {
		g.Go(func() error {
			sock, err := factories[i](raceCtx)
			results <- attemptResult{index: i, sock: sock, err: err}
			return nil
		})
	}

	var timer *time.Timer
	armTimer := func(started int) {
		if delay <= 0 || started >= n {
			return
		}
		timer = time.NewTimer(delay)
	}
	stopTimer := func() {
		if timer == nil {
			return
		}
		timer.Stop()
		timer = nil
	}
	timerC := func() <-chan time.Time {
		if timer == nil {
			return nil
		}
		return timer.C
	}

	started := 1
	launch(0)
	armTimer(started)

	errs := make([]error, n)
	winnerIndex := -1
	var winnerSock applicationdial.Socket
	completed := 0

	requestKick := func() {
		select {
		case kick <- struct{}{}:
		default:
		}
	}

	for completed < started || (winnerIndex == -1 && started < n) {
		select {
		case <-ctx.Done():
			cancelAll()
			stopTimer()
			if winnerSock != nil {
				_ = winnerSock.Close()
			}
			for completed < started {
				res := <-results
				completed++
				if res.err == nil && res.sock != nil {
					_ = res.sock.Close()
				}
			}
			_ = g.Wait()
			return nil, -1, nil, ctx.Err()

		case res := <-results:
			completed++
			switch {
			case res.err == nil && winnerIndex == -1:
				winnerIndex = res.index
				winnerSock = res.sock
				cancelAll()
				stopTimer()
			case res.err == nil:
				// A second success arrived after a winner was already
				// chosen; it was racing the cancellation, not the other
				// attempts. Dispose of it like any other loser.
				if res.sock != nil {
					_ = res.sock.Close()
				}
				errs[res.index] = context.Canceled
			default:
				errs[res.index] = res.err
				// Only the attempt whose stagger window is currently open may
				// kick the next launch early; an earlier attempt failing late
				// must not pull a later attempt forward of its own schedule.
				if winnerIndex == -1 && started < n && res.index == started-1 {
					requestKick()
				}
			}

		case <-timerC():
			if winnerIndex == -1 && started < n {
				// A kick still buffered from the previous attempt's failure
				// belongs to the window this timer just closed.
				select {
				case <-kick:
				default:
				}
				launch(started)
				started++
				stopTimer()
				armTimer(started)
			}

		case <-kick:
			if winnerIndex == -1 && started < n {
				stopTimer()
				launch(started)
				started++
				armTimer(started)
			}
		}
	}

	_ = g.Wait()
	return winnerSock, winnerIndex, errs[:started], nil
}
