// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrKilled is the result error of a run that ignored cancellation.
var ErrKilled = errors.New(f("run did not stop after cancellation"))

// Runner is a unit of work that stops when its context is cancelled.
type Runner interface {
	Run(ctx context.Context) error
}

// Status is the terminal state of a watched run.
type Status int

//go:generate go tool stringer -linecomment -type=Status
const (
	STATUS_HALTED    = Status(0) // halted
	STATUS_FAULTED   = Status(1) // faulted
	STATUS_CANCELLED = Status(2) // cancelled
	STATUS_KILLED    = Status(3) // killed
)

// Terminated returns true if the run was stopped by the watchdog,
// rather than by reaching its own end.
func (s Status) Terminated() bool {
	return s == STATUS_CANCELLED || s == STATUS_KILLED
}

// Result is the outcome of a watched run.
type Result struct {
	Status  Status
	Err     error         // Run error, or ErrKilled.
	Elapsed time.Duration // Wall clock time until the result was known.
}

// Watchdog bounds the wall clock time of a run. The run is given Grace
// to finish on its own; it is then cancelled and given Kill more to
// stop, after which it is abandoned. State of an abandoned run is a
// valid but unspecified snapshot.
type Watchdog struct {
	Verbose bool
	Grace   time.Duration
	Kill    time.Duration
}

// Start the run asynchronously. The result channel receives exactly
// one Result.
func (wd *Watchdog) Start(ctx context.Context, runner Runner) <-chan Result {
	results := make(chan Result, 1)
	done := make(chan error, 1)

	run_ctx, cancel := context.WithCancel(ctx)
	start := time.Now()

	go func() {
		done <- runner.Run(run_ctx)
	}()

	go func() {
		defer cancel()
		res := wd.wait(ctx, done, cancel)
		res.Elapsed = time.Since(start)
		results <- res
	}()

	return results
}

// Run the runner and wait for its result.
func (wd *Watchdog) Run(ctx context.Context, runner Runner) Result {
	return <-wd.Start(ctx, runner)
}

// wait implements the two stage wait.
func (wd *Watchdog) wait(ctx context.Context, done <-chan error, cancel context.CancelFunc) Result {
	grace := time.NewTimer(wd.Grace)
	defer grace.Stop()

	select {
	case err := <-done:
		return finished(err)
	case <-grace.C:
		if wd.Verbose {
			logrus.Warnf("watchdog: still running after %v, cancelling", wd.Grace)
		}
	case <-ctx.Done():
	}

	cancel()

	kill := time.NewTimer(wd.Kill)
	defer kill.Stop()

	select {
	case err := <-done:
		return finished(err)
	case <-kill.C:
		logrus.Errorf("watchdog: abandoning run after %v", wd.Grace+wd.Kill)
		return Result{Status: STATUS_KILLED, Err: ErrKilled}
	}
}

// finished maps a run error to a result.
func finished(err error) Result {
	switch {
	case err == nil:
		return Result{Status: STATUS_HALTED}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Result{Status: STATUS_CANCELLED, Err: err}
	default:
		return Result{Status: STATUS_FAULTED, Err: err}
	}
}
