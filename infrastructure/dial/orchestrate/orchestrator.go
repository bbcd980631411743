// Package orchestrate implements the public entry point: interleave, pick
// sequential vs. racing mode, and hand the failure set to the aggregator.
package orchestrate

import (
	"context"

	"racetcp/application"
	applicationdial "racetcp/application/dial"
	"racetcp/domain/dial"
	"racetcp/domain/dial/addresslist"
	"racetcp/infrastructure/dial/aggregate"
)

const defaultInterleave = 1

// Orchestrator is the default applicationdial.Orchestrator.
type Orchestrator struct {
	driver     applicationdial.AttemptDriver
	racer      applicationdial.Racer
	aggregator applicationdial.Aggregator
}

func NewOrchestrator(driver applicationdial.AttemptDriver, racer applicationdial.Racer, aggregator applicationdial.Aggregator) *Orchestrator {
	return &Orchestrator{driver: driver, racer: racer, aggregator: aggregator}
}

// NewDefaultOrchestrator builds an Orchestrator over the given driver and
// racer with a DefaultAggregator.
func NewDefaultOrchestrator(driver applicationdial.AttemptDriver, racer applicationdial.Racer) *Orchestrator {
	return NewOrchestrator(driver, racer, aggregate.NewDefaultAggregator())
}

func (o *Orchestrator) StartConnection(ctx context.Context, addrInfos []dial.AddrCandidate, opts applicationdial.Options) (applicationdial.Socket, error) {
	if len(addrInfos) == 0 {
		return nil, dial.NewInvalidArgumentError("no address candidates provided")
	}

	logger := opts.Logger

	interleave := resolveInterleave(opts)
	if interleave > 0 {
		addrInfos = addresslist.Interleave(addrInfos, interleave)
	}

	if opts.HappyEyeballsDelay == nil || *opts.HappyEyeballsDelay <= 0 || len(addrInfos) == 1 {
		return o.runSequential(ctx, addrInfos, opts, logger)
	}

	return o.runRace(ctx, addrInfos, opts, logger)
}

func resolveInterleave(opts applicationdial.Options) int {
	if opts.Interleave != nil {
		return *opts.Interleave
	}
	if opts.HappyEyeballsDelay != nil {
		return defaultInterleave
	}
	return 0
}

func (o *Orchestrator) runSequential(ctx context.Context, addrInfos []dial.AddrCandidate, opts applicationdial.Options, logger application.Logger) (applicationdial.Socket, error) {
	var errs []error
	for _, candidate := range addrInfos {
		if logger != nil {
			logger.Printf("racetcp: attempting %s (sequential)", candidate.Sockaddr)
		}
		notify(opts.Observer, candidate, dial.Running, nil)
		sock, err := o.driver.Attempt(ctx, candidate, opts.LocalAddrInfos, opts.SocketFactory)
		if err == nil {
			notify(opts.Observer, candidate, dial.Succeeded, nil)
			return sock, nil
		}
		notify(opts.Observer, candidate, dial.Failed, err)
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	return nil, o.aggregator.Aggregate(errs, opts.AllErrors)
}

func (o *Orchestrator) runRace(ctx context.Context, addrInfos []dial.AddrCandidate, opts applicationdial.Options, logger application.Logger) (applicationdial.Socket, error) {
	factories := make([]applicationdial.AttemptFactory, len(addrInfos))
	for i, candidate := range addrInfos {
		candidate := candidate
		factories[i] = func(ctx context.Context) (applicationdial.Socket, error) {
			if logger != nil {
				logger.Printf("racetcp: racing %s", candidate.Sockaddr)
			}
			notify(opts.Observer, candidate, dial.Running, nil)
			sock, err := o.driver.Attempt(ctx, candidate, opts.LocalAddrInfos, opts.SocketFactory)
			switch {
			case err == nil:
				notify(opts.Observer, candidate, dial.Succeeded, nil)
			case ctx.Err() != nil:
				notify(opts.Observer, candidate, dial.Cancelled, err)
			default:
				notify(opts.Observer, candidate, dial.Failed, err)
			}
			return sock, err
		}
	}

	sock, winnerIndex, errs, raceErr := o.racer.Race(ctx, factories, *opts.HappyEyeballsDelay)
	if raceErr != nil {
		return nil, raceErr
	}
	if winnerIndex >= 0 {
		if logger != nil {
			logger.Printf("racetcp: %s won the race", addrInfos[winnerIndex].Sockaddr)
		}
		return sock, nil
	}

	return nil, o.aggregator.Aggregate(nonNil(errs), opts.AllErrors)
}

func notify(observer applicationdial.AttemptObserver, candidate dial.AddrCandidate, state dial.AttemptState, err error) {
	if observer != nil {
		observer(candidate, state, err)
	}
}

func nonNil(errs []error) []error {
	out := make([]error, 0, len(errs))
	for _, e := range errs {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}
