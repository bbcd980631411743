// Package dial declares the contracts the connection-racing engine is built
// from: a Socket, the factory that creates one, the per-candidate attempt
// driver, the racer, the orchestrator, and the error aggregator. Nothing here
// does I/O; infrastructure/dial provides the concrete implementations.
package dial

import (
	"context"
	"net"
	"time"

	"racetcp/application"
	"racetcp/domain/dial"
)

// Socket is the connected, non-blocking resource an AttemptDriver hands off to
// its caller on success. It is a plain net.Conn; the alias exists so the
// contracts in this package read in terms of the domain rather than the
// standard library.
type Socket = net.Conn

// SocketFactory overrides default socket creation. Its errors are treated
// exactly like a creation error from the default path. When nil, the
// AttemptDriver creates the socket itself.
type SocketFactory func(ctx context.Context, candidate dial.AddrCandidate) (Socket, error)

// AttemptDriver realizes a single candidate: create, optionally bind, connect,
// and transfer ownership of the socket to the caller on success. On any other
// exit path it is responsible for closing the socket it created.
type AttemptDriver interface {
	Attempt(ctx context.Context, candidate dial.AddrCandidate, local []dial.LocalAddrCandidate, factory SocketFactory) (Socket, error)
}

// AttemptFactory is one entry in the ordered sequence a Racer races: a thunk
// that, when invoked, starts realizing exactly one candidate.
type AttemptFactory func(ctx context.Context) (Socket, error)

// AttemptObserver is notified as StartConnection moves a candidate through
// its lifecycle. err is nil until the attempt reaches a terminal state.
// Optional; a caller with no use for live progress (anything but the demo
// CLI's TUI) leaves Options.Observer nil.
type AttemptObserver func(candidate dial.AddrCandidate, state dial.AttemptState, err error)

// Racer runs a finite, ordered sequence of attempt factories with staggered
// starts, per §4.3. It returns the winning socket and its index, or no winner
// and the per-attempt terminal errors in start order.
type Racer interface {
	Race(ctx context.Context, factories []AttemptFactory, delay time.Duration) (Socket, int, []error, error)
}

// Options configures StartConnection; see SPEC_FULL.md §6 for the effect of
// each field.
type Options struct {
	LocalAddrInfos     []dial.LocalAddrCandidate
	HappyEyeballsDelay *time.Duration
	Interleave         *int
	AllErrors          bool
	SocketFactory      SocketFactory
	Logger             application.Logger
	Observer           AttemptObserver
}

// Orchestrator is the public entry point: interleave, pick sequential vs.
// racing mode, and collapse failures into one surfaced error.
type Orchestrator interface {
	StartConnection(ctx context.Context, addrInfos []dial.AddrCandidate, opts Options) (Socket, error)
}

// Aggregator collapses a flat, ordered list of per-attempt errors into the
// single error StartConnection raises, per §4.5.
type Aggregator interface {
	Aggregate(errs []error, allErrors bool) error
}
