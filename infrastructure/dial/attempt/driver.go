// Package attempt implements AttemptDriver: the create-bind-connect pipeline
// for one candidate, with guaranteed socket disposal on every non-success exit
// path.
package attempt

import (
	"context"
	"errors"
	"syscall"

	applicationdial "racetcp/application/dial"
	"racetcp/domain/dial"
	"racetcp/infrastructure/dial/socket"
)

// DefaultDriver is the production AttemptDriver. It creates sockets with its
// socket.Creator, or with the application-level SocketFactory when one is
// passed to Attempt.
type DefaultDriver struct {
	creator socket.Creator
}

func NewDefaultDriver() *DefaultDriver {
	return &DefaultDriver{creator: socket.DefaultCreator}
}

// NewDefaultDriverWithCreator is exposed for tests that need to substitute a
// fake socket.Creator without going through the public SocketFactory hook.
func NewDefaultDriverWithCreator(creator socket.Creator) *DefaultDriver {
	return &DefaultDriver{creator: creator}
}

func (d *DefaultDriver) Attempt(
	ctx context.Context,
	candidate dial.AddrCandidate,
	local []dial.LocalAddrCandidate,
	factory applicationdial.SocketFactory,
) (applicationdial.Socket, error) {
	create := d.creator.Create
	if factory != nil {
		create = func(c dial.AddrCandidate) (socket.Conn, error) {
			sock, err := factory(ctx, c)
			if err != nil {
				return nil, err
			}
			conn, ok := sock.(socket.Conn)
			if !ok {
				return nil, dial.NewInvalidArgumentError("socket factory did not return a bindable/connectable socket")
			}
			return conn, nil
		}
	}
	return d.attempt(ctx, candidate, local, create)
}

// attempt runs the create-bind-connect pipeline against whatever create
// produces, whether that's the driver's own socket.Creator or a
// caller-supplied SocketFactory: only socket creation is substitutable, bind
// and connect always run the same way afterwards.
func (d *DefaultDriver) attempt(
	ctx context.Context,
	candidate dial.AddrCandidate,
	local []dial.LocalAddrCandidate,
	create func(dial.AddrCandidate) (socket.Conn, error),
) (result applicationdial.Socket, err error) {
	conn, createErr := create(candidate)
	if createErr != nil {
		return nil, dial.NewOSError("socket", "", createErr)
	}

	closeOnFailure := true
	defer func() {
		if !closeOnFailure {
			return
		}
		if closeErr := conn.Close(); closeErr != nil {
			// The close error supersedes whatever caused the attempt to fail:
			// it is the last thing that happened and the caller needs to know
			// the socket might still be lingering.
			err = closeErr
		}
	}()

	if len(local) > 0 {
		if bindErr := bindLocal(conn, candidate.Family, local); bindErr != nil {
			return nil, bindErr
		}
	}

	if connectErr := conn.Connect(ctx, candidate.Sockaddr); connectErr != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var errno syscall.Errno
		if errors.As(connectErr, &errno) {
			return nil, dial.NewOSError("connect", candidate.Sockaddr.String(), connectErr)
		}
		// The connect syscall itself never returned an errno; the failure came
		// from the readiness wait around it (the runtime poller), not from the
		// kernel's verdict on the three-way handshake.
		return nil, dial.NewEventLoopError(connectErr)
	}

	closeOnFailure = false
	return conn, nil
}

// bindLocal tries every local candidate whose family matches the outbound
// family, in order, until one bind succeeds. It returns the most recent bind
// error if every matching candidate failed, or NoMatchingLocalAddressError if
// none of them even shared the family.
func bindLocal(conn socket.Conn, family dial.Family, local []dial.LocalAddrCandidate) error {
	var lastErr error
	matched := false

	for _, candidate := range local {
		if candidate.Family != family {
			continue
		}
		matched = true

		if err := conn.Bind(candidate.Sockaddr); err != nil {
			lastErr = dial.NewBindError(candidate.Sockaddr.String(), err)
			continue
		}
		return nil
	}

	if !matched {
		return dial.NewNoMatchingLocalAddressError(family)
	}
	return lastErr
}
