// Package aggregate collapses the flat, ordered list of per-attempt errors a
// failed race or sequential fallthrough produced into the single error
// StartConnection raises, per §4.5.
package aggregate

import (
	"errors"
	"fmt"
	"strings"
	"syscall"

	"racetcp/domain/dial"
)

// GroupedError is the "all_errors" carrier: every per-attempt error, in
// order, none collapsed.
type GroupedError struct {
	errs []error
}

func NewGroupedError(errs []error) *GroupedError {
	return &GroupedError{errs: append([]error(nil), errs...)}
}

func (g *GroupedError) Errors() []error { return g.errs }

func (g *GroupedError) Error() string {
	parts := make([]string, len(g.errs))
	for i, e := range g.errs {
		parts[i] = e.Error()
	}
	return fmt.Sprintf("%d connection attempts failed: %s", len(g.errs), strings.Join(parts, "; "))
}

func (g *GroupedError) Unwrap() []error { return g.errs }

// DefaultAggregator implements the reducer from §4.5.
type DefaultAggregator struct{}

func NewDefaultAggregator() *DefaultAggregator {
	return &DefaultAggregator{}
}

func (a *DefaultAggregator) Aggregate(errs []error, allErrors bool) error {
	if len(errs) == 0 {
		return nil
	}

	if allErrors {
		return NewGroupedError(errs)
	}

	if len(errs) == 1 {
		return errs[0]
	}

	if first, ok := allIdentical(errs); ok {
		return first
	}

	return synthesize(errs)
}

// allIdentical reports whether every error stringifies the same (ignoring the
// per-attempt address an OSError carries, since that legitimately differs
// between candidates that failed identically) and, where an errno is present,
// agrees on it too.
func allIdentical(errs []error) (error, bool) {
	first := errs[0]
	firstMsg := compareKey(first)
	firstErrno, firstHasErrno := errnoOf(first)

	for _, e := range errs[1:] {
		if compareKey(e) != firstMsg {
			return nil, false
		}
		errno, hasErrno := errnoOf(e)
		if hasErrno != firstHasErrno || (hasErrno && errno != firstErrno) {
			return nil, false
		}
	}
	return first, true
}

// compareKey is the message allIdentical compares. An OSError's Addr is
// attempt-specific, so two attempts that failed "the same way" against
// different addresses compare by the underlying cause instead of the full
// formatted string.
func compareKey(err error) string {
	var osErr *dial.OSError
	if errors.As(err, &osErr) {
		return osErr.Op + ": " + osErr.Unwrap().Error()
	}
	return err.Error()
}

func errnoOf(err error) (syscall.Errno, bool) {
	var osErr *dial.OSError
	if errors.As(err, &osErr) && osErr.Errno != 0 {
		return osErr.Errno, true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno, true
	}
	return 0, false
}

// synthesize builds the "Multiple exceptions: ..." error. The result never
// carries an errno, whatever codes the inputs had.
func synthesize(errs []error) error {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return &multiError{msg: fmt.Sprintf("Multiple exceptions: %s", strings.Join(parts, ", ")), errs: errs}
}

// multiError is the synthetic error raised when attempts failed for
// heterogeneous reasons. It never carries a numeric code: §4.5/§7 both call
// for a code only when all inputs agree, and agreement is handled by
// allIdentical before synthesize is ever reached.
type multiError struct {
	msg  string
	errs []error
}

func (m *multiError) Error() string { return m.msg }
