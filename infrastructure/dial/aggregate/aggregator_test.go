package aggregate

import (
	"errors"
	"strings"
	"syscall"
	"testing"

	"racetcp/domain/dial"
)

func TestAggregate_Empty(t *testing.T) {
	a := NewDefaultAggregator()
	if err := a.Aggregate(nil, false); err != nil {
		t.Fatalf("expected nil for empty input, got %v", err)
	}
}

func TestAggregate_SingleErrorReraisedVerbatim(t *testing.T) {
	a := NewDefaultAggregator()
	want := errors.New("err1")
	got := a.Aggregate([]error{want}, false)
	if got != want {
		t.Fatalf("expected verbatim error, got %v", got)
	}
}

func TestAggregate_AllErrors_WrapsInGroupedError(t *testing.T) {
	a := NewDefaultAggregator()
	errs := []error{errors.New("a"), errors.New("b")}
	got := a.Aggregate(errs, true)
	var grouped *GroupedError
	if !errors.As(got, &grouped) {
		t.Fatalf("expected *GroupedError, got %T", got)
	}
	if len(grouped.Errors()) != 2 {
		t.Fatalf("expected 2 wrapped errors, got %d", len(grouped.Errors()))
	}
}

func TestAggregate_IdenticalErrnoReraisesFirstWithCode(t *testing.T) {
	a := NewDefaultAggregator()
	e1 := dial.NewOSError("connect", "1.2.3.4:80", syscall.ECONNREFUSED)
	e2 := dial.NewOSError("connect", "5.6.7.8:80", syscall.ECONNREFUSED)
	e3 := dial.NewOSError("connect", "9.9.9.9:80", syscall.ECONNREFUSED)

	got := a.Aggregate([]error{e1, e2, e3}, false)
	if got != e1 {
		t.Fatalf("expected first error re-raised verbatim, got %v", got)
	}
	var osErr *dial.OSError
	if !errors.As(got, &osErr) || osErr.Errno != syscall.ECONNREFUSED {
		t.Fatalf("expected errno preserved, got %v", got)
	}
}

func TestAggregate_DistinctErrnosSynthesizeWithoutCode(t *testing.T) {
	a := NewDefaultAggregator()
	e1 := dial.NewOSError("connect", "1.2.3.4:80", syscall.Errno(1))
	e2 := dial.NewOSError("connect", "5.6.7.8:80", syscall.Errno(2))
	e3 := dial.NewOSError("connect", "9.9.9.9:80", syscall.Errno(3))

	got := a.Aggregate([]error{e1, e2, e3}, false)
	if !strings.HasPrefix(got.Error(), "Multiple exceptions: ") {
		t.Fatalf("expected synthesized message, got %q", got.Error())
	}
	var osErr *dial.OSError
	if errors.As(got, &osErr) {
		t.Fatalf("expected no code on heterogeneous synthesis, got errno %v", osErr.Errno)
	}
}
