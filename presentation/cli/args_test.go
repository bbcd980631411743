package cli

import (
	"testing"
	"time"
)

func TestParse_TargetsAndFlags(t *testing.T) {
	a, err := Parse([]string{"example.com:443", "-delay=250", "-interleave", "2", "-all-errors", "other.com:80"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Targets) != 2 || a.Targets[0] != "example.com:443" || a.Targets[1] != "other.com:80" {
		t.Fatalf("unexpected targets: %v", a.Targets)
	}
	if a.Delay == nil || *a.Delay != 250*time.Millisecond {
		t.Fatalf("unexpected delay: %v", a.Delay)
	}
	if a.Interleave == nil || *a.Interleave != 2 {
		t.Fatalf("unexpected interleave: %v", a.Interleave)
	}
	if !a.AllErrors {
		t.Fatal("expected all-errors to be set")
	}
}

func TestParse_ConfigFlag(t *testing.T) {
	a, err := Parse([]string{"-config", "/etc/racetcp/config.json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ConfigPath != "/etc/racetcp/config.json" {
		t.Fatalf("unexpected config path: %q", a.ConfigPath)
	}
}

func TestParse_UnknownFlag(t *testing.T) {
	if _, err := Parse([]string{"-bogus"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestParse_DelayMissingValue(t *testing.T) {
	if _, err := Parse([]string{"-delay"}); err == nil {
		t.Fatal("expected error for missing -delay value")
	}
}

func TestParse_NoTUI(t *testing.T) {
	a, err := Parse([]string{"-no-tui", "example.com:80"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.NoTUI {
		t.Fatal("expected NoTUI to be set")
	}
}
