// Package dial holds the data model for the connection-racing engine: resolved
// address candidates, attempt bookkeeping, and the error taxonomy attempts raise.
package dial

import "fmt"

// Family is a socket address family, mirroring syscall.AF_INET / syscall.AF_INET6.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyInet4
	FamilyInet6
)

func (f Family) String() string {
	switch f {
	case FamilyInet4:
		return "AF_INET"
	case FamilyInet6:
		return "AF_INET6"
	default:
		return "AF_UNSPEC"
	}
}

// SockType is a socket type, mirroring syscall.SOCK_STREAM.
type SockType int

const SockStream SockType = 1

// Protocol is an IP protocol number, mirroring syscall.IPPROTO_TCP.
type Protocol int

const ProtoTCP Protocol = 6

// IPSockaddr is the (ip, port[, flowinfo, scopeid]) tuple a candidate connects to.
// FlowInfo and ScopeID are only meaningful when the address is IPv6; they are zero
// otherwise.
type IPSockaddr struct {
	IP       string
	Port     int
	FlowInfo uint32
	ScopeID  uint32
}

func (s IPSockaddr) String() string {
	if s.ScopeID != 0 {
		return fmt.Sprintf("%s%%%d:%d", s.IP, s.ScopeID, s.Port)
	}
	return fmt.Sprintf("%s:%d", s.IP, s.Port)
}

// AddrCandidate is a resolved connection target: family, socket shape, an opaque
// canonical name, and the sockaddr to connect to. Immutable; shared by reference.
type AddrCandidate struct {
	Family        Family
	SockType      SockType
	Protocol      Protocol
	CanonicalName string
	Sockaddr      IPSockaddr
}

// LocalAddrCandidate has the same shape as AddrCandidate but is only ever used to
// pick a local bind address; a bind is attempted only when its Family matches the
// outbound candidate's Family.
type LocalAddrCandidate = AddrCandidate
