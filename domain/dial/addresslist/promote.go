package addresslist

import (
	"net"
	"racetcp/domain/dial"
)

// Promote parses a bare sockaddr's IP literal to determine its family and
// returns a one-element candidate list (family, SOCK_STREAM, IPPROTO_TCP, "",
// addr). IPv6 addresses get FlowInfo/ScopeID defaulted to zero when the caller
// left them unset. Returns nil when addr.IP is empty.
func Promote(addr dial.IPSockaddr) []dial.AddrCandidate {
	if addr.IP == "" {
		return nil
	}

	ip := net.ParseIP(addr.IP)
	family := dial.FamilyInet4
	if ip == nil || ip.To4() == nil {
		family = dial.FamilyInet6
	}

	return []dial.AddrCandidate{{
		Family:        family,
		SockType:      dial.SockStream,
		Protocol:      dial.ProtoTCP,
		CanonicalName: "",
		Sockaddr:      addr,
	}}
}
