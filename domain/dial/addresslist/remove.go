package addresslist

import (
	"net"
	"racetcp/domain/dial"
)

// Remove deletes every entry of *addrs whose Sockaddr equals addr. It first
// tries raw equality; if nothing matched, it re-parses both sides as canonical
// IP literals and retries, so "::1" and "0:0:0:0:0:0:0:1" are treated as the
// same address. Returns dial.ErrNotFound if still nothing matched.
func Remove(addrs *[]dial.AddrCandidate, addr dial.IPSockaddr) error {
	if removeWhere(addrs, func(s dial.IPSockaddr) bool { return s == addr }) {
		return nil
	}

	wantIP := net.ParseIP(addr.IP)
	if wantIP == nil {
		return dial.ErrNotFound
	}
	if removeWhere(addrs, func(s dial.IPSockaddr) bool {
		ip := net.ParseIP(s.IP)
		return ip != nil && ip.Equal(wantIP) && s.Port == addr.Port
	}) {
		return nil
	}

	return dial.ErrNotFound
}

func removeWhere(addrs *[]dial.AddrCandidate, match func(dial.IPSockaddr) bool) bool {
	kept := make([]dial.AddrCandidate, 0, len(*addrs))
	removedAny := false
	for _, a := range *addrs {
		if match(a.Sockaddr) {
			removedAny = true
			continue
		}
		kept = append(kept, a)
	}
	if removedAny {
		*addrs = kept
	}
	return removedAny
}
