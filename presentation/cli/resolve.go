package cli

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"racetcp/domain/dial"
)

// ResolveTarget turns a "host:port" string into its AddrCandidate list. DNS
// resolution is outside the engine's scope — StartConnection only ever sees
// already-resolved candidates — so this lives in the demo CLI, not in
// infrastructure/dial.
func ResolveTarget(ctx context.Context, hostport string) ([]dial.AddrCandidate, error) {
	host, portStr, err := net.SplitHostPort(hostport)
	if err != nil {
		return nil, dial.NewInvalidArgumentError(fmt.Sprintf("invalid target %q: %s", hostport, err))
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, dial.NewInvalidArgumentError(fmt.Sprintf("invalid port in %q: %s", hostport, err))
	}

	ips, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, dial.NewOSError("resolve", hostport, err)
	}
	if len(ips) == 0 {
		return nil, dial.NewInvalidArgumentError(fmt.Sprintf("no addresses found for %q", hostport))
	}

	candidates := make([]dial.AddrCandidate, 0, len(ips))
	for _, ip := range ips {
		family := dial.FamilyInet4
		if ip.IP.To4() == nil {
			family = dial.FamilyInet6
		}
		var scope uint32
		if ip.Zone != "" {
			if iface, err := net.InterfaceByName(ip.Zone); err == nil {
				scope = uint32(iface.Index)
			}
		}
		candidates = append(candidates, dial.AddrCandidate{
			Family:        family,
			SockType:      dial.SockStream,
			Protocol:      dial.ProtoTCP,
			CanonicalName: host,
			Sockaddr:      dial.IPSockaddr{IP: ip.IP.String(), Port: port, ScopeID: scope},
		})
	}
	return candidates, nil
}
