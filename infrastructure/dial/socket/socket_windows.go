//go:build windows

package socket

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"racetcp/domain/dial"
)

type windowsCreator struct{}

func newPlatformCreator() Creator { return windowsCreator{} }

// Create defers real socket creation to Connect: on Windows this package
// leans on net.Dialer rather than raw socket syscalls, matching how the rest
// of this codebase's Windows support reaches for higher-level OS APIs instead
// of direct fd manipulation.
func (windowsCreator) Create(dial.AddrCandidate) (Conn, error) {
	return &windowsConn{}, nil
}

type windowsConn struct {
	net.Conn
	dialer net.Dialer
}

// Bind only stages the local address on the dialer; net.Dialer has no
// separate bind step of its own, so a real bind failure (address in use, no
// such address) only surfaces later, from DialContext inside Connect. Bind
// itself can still reject a local address that isn't parseable at all.
func (c *windowsConn) Bind(local dial.IPSockaddr) error {
	ip := net.ParseIP(local.IP)
	if ip == nil {
		return fmt.Errorf("invalid local address %q", local.IP)
	}
	c.dialer.LocalAddr = &net.TCPAddr{IP: ip, Port: local.Port}
	return nil
}

func (c *windowsConn) Connect(ctx context.Context, remote dial.IPSockaddr) error {
	conn, err := c.dialer.DialContext(ctx, "tcp", net.JoinHostPort(remote.IP, strconv.Itoa(remote.Port)))
	if err != nil {
		return err
	}
	c.Conn = conn
	return nil
}
