//go:build !windows

package socket

import (
	"context"
	"fmt"
	"net"

	mdsocket "github.com/mdlayher/socket"
	"golang.org/x/sys/unix"

	"racetcp/domain/dial"
)

type unixCreator struct{}

func newPlatformCreator() Creator { return unixCreator{} }

func (unixCreator) Create(candidate dial.AddrCandidate) (Conn, error) {
	family := unix.AF_INET
	if candidate.Family == dial.FamilyInet6 {
		family = unix.AF_INET6
	}

	c, err := mdsocket.New(family, unix.SOCK_STREAM|unix.SOCK_NONBLOCK, unix.IPPROTO_TCP, "racetcp", nil)
	if err != nil {
		return nil, err
	}

	if serr := c.SetsockoptInt(unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); serr != nil {
		_ = c.Close()
		return nil, serr
	}

	return &unixConn{Conn: c, family: family}, nil
}

// unixConn adapts *mdsocket.Conn, which already satisfies net.Conn, with the
// Bind/Connect steps AttemptDriver drives explicitly.
type unixConn struct {
	*mdsocket.Conn
	family int
}

func (c *unixConn) Bind(local dial.IPSockaddr) error {
	sa, err := toSockaddr(c.family, local)
	if err != nil {
		return err
	}
	if c.family == unix.AF_INET {
		// Let the kernel defer ephemeral port assignment to connect time, so a
		// bind to a specific local IP doesn't pin down a source port.
		_ = c.SetsockoptInt(unix.IPPROTO_IP, unix.IP_BIND_ADDRESS_NO_PORT, 1)
	}
	return c.Conn.Bind(sa)
}

func (c *unixConn) Connect(ctx context.Context, remote dial.IPSockaddr) error {
	sa, err := toSockaddr(c.family, remote)
	if err != nil {
		return err
	}
	return c.Conn.Connect(ctx, sa)
}

func toSockaddr(family int, addr dial.IPSockaddr) (unix.Sockaddr, error) {
	ip := net.ParseIP(addr.IP)
	if ip == nil {
		return nil, fmt.Errorf("invalid IP literal %q", addr.IP)
	}
	if family == unix.AF_INET {
		v4 := ip.To4()
		if v4 == nil {
			return nil, fmt.Errorf("%q is not an IPv4 literal", addr.IP)
		}
		var b [4]byte
		copy(b[:], v4)
		return &unix.SockaddrInet4{Port: addr.Port, Addr: b}, nil
	}

	v6 := ip.To16()
	var b [16]byte
	copy(b[:], v6)
	return &unix.SockaddrInet6{Port: addr.Port, ZoneId: addr.ScopeID, Addr: b}, nil
}
