// Package socket provides the non-blocking socket primitive AttemptDriver
// assembles by hand: create, optionally bind, then connect. The concrete
// implementation is platform-specific (see socket_unix.go / socket_windows.go);
// this file only declares the shared contract.
package socket

import (
	"context"
	"net"

	"racetcp/domain/dial"
)

// Conn is a socket mid-assembly. Before Connect succeeds it is not yet a valid
// net.Conn for Read/Write purposes; callers must not invoke those until
// Connect returns nil.
type Conn interface {
	net.Conn
	Bind(local dial.IPSockaddr) error
	Connect(ctx context.Context, remote dial.IPSockaddr) error
}

// Creator creates a non-blocking stream socket matching candidate's
// family/type/protocol. The unix creator sets SO_REUSEADDR, and its Conn sets
// IP_BIND_ADDRESS_NO_PORT in Bind for IPv4; the Windows creator sets no
// socket options.
type Creator interface {
	Create(candidate dial.AddrCandidate) (Conn, error)
}

// DefaultCreator is the Creator AttemptDriver uses when no application-level
// SocketFactory override is supplied.
var DefaultCreator Creator = newPlatformCreator()
