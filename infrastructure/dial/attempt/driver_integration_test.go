package attempt

import (
	"context"
	"net"
	"testing"
	"time"

	"golang.org/x/net/nettest"

	"racetcp/domain/dial"
)

// TestAttempt_RealListener exercises the full create/connect pipeline against
// a real local TCP listener instead of a fake socket.Creator, so the unix/
// windows socket.Conn implementations in infrastructure/dial/socket get
// driven end to end at least once.
func TestAttempt_RealListener(t *testing.T) {
	ln, err := nettest.NewLocalListener("tcp")
	if err != nil {
		t.Skipf("no local listener available: %v", err)
	}
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			accepted <- conn
		}
	}()

	tcpAddr := ln.Addr().(*net.TCPAddr)
	family := dial.FamilyInet4
	if tcpAddr.IP.To4() == nil {
		family = dial.FamilyInet6
	}

	candidate := dial.AddrCandidate{
		Family:   family,
		SockType: dial.SockStream,
		Protocol: dial.ProtoTCP,
		Sockaddr: dial.IPSockaddr{IP: tcpAddr.IP.String(), Port: tcpAddr.Port},
	}

	driver := NewDefaultDriver()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sock, err := driver.Attempt(ctx, candidate, nil, nil)
	if err != nil {
		t.Fatalf("Attempt failed against real listener: %v", err)
	}
	defer sock.Close()

	select {
	case server := <-accepted:
		server.Close()
	case <-time.After(2 * time.Second):
		t.Fatal("listener never observed an accepted connection")
	}
}
