// This file is part of SteamDeck Controls.
//
// SteamDeck Controls is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// SteamDeck Controls is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with SteamDeck Controls.  If not, see <https://www.gnu.org/licenses/>.

package transport_test

import (
	"context"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/drazoxXD/steamdeck-Controls/curated"
	"github.com/drazoxXD/steamdeck-Controls/test"
	"github.com/drazoxXD/steamdeck-Controls/transport"
	"github.com/drazoxXD/steamdeck-Controls/wire"
)

// connPair returns two ends of a loopback connection. both are closed when
// the test ends.
func connPair(t *testing.T, readTimeout time.Duration) (*transport.Conn, *transport.Conn) {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer lis.Close()

	type accepted struct {
		peer net.Conn
		err  error
	}
	ch := make(chan accepted, 1)
	go func() {
		peer, err := lis.Accept()
		ch <- accepted{peer: peer, err: err}
	}()

	peer, err := net.Dial("tcp", lis.Addr().String())
	if err != nil {
		t.Fatal(err)
	}

	a := <-ch
	if a.err != nil {
		t.Fatal(a.err)
	}

	ca := transport.NewConn(peer, readTimeout)
	cb := transport.NewConn(a.peer, readTimeout)
	t.Cleanup(func() {
		ca.Close()
		cb.Close()
	})

	return ca, cb
}

func TestConnSendReceive(t *testing.T) {
	ca, cb := connPair(t, 0)

	err := ca.Send(wire.Ping{SentAt: 42})
	test.ExpectedSuccess(t, err)

	m, err := cb.Receive()
	test.ExpectedSuccess(t, err)

	ping, ok := m.(wire.Ping)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, ping.SentAt, uint64(42))
}

func TestConnNotConnected(t *testing.T) {
	ca, _ := connPair(t, 0)

	ca.Close()
	ca.Close() // closing twice is fine

	err := ca.Send(wire.Ping{SentAt: 1})
	test.ExpectedFailure(t, err)
	if !curated.Is(err, transport.NotConnected) {
		t.Errorf("expected NotConnected error, got: %v", err)
	}

	_, err = ca.Receive()
	test.ExpectedFailure(t, err)
	if !curated.Is(err, transport.NotConnected) {
		t.Errorf("expected NotConnected error, got: %v", err)
	}
}

func TestConnPeerGone(t *testing.T) {
	ca, cb := connPair(t, 0)

	cb.Close()

	// the local end is still open so the failure is an io failure, not
	// NotConnected
	_, err := ca.Receive()
	test.ExpectedFailure(t, err)
	if !curated.Has(err, transport.IoFailure) {
		t.Errorf("expected IoFailure error, got: %v", err)
	}
}

func TestConnReceiveTimeout(t *testing.T) {
	ca, _ := connPair(t, 50*time.Millisecond)

	// nothing is ever sent so the traffic-timeout window expires
	_, err := ca.Receive()
	test.ExpectedFailure(t, err)
	if !curated.Is(err, transport.Timeout) {
		t.Errorf("expected Timeout error, got: %v", err)
	}
}

func TestListenInvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 65536} {
		_, err := transport.Listen(port, 0)
		test.ExpectedFailure(t, err)
		if !curated.Has(err, transport.InvalidConfig) {
			t.Errorf("expected InvalidConfig for port %d, got: %v", port, err)
		}
	}
}

func TestParseHostRange(t *testing.T) {
	hosts, err := transport.ParseHostRange("192.168.1.7")
	test.ExpectedSuccess(t, err)
	test.Equate(t, len(hosts), 1)
	test.Equate(t, hosts[0], "192.168.1.7")

	hosts, err = transport.ParseHostRange("192.168.1.2-254")
	test.ExpectedSuccess(t, err)
	test.Equate(t, len(hosts), 253)
	test.Equate(t, hosts[0], "192.168.1.2")
	test.Equate(t, hosts[252], "192.168.1.254")

	hosts, err = transport.ParseHostRange("10.0.0.5-5")
	test.ExpectedSuccess(t, err)
	test.Equate(t, len(hosts), 1)
	test.Equate(t, hosts[0], "10.0.0.5")
}

func TestParseHostRangeInvalid(t *testing.T) {
	for _, s := range []string{
		"",
		"not a host",
		"192.168.1",
		"192.168.1.254-2",
		"192.168.1.2-999",
		"192.168.1.a-b",
	} {
		_, err := transport.ParseHostRange(s)
		test.ExpectedFailure(t, err)
		if !curated.Has(err, transport.InvalidConfig) {
			t.Errorf("expected InvalidConfig for %q, got: %v", s, err)
		}
	}
}

func TestDiscovery(t *testing.T) {
	// a listener on one loopback address; the scan covers several. only the
	// listening host should win
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer lis.Close()

	go func() {
		for {
			peer, err := lis.Accept()
			if err != nil {
				return
			}
			defer peer.Close()
		}
	}()

	_, portStr, _ := net.SplitHostPort(lis.Addr().String())
	port, _ := strconv.Atoi(portStr)

	disc := transport.Discovery{
		// only 127.0.0.1 is listening. the others refuse immediately on
		// loopback so the scan stays fast
		Hosts: []string{"127.0.0.2", "127.0.0.3", "127.0.0.1", "127.0.0.4"},
		Port:  port,
	}

	conn, err := disc.Run(context.Background())
	test.ExpectedSuccess(t, err)
	defer conn.Close()

	if !strings.HasPrefix(conn.RemoteAddr(), "127.0.0.1:") {
		t.Errorf("discovery connected to %s, wanted 127.0.0.1", conn.RemoteAddr())
	}
}

func TestDiscoveryNoPeer(t *testing.T) {
	// a port nothing listens on. loopback refusals are immediate
	disc := transport.Discovery{
		Hosts:          []string{"127.0.0.2", "127.0.0.3"},
		Port:           wire.DefaultPort + 1,
		ConnectTimeout: 100 * time.Millisecond,
	}

	_, err := disc.Run(context.Background())
	test.ExpectedFailure(t, err)
	if !curated.Is(err, transport.NoPeerFound) {
		t.Errorf("expected NoPeerFound error, got: %v", err)
	}
}

func TestDiscoveryInvalidConfig(t *testing.T) {
	_, err := transport.Discovery{}.Run(context.Background())
	test.ExpectedFailure(t, err)
	if !curated.Has(err, transport.InvalidConfig) {
		t.Errorf("expected InvalidConfig error, got: %v", err)
	}

	_, err = transport.Discovery{Hosts: []string{"127.0.0.1"}, Port: 0}.Run(context.Background())
	test.ExpectedFailure(t, err)
	if !curated.Has(err, transport.InvalidConfig) {
		t.Errorf("expected InvalidConfig error, got: %v", err)
	}
}
