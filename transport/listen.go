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

package transport

import (
	"fmt"
	"net"
	"time"

	"github.com/drazoxXD/steamdeck-Controls/curated"
)

// InvalidConfig indicates a configuration value that cannot work (a port
// outside the valid range, an unparseable scan range). It is the one error
// in this package that is not recovered by reconnecting.
const InvalidConfig = "transport: invalid configuration: %v"

// Listener accepts relay connections on the sampling side.
type Listener struct {
	lis         net.Listener
	readTimeout time.Duration
}

// Listen binds the relay port on all interfaces. readTimeout is handed to
// every accepted Conn (see NewConn).
func Listen(port int, readTimeout time.Duration) (*Listener, error) {
	if port < 1 || port > 65535 {
		return nil, curated.Errorf(InvalidConfig, fmt.Sprintf("port %d", port))
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, curated.Errorf(IoFailure, err)
	}

	return &Listener{
		lis:         lis,
		readTimeout: readTimeout,
	}, nil
}

// Accept blocks until the next incoming connection. The relay serves one
// peer at a time: the caller is expected to close any existing Conn when
// Accept() returns a new one (a new connection pre-empts the old).
func (l *Listener) Accept() (*Conn, error) {
	peer, err := l.lis.Accept()
	if err != nil {
		return nil, curated.Errorf(IoFailure, err)
	}
	return NewConn(peer, l.readTimeout), nil
}

// Close the listener. Any blocked Accept() call returns with an error.
func (l *Listener) Close() {
	_ = l.lis.Close()
}

// Addr the listener is bound to.
func (l *Listener) Addr() string {
	return l.lis.Addr().String()
}
