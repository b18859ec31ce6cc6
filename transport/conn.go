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
	"net"
	"sync/atomic"
	"time"

	"github.com/drazoxXD/steamdeck-Controls/curated"
	"github.com/drazoxXD/steamdeck-Controls/wire"
)

// Error patterns raised by this package.
const (
	// Send() was called on a Conn that is no longer connected. Returned
	// immediately, never after blocking.
	NotConnected = "transport: not connected"

	// the underlying stream failed. the connection is unusable
	IoFailure = "transport: io failure: %v"

	// nothing arrived inside the traffic-timeout window, or a send could
	// not complete in time. the peer is presumed gone
	Timeout = "transport: timeout"
)

// writes that cannot complete in this time indicate a peer that has
// stopped draining its socket. distinct from the read timeout which is
// policy and belongs to the session (via NewConn)
const writeTimeout = 5 * time.Second

// Conn is one logical bidirectional message stream to a peer.
//
// Receive() is meant to be called from a single reading goroutine and
// Send() from a single writing goroutine; the two sides are independent.
// Close() may be called from anywhere, at any time, more than once.
type Conn struct {
	peer   net.Conn
	closed atomic.Bool

	// zero means Receive() blocks indefinitely
	readTimeout time.Duration
}

// NewConn wraps an established network connection. readTimeout is the
// traffic-timeout window: if nothing at all arrives for this long,
// Receive() returns the Timeout error. A zero readTimeout disables the
// window.
func NewConn(peer net.Conn, readTimeout time.Duration) *Conn {
	return &Conn{
		peer:        peer,
		readTimeout: readTimeout,
	}
}

// Send one message to the peer. Fails immediately with NotConnected if the
// connection has been closed.
func (c *Conn) Send(m wire.Message) error {
	if c.closed.Load() {
		return curated.Errorf(NotConnected)
	}

	_ = c.peer.SetWriteDeadline(time.Now().Add(writeTimeout))

	if err := wire.WriteMessage(c.peer, m); err != nil {
		if curated.IsAny(err) {
			// encoding failure. the stream is untouched
			return err
		}
		return c.classify(err)
	}

	return nil
}

// Receive blocks until the next message from the peer or an error.
//
// A wire.Malformed error means one message was dropped but the stream is
// still good; callers should simply call Receive() again. Any other error
// means the connection is done.
func (c *Conn) Receive() (wire.Message, error) {
	if c.closed.Load() {
		return nil, curated.Errorf(NotConnected)
	}

	if c.readTimeout > 0 {
		_ = c.peer.SetReadDeadline(time.Now().Add(c.readTimeout))
	}

	m, err := wire.ReadMessage(c.peer)
	if err != nil {
		if curated.Has(err, wire.Malformed) {
			return nil, err
		}
		return nil, c.classify(err)
	}

	return m, nil
}

// Close the connection. Safe to call concurrently with Send()/Receive()
// and safe to call more than once. Blocked Receive()/Send() calls return
// with NotConnected or IoFailure soon after.
func (c *Conn) Close() {
	if c.closed.Swap(true) {
		return
	}
	_ = c.peer.Close()
}

// RemoteAddr of the peer.
func (c *Conn) RemoteAddr() string {
	return c.peer.RemoteAddr().String()
}

// classify a raw stream error into the package's error taxonomy.
func (c *Conn) classify(err error) error {
	if c.closed.Load() {
		return curated.Errorf(NotConnected)
	}
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return curated.Errorf(Timeout)
	}
	return curated.Errorf(IoFailure, err)
}
