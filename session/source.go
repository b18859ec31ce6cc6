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

package session

import (
	"context"
	"time"

	"github.com/drazoxXD/steamdeck-Controls/curated"
	"github.com/drazoxXD/steamdeck-Controls/logger"
	"github.com/drazoxXD/steamdeck-Controls/sampler"
	"github.com/drazoxXD/steamdeck-Controls/transport"
	"github.com/drazoxXD/steamdeck-Controls/wire"
)

// Source is the session role on the device with the physical controller.
// It listens for a peer, streams sampled snapshots to it and answers the
// peer's heartbeat.
type Source struct {
	Session

	setup Setup
	smp   *sampler.Sampler
}

// NewSource is the preferred method of initialisation for the Source type.
func NewSource(setup Setup, smp *sampler.Sampler) *Source {
	src := &Source{
		setup: setup,
		smp:   smp,
	}
	src.init()
	return src
}

// Run the source session until the context is cancelled. Blocking. The
// sampler is driven by this function; the caller should not call
// sampler.Run() itself.
//
// The returned error is nil on a clean shutdown. A non-nil error is
// terminal (the port could not be bound, or the configuration is invalid).
func (src *Source) Run(ctx context.Context) error {
	lis, err := transport.Listen(src.setup.Port, src.setup.trafficTimeout())
	if err != nil {
		return curated.Errorf("session: %v", err)
	}
	defer lis.Close()

	// cancellation unblocks Accept() by closing the listener
	go func() {
		<-ctx.Done()
		lis.Close()
	}()

	go src.smp.Run(ctx)

	accepted := make(chan *transport.Conn)
	go func() {
		defer close(accepted)
		for {
			conn, err := lis.Accept()
			if err != nil {
				if ctx.Err() == nil {
					logger.Logf(logger.Allow, "session", "accept: %v", err)
				}
				return
			}
			select {
			case accepted <- conn:
			case <-ctx.Done():
				conn.Close()
				return
			}
		}
	}()

	src.setConnState(ConnectionState{Tag: Connecting})
	logger.Logf(logger.Allow, "session", "listening for peer on %s", lis.Addr())

	var conn *transport.Conn
	var connDone chan bool
	var replies chan wire.Message

	for {
		if conn == nil {
			// no active peer. keep the published snapshot fresh for the
			// local debug view while we wait
			select {
			case <-ctx.Done():
				src.terminate()
				return nil

			case snap := <-src.smp.Snapshots():
				src.publishLatest(snap)

			case list := <-src.smp.Devices():
				src.publishControllers(list)

			case c, ok := <-accepted:
				if !ok {
					src.terminate()
					if ctx.Err() == nil {
						return curated.Errorf("session: listener failed")
					}
					return nil
				}
				conn = c
				replies, connDone = src.attach(conn)
			}
			continue
		}

		select {
		case <-ctx.Done():
			conn.Close()
			src.terminate()
			return nil

		case c, ok := <-accepted:
			if !ok {
				conn.Close()
				src.terminate()
				if ctx.Err() == nil {
					return curated.Errorf("session: listener failed")
				}
				return nil
			}
			// a new incoming connection pre-empts the existing one
			logger.Logf(logger.Allow, "session", "peer pre-empted by %s", c.RemoteAddr())
			conn.Close()
			conn = c
			replies, connDone = src.attach(conn)

		case <-connDone:
			conn.Close()
			conn = nil
			src.setConnState(ConnectionState{Tag: Reconnecting, Attempt: 1})
			logger.Log(logger.Allow, "session", "peer lost, waiting for reconnection")

		case snap := <-src.smp.Snapshots():
			src.publishLatest(snap)
			if err := conn.Send(wire.ControllerState{State: snap}); err != nil {
				conn = src.drop(conn, err)
			}

		case list := <-src.smp.Devices():
			src.publishControllers(list)
			if err := conn.Send(wire.ControllerList{Controllers: list}); err != nil {
				conn = src.drop(conn, err)
			}

		case m := <-replies:
			if err := conn.Send(m); err != nil {
				conn = src.drop(conn, err)
			}
		}
	}
}

// attach a newly accepted connection: start its reader, mark the session
// connected and announce the attached controllers to the peer.
func (src *Source) attach(conn *transport.Conn) (chan wire.Message, chan bool) {
	replies := make(chan wire.Message, 4)
	done := make(chan bool)
	go src.read(conn, replies, done)

	src.setConnState(ConnectionState{Tag: Connected, Since: time.Now()})
	logger.Logf(logger.Allow, "session", "peer connected (%s)", conn.RemoteAddr())

	if err := conn.Send(wire.ControllerList{Controllers: src.smp.DeviceList()}); err != nil {
		// the reader will notice the dead connection
		logger.Logf(logger.Allow, "session", "controller list: %v", err)
	}

	return replies, done
}

// drop the connection after a send failure. returns nil for assignment to
// the caller's conn variable.
func (src *Source) drop(conn *transport.Conn, err error) *transport.Conn {
	logger.Logf(logger.Allow, "session", "send: %v", err)
	conn.Close()
	src.setConnState(ConnectionState{Tag: Reconnecting, Attempt: 1})
	logger.Log(logger.Allow, "session", "peer lost, waiting for reconnection")
	return nil
}

// read loop for one connection. answers pings and discards what the
// source has no use for. ends (closing done) when the connection does.
func (src *Source) read(conn *transport.Conn, replies chan<- wire.Message, done chan bool) {
	defer close(done)

	for {
		m, err := conn.Receive()
		if err != nil {
			if curated.Has(err, wire.Malformed) {
				logger.Logf(logger.Allow, "session", "dropped message: %v", err)
				continue
			}
			if curated.Is(err, transport.Timeout) {
				logger.Log(logger.Allow, "session", "no traffic from peer")
			} else if !curated.Is(err, transport.NotConnected) {
				logger.Logf(logger.Allow, "session", "receive: %v", err)
			}
			return
		}

		switch m := m.(type) {
		case wire.Ping:
			select {
			case replies <- wire.Pong{EchoedAt: m.SentAt}:
			default:
				logger.Log(logger.Allow, "session", "dropped pong reply")
			}

		case wire.Pong:
			src.recordLatency(m.EchoedAt)

		case wire.ControllerState:
			// the source samples its own state
			logger.Log(logger.Allow, "session", "unexpected controller state from peer")

		case wire.ControllerList:
			logger.Log(logger.Allow, "session", "unexpected controller list from peer")
		}
	}
}

func (src *Source) terminate() {
	src.setConnState(ConnectionState{Tag: Terminated})
	logger.Log(logger.Allow, "session", "terminated")
}
