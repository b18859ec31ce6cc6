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
	"github.com/drazoxXD/steamdeck-Controls/sink"
	"github.com/drazoxXD/steamdeck-Controls/state"
	"github.com/drazoxXD/steamdeck-Controls/transport"
	"github.com/drazoxXD/steamdeck-Controls/wire"
)

// Sink is the session role on the device with the virtual controller. It
// finds the source on the local network, drains received snapshots into
// the applier and owns the heartbeat.
type Sink struct {
	Session

	setup Setup
	app   *sink.Applier

	// hosts expanded from setup.ScanRange
	hosts []string
}

// NewSink is the preferred method of initialisation for the Sink type.
func NewSink(setup Setup, app *sink.Applier) *Sink {
	snk := &Sink{
		setup: setup,
		app:   app,
	}
	snk.init()
	return snk
}

// Run the sink session until the context is cancelled. Blocking.
//
// The returned error is nil on a clean shutdown. A non-nil error is
// terminal and means the configuration is invalid (bad port, bad scan
// range); every network failure is handled by reconnecting.
func (snk *Sink) Run(ctx context.Context) error {
	hosts, err := transport.ParseHostRange(snk.setup.ScanRange)
	if err != nil {
		return curated.Errorf("session: %v", err)
	}
	snk.hosts = hosts

	attempt := 0
	everConnected := false

	snk.setConnState(ConnectionState{Tag: Connecting})
	logger.Logf(logger.Allow, "session", "scanning %s port %d", snk.setup.ScanRange, snk.setup.Port)

	for {
		if ctx.Err() != nil {
			snk.terminate()
			return nil
		}

		disc := transport.Discovery{
			Hosts:          snk.hosts,
			Port:           snk.setup.Port,
			ConnectTimeout: snk.setup.ConnectTimeout,
			Parallel:       snk.setup.ScanParallel,
			ReadTimeout:    snk.setup.trafficTimeout(),
		}

		conn, err := disc.Run(ctx)
		if err != nil {
			if ctx.Err() != nil {
				snk.terminate()
				return nil
			}
			if curated.Is(err, transport.NoPeerFound) {
				attempt++
				if everConnected {
					snk.setConnState(ConnectionState{
						Tag:         Reconnecting,
						Attempt:     attempt,
						NextRetryAt: time.Now().Add(snk.setup.redialDelay()),
					})
				}
				logger.Logf(logger.Allow, "session", "no peer found (attempt %d)", attempt)
				if !sleep(ctx, snk.setup.redialDelay()) {
					snk.terminate()
					return nil
				}
				continue
			}
			// invalid configuration is the only other way out of a scan
			snk.terminate()
			return curated.Errorf("session: %v", err)
		}

		attempt = 0
		everConnected = true
		snk.setConnState(ConnectionState{Tag: Connected, Since: time.Now()})
		logger.Logf(logger.Allow, "session", "connected to %s", conn.RemoteAddr())

		snk.runConn(ctx, conn)
		conn.Close()

		if ctx.Err() != nil {
			snk.terminate()
			return nil
		}

		attempt++
		snk.setConnState(ConnectionState{
			Tag:         Reconnecting,
			Attempt:     attempt,
			NextRetryAt: time.Now().Add(snk.setup.redialDelay()),
		})
		if !sleep(ctx, snk.setup.redialDelay()) {
			snk.terminate()
			return nil
		}
	}
}

// runConn reads from one connection until it dies. the write side
// (heartbeat pings and pong replies) runs in its own goroutine so a slow
// write can never stall receiving.
func (snk *Sink) runConn(ctx context.Context, conn *transport.Conn) {
	done := make(chan bool)
	defer close(done)

	replies := make(chan wire.Message, 4)
	go snk.write(ctx, conn, replies, done)

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
		case wire.ControllerState:
			snk.publishLatest(m.State)
			if err := snk.app.Apply(m.State); err != nil {
				// NotReady and WriteFailure are never fatal. the next
				// snapshot is another chance
				logger.Logf(logger.Allow, "session", "apply: %v", err)
			}

		case wire.ControllerList:
			snk.publishControllers(m.Controllers)
			logger.Logf(logger.Allow, "session", "peer has %d controller(s)", len(m.Controllers))

		case wire.Ping:
			select {
			case replies <- wire.Pong{EchoedAt: m.SentAt}:
			default:
				logger.Log(logger.Allow, "session", "dropped pong reply")
			}

		case wire.Pong:
			snk.recordLatency(m.EchoedAt)
		}
	}
}

// write side of one connection: the heartbeat and any queued replies. the
// sink owns the liveness probe.
func (snk *Sink) write(ctx context.Context, conn *transport.Conn, replies <-chan wire.Message, done chan bool) {
	tick := time.NewTicker(snk.setup.heartbeat())
	defer tick.Stop()

	for {
		select {
		case <-done:
			return

		case <-ctx.Done():
			return

		case <-tick.C:
			if err := conn.Send(wire.Ping{SentAt: state.Now()}); err != nil {
				// the read side will see the dead connection through its
				// traffic timeout
				logger.Logf(logger.Allow, "session", "ping: %v", err)
				return
			}

		case m := <-replies:
			if err := conn.Send(m); err != nil {
				logger.Logf(logger.Allow, "session", "send: %v", err)
				return
			}
		}
	}
}

func (snk *Sink) terminate() {
	snk.setConnState(ConnectionState{Tag: Terminated})
	logger.Log(logger.Allow, "session", "terminated")
}

// sleep for the duration or until the context is cancelled. returns false
// on cancellation.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
