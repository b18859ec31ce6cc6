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

package session_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/drazoxXD/steamdeck-Controls/curated"
	"github.com/drazoxXD/steamdeck-Controls/sampler"
	"github.com/drazoxXD/steamdeck-Controls/session"
	"github.com/drazoxXD/steamdeck-Controls/sink"
	"github.com/drazoxXD/steamdeck-Controls/state"
	"github.com/drazoxXD/steamdeck-Controls/test"
	"github.com/drazoxXD/steamdeck-Controls/wire"
)

// fakePad is a Physical implementation for session tests.
type fakePad struct {
	crit    sync.Mutex
	current state.ControllerState
}

func (f *fakePad) set(s state.ControllerState) {
	f.crit.Lock()
	defer f.crit.Unlock()
	f.current = s
}

func (f *fakePad) Poll() (state.ControllerState, error) {
	f.crit.Lock()
	defer f.crit.Unlock()
	return f.current, nil
}

func (f *fakePad) Devices() []state.DeviceInfo {
	return []state.DeviceInfo{{Name: "fake pad", UUID: "0", VendorID: 1, ProductID: 2, Connected: true}}
}

func (f *fakePad) Close() {
}

// wait for cond to become true. fails the test if it doesn't inside the
// deadline.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRelayEndToEnd(t *testing.T) {
	const port = 46121

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setup := session.NewSetup()
	setup.Port = port
	setup.ScanRange = "127.0.0.1"
	setup.SampleRate = 200
	setup.Heartbeat = 50 * time.Millisecond
	setup.RedialDelay = 50 * time.Millisecond

	pad := &fakePad{}
	pad.set(state.ControllerState{LeftStickX: 0.5, LeftStickY: -0.3, ButtonA: true})

	src := session.NewSource(setup, sampler.NewSampler(pad, setup.SampleRate))
	rec := sink.NewRecorder()
	snk := session.NewSink(setup, sink.NewApplier(rec))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := src.Run(ctx); err != nil {
			t.Errorf("source: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := snk.Run(ctx); err != nil {
			t.Errorf("sink: %v", err)
		}
	}()

	waitFor(t, "sink connection", func() bool {
		return snk.ConnectionState().Tag == session.Connected
	})

	// the sampled state arrives at the sink and reaches the virtual device
	waitFor(t, "relayed state", func() bool {
		s, ok := snk.LatestState()
		return ok && s.ButtonA
	})

	s, _ := snk.LatestState()
	test.Equate(t, s.LeftStickX, 0.5)
	test.Equate(t, s.LeftStickY, -0.3)

	waitFor(t, "virtual device report", func() bool {
		return rec.Report().Buttons == sink.MaskA
	})
	test.Equate(t, rec.Report().LeftStickX, 16383)

	// the controller list crossed over too
	waitFor(t, "controller list", func() bool {
		list := snk.Controllers()
		return len(list) == 1 && list[0].Name == "fake pad"
	})

	// heartbeat round-trip produces a latency measurement
	waitFor(t, "latency measurement", func() bool {
		_, ok := snk.Latency()
		return ok
	})
	if lat, _ := snk.Latency(); lat < 0 {
		t.Errorf("negative latency: %s", lat)
	}

	// a change on the pad is visible at the sink
	pad.set(state.ControllerState{RightTrigger: 1.0})
	waitFor(t, "updated state", func() bool {
		s, ok := snk.LatestState()
		return ok && !s.ButtonA && s.RightTrigger == 1.0
	})

	test.Equate(t, snk.Reconnects(), 0)

	cancel()
	wg.Wait()

	test.Equate(t, int(src.ConnectionState().Tag), int(session.Terminated))
	test.Equate(t, int(snk.ConnectionState().Tag), int(session.Terminated))
}

func TestSinkReconnect(t *testing.T) {
	const port = 46122

	// a hand-driven peer standing in for the source. the first connection it
	// accepts goes silent, tripping the sink's traffic timeout. the second
	// connection behaves
	lis, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		t.Fatal(err)
	}
	defer lis.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setup := session.NewSetup()
	setup.Port = port
	setup.ScanRange = "127.0.0.1"
	setup.Heartbeat = 40 * time.Millisecond
	setup.TimeoutFactor = 3
	setup.RedialDelay = 40 * time.Millisecond

	snk := session.NewSink(setup, sink.NewApplier(sink.NewRecorder()))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := snk.Run(ctx); err != nil {
			t.Errorf("sink: %v", err)
		}
	}()

	// first connection: accept and go silent
	first, err := lis.Accept()
	if err != nil {
		t.Fatal(err)
	}
	defer first.Close()

	waitFor(t, "first connection", func() bool {
		return snk.ConnectionState().Tag == session.Connected
	})

	// arm the second connection before the timeout trips so the sink's
	// redial is served immediately. this one behaves: it streams state and
	// answers the sink's pings
	peerCtx, peerCancel := context.WithCancel(ctx)
	defer peerCancel()
	go func() {
		second, err := lis.Accept()
		if err != nil {
			return
		}
		defer second.Close()

		go func() {
			for {
				m, err := wire.ReadMessage(second)
				if err != nil {
					if curated.Has(err, wire.Malformed) {
						continue
					}
					return
				}
				if ping, ok := m.(wire.Ping); ok {
					if err := wire.WriteMessage(second, wire.Pong{EchoedAt: ping.SentAt}); err != nil {
						return
					}
				}
			}
		}()

		for peerCtx.Err() == nil {
			s := state.ControllerState{ButtonX: true, Timestamp: state.Now()}
			if err := wire.WriteMessage(second, wire.ControllerState{State: s}); err != nil {
				return
			}
			time.Sleep(20 * time.Millisecond)
		}
	}()

	// nothing arrives on the first connection inside the traffic-timeout
	// window so the sink drops it and redials
	waitFor(t, "reconnect attempt", func() bool {
		return snk.Reconnects() == 1
	})

	waitFor(t, "second connection", func() bool {
		s, ok := snk.LatestState()
		return snk.ConnectionState().Tag == session.Connected && ok && s.ButtonX
	})

	// the silent outage registered exactly once
	test.Equate(t, snk.Reconnects(), 1)

	cancel()
	wg.Wait()
}

func TestSourceServesPeer(t *testing.T) {
	const port = 46123

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setup := session.NewSetup()
	setup.Port = port
	setup.SampleRate = 100

	pad := &fakePad{}
	pad.set(state.ControllerState{ButtonY: true})

	src := session.NewSource(setup, sampler.NewSampler(pad, setup.SampleRate))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := src.Run(ctx); err != nil {
			t.Errorf("source: %v", err)
		}
	}()

	waitFor(t, "source listening", func() bool {
		return src.ConnectionState().Tag == session.Connecting
	})

	// a hand-driven peer standing in for the sink
	peer, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		t.Fatal(err)
	}
	defer peer.Close()

	waitFor(t, "source connected", func() bool {
		return src.ConnectionState().Tag == session.Connected
	})

	if err := wire.WriteMessage(peer, wire.Ping{SentAt: 123}); err != nil {
		t.Fatal(err)
	}

	// the source announces its controllers, streams state and answers the
	// ping
	var gotList, gotState, gotPong bool
	deadline := time.Now().Add(5 * time.Second)
	for !(gotList && gotState && gotPong) {
		if time.Now().After(deadline) {
			t.Fatalf("incomplete conversation (list=%v state=%v pong=%v)", gotList, gotState, gotPong)
		}

		m, err := wire.ReadMessage(peer)
		if err != nil {
			if curated.Has(err, wire.Malformed) {
				continue
			}
			t.Fatal(err)
		}

		switch m := m.(type) {
		case wire.ControllerList:
			test.Equate(t, len(m.Controllers), 1)
			test.Equate(t, m.Controllers[0].Name, "fake pad")
			gotList = true
		case wire.ControllerState:
			test.Equate(t, m.State.ButtonY, true)
			gotState = true
		case wire.Pong:
			test.Equate(t, m.EchoedAt, uint64(123))
			gotPong = true
		}
	}

	// peer goes away. the source returns to waiting and the drop registers
	// exactly once
	peer.Close()
	waitFor(t, "source reconnecting", func() bool {
		return src.ConnectionState().Tag == session.Reconnecting
	})
	test.Equate(t, src.Reconnects(), 1)

	// a new peer is accepted
	peer2, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		t.Fatal(err)
	}
	defer peer2.Close()

	waitFor(t, "source reconnected", func() bool {
		return src.ConnectionState().Tag == session.Connected
	})

	cancel()
	wg.Wait()
}

// read frames from the peer until a controller state arrives.
func readState(t *testing.T, peer net.Conn) state.ControllerState {
	t.Helper()
	peer.SetReadDeadline(time.Now().Add(5 * time.Second))
	defer peer.SetReadDeadline(time.Time{})

	for {
		m, err := wire.ReadMessage(peer)
		if err != nil {
			if curated.Has(err, wire.Malformed) {
				continue
			}
			t.Fatalf("reading from peer: %v", err)
		}
		if s, ok := m.(wire.ControllerState); ok {
			return s.State
		}
	}
}

func TestSourcePreempt(t *testing.T) {
	const port = 46124

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setup := session.NewSetup()
	setup.Port = port
	setup.SampleRate = 100

	pad := &fakePad{}
	pad.set(state.ControllerState{ButtonB: true})

	src := session.NewSource(setup, sampler.NewSampler(pad, setup.SampleRate))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := src.Run(ctx); err != nil {
			t.Errorf("source: %v", err)
		}
	}()

	waitFor(t, "source listening", func() bool {
		return src.ConnectionState().Tag == session.Connecting
	})

	peer1, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		t.Fatal(err)
	}
	defer peer1.Close()

	waitFor(t, "first peer connected", func() bool {
		return src.ConnectionState().Tag == session.Connected
	})

	// the stream is live on the first connection
	readState(t, peer1)

	// a second peer dials in while the first is still up. it takes over the
	// stream
	peer2, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		t.Fatal(err)
	}
	defer peer2.Close()

	s := readState(t, peer2)
	test.Equate(t, s.ButtonB, true)

	// and the first connection is closed underneath the old peer
	peer1.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		_, err := wire.ReadMessage(peer1)
		if err == nil || curated.Has(err, wire.Malformed) {
			continue
		}
		if errors.Is(err, os.ErrDeadlineExceeded) {
			t.Fatal("first connection still open after pre-emption")
		}
		break
	}

	// the handover is not an outage
	test.Equate(t, src.Reconnects(), 0)
	test.Equate(t, int(src.ConnectionState().Tag), int(session.Connected))

	cancel()
	wg.Wait()
}

func TestSetupDefaults(t *testing.T) {
	setup := session.NewSetup()
	test.Equate(t, setup.Port, wire.DefaultPort)
	test.Equate(t, setup.ScanRange, "192.168.1.1-254")
	test.Equate(t, setup.SampleRate, 60)
	test.Equate(t, int64(setup.Heartbeat), int64(time.Second))
	test.Equate(t, setup.TimeoutFactor, 3)
}
