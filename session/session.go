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
	"sync/atomic"
	"time"

	"github.com/drazoxXD/steamdeck-Controls/state"
)

// Session is the bookkeeping shared by both roles: the connection state,
// the most recent controller snapshot, the peer's controller list and the
// measured round-trip latency.
//
// All four are published through atomics with the session goroutines as
// the only writers. Readers (the debug console, tests) get immutable
// snapshots and can poll as often as they like without affecting the
// relay.
type Session struct {
	connState   atomic.Value // ConnectionState
	latest      atomic.Value // state.ControllerState
	hasLatest   atomic.Bool
	controllers atomic.Value // []state.DeviceInfo

	// milliseconds. negative means no measurement yet
	latency atomic.Int64

	// number of Connected -> Reconnecting transitions. incremented on that
	// edge only, so one network outage is one increment no matter how many
	// retry attempts follow
	reconnects atomic.Int32
}

func (s *Session) init() {
	s.connState.Store(ConnectionState{Tag: Disconnected})
	s.controllers.Store([]state.DeviceInfo{})
	s.latency.Store(-1)
}

// ConnectionState returns the session's current connection phase.
func (s *Session) ConnectionState() ConnectionState {
	return s.connState.Load().(ConnectionState)
}

// LatestState returns the most recent controller snapshot seen by the
// session (sampled locally for a source, received for a sink). The second
// return value is false if no snapshot has been seen yet.
func (s *Session) LatestState() (state.ControllerState, bool) {
	if !s.hasLatest.Load() {
		return state.ControllerState{}, false
	}
	return s.latest.Load().(state.ControllerState), true
}

// Controllers returns the list of physical controllers attached to the
// sampling side.
func (s *Session) Controllers() []state.DeviceInfo {
	return s.controllers.Load().([]state.DeviceInfo)
}

// Latency returns the most recently measured round-trip latency. The
// second return value is false if no measurement has been made yet.
func (s *Session) Latency() (time.Duration, bool) {
	ms := s.latency.Load()
	if ms < 0 {
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}

// Reconnects returns the number of times the session has fallen from
// Connected to Reconnecting.
func (s *Session) Reconnects() int {
	return int(s.reconnects.Load())
}

func (s *Session) setConnState(cs ConnectionState) {
	prev := s.ConnectionState()
	if prev.Tag == cs.Tag && cs.Tag != Connected {
		// refresh of the same phase (eg. the attempt count while
		// reconnecting). not a transition
		s.connState.Store(cs)
		return
	}
	if prev.Tag == Connected && cs.Tag == Reconnecting {
		s.reconnects.Add(1)
	}
	s.connState.Store(cs)
}

func (s *Session) publishLatest(snap state.ControllerState) {
	s.latest.Store(snap)
	s.hasLatest.Store(true)
}

func (s *Session) publishControllers(list []state.DeviceInfo) {
	if list == nil {
		list = []state.DeviceInfo{}
	}
	s.controllers.Store(list)
}

// echoedAt is from our own monotonic clock, echoed back by the peer.
func (s *Session) recordLatency(echoedAt uint64) {
	now := state.Now()
	if now < echoedAt {
		// a pong for a ping we never sent. ignore
		return
	}
	s.latency.Store(int64(now - echoedAt))
}
