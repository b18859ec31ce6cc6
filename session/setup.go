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
	"time"

	"github.com/drazoxXD/steamdeck-Controls/wire"
)

// Setup carries every tunable of a session. It is passed by value into the
// session constructors; sessions never read configuration from anywhere
// else, which keeps them testable without touching flags or environment.
type Setup struct {
	// TCP port for both roles
	Port int

	// host range the sink scans for the source. see
	// transport.ParseHostRange() for the accepted forms
	ScanRange string

	// snapshots per second on the source side
	SampleRate int

	// heartbeat interval. the traffic-timeout window is the interval
	// multiplied by TimeoutFactor
	Heartbeat     time.Duration
	TimeoutFactor int

	// pause between reconnect attempts
	RedialDelay time.Duration

	// discovery tunables. see transport.Discovery
	ConnectTimeout time.Duration
	ScanParallel   int
}

// NewSetup returns a Setup with every field at its default.
func NewSetup() Setup {
	return Setup{
		Port:           wire.DefaultPort,
		ScanRange:      "192.168.1.1-254",
		SampleRate:     60,
		Heartbeat:      time.Second,
		TimeoutFactor:  3,
		RedialDelay:    time.Second,
		ConnectTimeout: 300 * time.Millisecond,
		ScanParallel:   8,
	}
}

// the traffic-timeout window: how long with no traffic at all before the
// peer is presumed gone.
func (st Setup) trafficTimeout() time.Duration {
	factor := st.TimeoutFactor
	if factor < 1 {
		factor = 3
	}
	heartbeat := st.Heartbeat
	if heartbeat <= 0 {
		heartbeat = time.Second
	}
	return heartbeat * time.Duration(factor)
}

func (st Setup) heartbeat() time.Duration {
	if st.Heartbeat <= 0 {
		return time.Second
	}
	return st.Heartbeat
}

func (st Setup) redialDelay() time.Duration {
	if st.RedialDelay <= 0 {
		return time.Second
	}
	return st.RedialDelay
}
