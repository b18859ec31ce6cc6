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

package wire

import (
	"fmt"

	"github.com/drazoxXD/steamdeck-Controls/state"
)

// DefaultPort is the TCP port used by the relay protocol. Note that the
// WebSocket variant of this project uses port 8080; the two protocols are
// not interoperable.
const DefaultPort = 12345

// Version of the relay protocol.
const Version = 1

// Message is one unit of the relay protocol. It is a closed variant type:
// the only implementations are ControllerList, ControllerState, Ping and
// Pong, all in this package.
type Message interface {
	// wireTag returns the value of the "type" discriminator for the
	// variant. unexported so the variant set stays closed
	wireTag() string
}

// ControllerList announces the physical controllers attached to the
// sampling side. Sent once when a connection is established and again
// whenever a controller is plugged or unplugged.
type ControllerList struct {
	Controllers []state.DeviceInfo
}

// ControllerState carries one snapshot of controller input.
type ControllerState struct {
	State state.ControllerState
}

// Ping is the liveness probe. SentAt is the sender's monotonic millisecond
// clock at the moment of sending and is opaque to the receiver.
type Ping struct {
	SentAt uint64
}

// Pong answers a Ping. EchoedAt carries the SentAt value of the Ping being
// answered, allowing the original sender to compute the round-trip time
// against its own clock.
type Pong struct {
	EchoedAt uint64
}

// the "type" discriminator values. these are frozen - changing one is a
// protocol break
const (
	tagControllerList  = "controller_list"
	tagControllerState = "controller_state"
	tagPing            = "ping"
	tagPong            = "pong"
)

func (m ControllerList) wireTag() string {
	return tagControllerList
}

func (m ControllerState) wireTag() string {
	return tagControllerState
}

func (m Ping) wireTag() string {
	return tagPing
}

func (m Pong) wireTag() string {
	return tagPong
}

func (m ControllerList) String() string {
	return fmt.Sprintf("controller list (%d controllers)", len(m.Controllers))
}

func (m ControllerState) String() string {
	return fmt.Sprintf("controller state (t=%d)", m.State.Timestamp)
}

func (m Ping) String() string {
	return fmt.Sprintf("ping (t=%d)", m.SentAt)
}

func (m Pong) String() string {
	return fmt.Sprintf("pong (t=%d)", m.EchoedAt)
}
