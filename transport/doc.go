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

// Package transport owns the TCP leg of the relay: listening for a peer on
// the sampling side, finding a peer by scanning the local network on the
// receiving side, and the framed message stream between them once
// connected.
//
// A Conn is one logical bidirectional stream speaking the wire package's
// framing. Send() on a closed Conn fails immediately with the NotConnected
// error rather than blocking. Receive() blocks until the next message, a
// stream error, or the traffic-timeout window elapsing with nothing
// arriving (the Timeout error).
//
// The transport reports errors; it never decides what they mean. Mapping
// errors to connection-state transitions (Reconnecting and so on) is the
// session package's job.
package transport
