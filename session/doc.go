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

// Package session orchestrates the relay.
//
// A Source session (the device with the physical controller) drains
// sampler snapshots into the transport and answers the peer's heartbeat.
// A Sink session (the device with the virtual controller) discovers the
// source on the local network, drains received snapshots into the applier
// and owns the heartbeat, measuring round-trip latency from the answering
// Pong.
//
// The session is the sole owner of the ConnectionState value. Transport
// events (connection established, send/receive failure, traffic timeout)
// are the only things that move it. Read-only consumers such as the debug
// console observe ConnectionState, the most recent controller snapshot and
// the measured latency through the Session methods; all three are
// immutable snapshots behind atomics, published by exactly one writer.
//
// A stalled network write never stalls sampling: snapshots travel on a
// capacity-one latest-wins channel, so when the transport falls behind the
// session simply skips to the newest snapshot (bounded staleness, not a
// growing queue).
package session
