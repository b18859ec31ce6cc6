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

// Package sampler polls the physical controller at a fixed rate and emits
// state.ControllerState snapshots.
//
// The physical layer is behind the Physical interface. The production
// implementation is Gamepads, built on the SDL game controller API. Tests
// use a fake. The sampler itself only cares that Poll() returns a snapshot
// or the NoControllerAvailable condition.
//
// Snapshots are delivered on a capacity-one channel with a latest-wins
// policy: if the consumer (the session feeding the network) cannot keep up,
// older unsent snapshots are discarded in favour of the newest. Nothing in
// the relay ever benefits from stale input.
//
// The sampler always emits, even when the input is unchanged from the
// previous tick. A steady stream of identical states doubles as an
// implicit heartbeat for the receiving side.
package sampler
