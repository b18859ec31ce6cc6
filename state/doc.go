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

// Package state defines the canonical representation of a physical
// controller's instantaneous state, independent of how that state was
// sampled and how it travels over the network.
//
// ControllerState is a value type. It is created once per sampling tick by
// the sampler and from then on is only ever copied, never mutated. The
// NewControllerState() function is the only way axis and trigger values
// enter the system and it clamps every value to its valid range, so every
// ControllerState in flight satisfies the range invariants.
//
// The package also provides the monotonic millisecond clock used for the
// Timestamp field and for the heartbeat timestamps in the wire package.
package state
