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

// Package sink drives the virtual controller from received state.
//
// The virtual-device driver itself is a black box behind the Device
// interface: it accepts a Report shaped like a standard Xbox-360-class
// controller (two sticks, two triggers, a 16-bit button mask) and exposes
// it to the host operating system. The Recorder implementation stands in
// where no driver is present; it simply remembers the report so the debug
// console can show it.
//
// The Applier converts each state.ControllerState into a Report 1:1. The
// conversion is a pure function of the state, so applying the same state
// twice produces the same report both times.
package sink
