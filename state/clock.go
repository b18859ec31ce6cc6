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

package state

import "time"

// the epoch is arbitrary. timestamps are only ever compared against other
// timestamps from the same process
var epoch = time.Now()

// Now returns monotonic milliseconds since an arbitrary epoch. Successive
// calls never return a smaller value - time.Since() uses the monotonic
// clock reading and is immune to wall-clock adjustment.
func Now() uint64 {
	return uint64(time.Since(epoch).Milliseconds())
}
