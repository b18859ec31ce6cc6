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
	"fmt"
	"time"
)

// ConnectionTag enumerates the phases of a session's connection.
type ConnectionTag int

// List of valid ConnectionTag values.
const (
	Disconnected ConnectionTag = iota
	Connecting
	Connected
	Reconnecting
	Terminated
)

func (tag ConnectionTag) String() string {
	switch tag {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Reconnecting:
		return "reconnecting"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}

// ConnectionState is an immutable snapshot of the session's connection
// phase. The fields beyond Tag are meaningful only for the tags noted.
type ConnectionState struct {
	Tag ConnectionTag

	// when the connection was established. Connected only
	Since time.Time

	// how many reconnect attempts have been made and when the next one is
	// due. Reconnecting only
	Attempt     int
	NextRetryAt time.Time
}

func (cs ConnectionState) String() string {
	switch cs.Tag {
	case Connected:
		return fmt.Sprintf("connected (since %s)", cs.Since.Format("15:04:05"))
	case Reconnecting:
		return fmt.Sprintf("reconnecting (attempt %d)", cs.Attempt)
	}
	return cs.Tag.String()
}
