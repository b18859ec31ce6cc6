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
	"encoding/json"

	"github.com/drazoxXD/steamdeck-Controls/curated"
	"github.com/drazoxXD/steamdeck-Controls/state"
)

// Malformed is returned by Decode() and ReadMessage() when the input cannot
// be interpreted as a Message. The correct response is to drop the single
// message and carry on with the stream.
const Malformed = "wire: malformed message: %v"

// envelope is the JSON shape of every message. exactly one payload field is
// populated, according to the Type discriminator.
type envelope struct {
	Type string `json:"type"`

	Controllers []state.DeviceInfo     `json:"controllers,omitempty"`
	State       *state.ControllerState `json:"state,omitempty"`
	SentAt      *uint64                `json:"sent_at,omitempty"`
	EchoedAt    *uint64                `json:"echoed_at,omitempty"`
}

// Encode serialises a Message for the wire. Encoding a valid Message never
// fails: the payload types contain nothing encoding/json can reject except
// non-finite floats, and those cannot be constructed through
// state.NewControllerState().
func Encode(m Message) ([]byte, error) {
	env := envelope{Type: m.wireTag()}

	switch m := m.(type) {
	case ControllerList:
		// the empty list is valid and must survive the round-trip, so
		// make sure the field is non-nil
		if m.Controllers == nil {
			env.Controllers = []state.DeviceInfo{}
		} else {
			env.Controllers = m.Controllers
		}
	case ControllerState:
		s := m.State
		env.State = &s
	case Ping:
		t := m.SentAt
		env.SentAt = &t
	case Pong:
		t := m.EchoedAt
		env.EchoedAt = &t
	}

	b, err := json.Marshal(env)
	if err != nil {
		return nil, curated.Errorf("wire: encoding: %v", err)
	}

	return b, nil
}

// Decode is the inverse of Encode. It is total: any byte sequence either
// yields a Message or an error matching the Malformed pattern.
//
// Axis and trigger values pass through state.NewControllerState() so the
// range invariants hold on the receiving side no matter what the peer sent.
// For values produced by Encode() the clamp is the identity function and
// the round-trip law decode(encode(m)) == m is preserved.
func Decode(b []byte) (Message, error) {
	var env envelope

	if err := json.Unmarshal(b, &env); err != nil {
		return nil, curated.Errorf(Malformed, err)
	}

	switch env.Type {
	case tagControllerList:
		if env.Controllers == nil {
			return nil, curated.Errorf(Malformed, "controller_list without controllers field")
		}
		return ControllerList{Controllers: env.Controllers}, nil

	case tagControllerState:
		if env.State == nil {
			return nil, curated.Errorf(Malformed, "controller_state without state field")
		}
		return ControllerState{State: state.NewControllerState(*env.State)}, nil

	case tagPing:
		if env.SentAt == nil {
			return nil, curated.Errorf(Malformed, "ping without sent_at field")
		}
		return Ping{SentAt: *env.SentAt}, nil

	case tagPong:
		if env.EchoedAt == nil {
			return nil, curated.Errorf(Malformed, "pong without echoed_at field")
		}
		return Pong{EchoedAt: *env.EchoedAt}, nil
	}

	return nil, curated.Errorf(Malformed, "unknown message type")
}
