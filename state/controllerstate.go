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

// ControllerState is a snapshot of one controller's buttons, sticks and
// triggers at a point in time.
//
// Stick axes are in the range [-1.0, 1.0] and triggers in the range
// [0.0, 1.0]. Timestamp is monotonic milliseconds (see Now() in this
// package) and is strictly non-decreasing across consecutive samples from
// the same device.
//
// The JSON field names are the wire names used by the codec in the wire
// package.
type ControllerState struct {
	LeftStickX  float32 `json:"left_stick_x"`
	LeftStickY  float32 `json:"left_stick_y"`
	RightStickX float32 `json:"right_stick_x"`
	RightStickY float32 `json:"right_stick_y"`

	LeftTrigger  float32 `json:"left_trigger"`
	RightTrigger float32 `json:"right_trigger"`

	DPadUp    bool `json:"dpad_up"`
	DPadDown  bool `json:"dpad_down"`
	DPadLeft  bool `json:"dpad_left"`
	DPadRight bool `json:"dpad_right"`

	ButtonA     bool `json:"button_a"`
	ButtonB     bool `json:"button_b"`
	ButtonX     bool `json:"button_x"`
	ButtonY     bool `json:"button_y"`
	ButtonLB    bool `json:"button_lb"`
	ButtonRB    bool `json:"button_rb"`
	ButtonBack  bool `json:"button_back"`
	ButtonStart bool `json:"button_start"`
	ButtonGuide bool `json:"button_guide"`
	ButtonL3    bool `json:"button_l3"`
	ButtonR3    bool `json:"button_r3"`

	Timestamp uint64 `json:"timestamp"`
}

// NewControllerState is the preferred method of initialisation for the
// ControllerState type. Every axis and trigger value in the argument is
// clamped to its valid range. Clamping is total - any float, including the
// non-finite values, resolves to a value inside the range.
func NewControllerState(s ControllerState) ControllerState {
	s.LeftStickX = clampAxis(s.LeftStickX)
	s.LeftStickY = clampAxis(s.LeftStickY)
	s.RightStickX = clampAxis(s.RightStickX)
	s.RightStickY = clampAxis(s.RightStickY)
	s.LeftTrigger = clampTrigger(s.LeftTrigger)
	s.RightTrigger = clampTrigger(s.RightTrigger)
	return s
}

func clampAxis(v float32) float32 {
	// NaN fails every comparison so resolves to the neutral position
	if v >= -1.0 && v <= 1.0 {
		return v
	}
	if v > 1.0 {
		return 1.0
	}
	if v < -1.0 {
		return -1.0
	}
	return 0.0
}

func clampTrigger(v float32) float32 {
	if v >= 0.0 && v <= 1.0 {
		return v
	}
	if v > 1.0 {
		return 1.0
	}
	return 0.0
}

// Pressed returns whether the named button is currently pressed.
func (s ControllerState) Pressed(b Button) bool {
	switch b {
	case A:
		return s.ButtonA
	case B:
		return s.ButtonB
	case X:
		return s.ButtonX
	case Y:
		return s.ButtonY
	case LB:
		return s.ButtonLB
	case RB:
		return s.ButtonRB
	case Back:
		return s.ButtonBack
	case Start:
		return s.ButtonStart
	case Guide:
		return s.ButtonGuide
	case L3:
		return s.ButtonL3
	case R3:
		return s.ButtonR3
	case DPadUp:
		return s.DPadUp
	case DPadDown:
		return s.DPadDown
	case DPadLeft:
		return s.DPadLeft
	case DPadRight:
		return s.DPadRight
	}
	return false
}

// Press sets the named button. Used by the sampler during construction of a
// snapshot, before the ControllerState is published.
func (s *ControllerState) Press(b Button, down bool) {
	switch b {
	case A:
		s.ButtonA = down
	case B:
		s.ButtonB = down
	case X:
		s.ButtonX = down
	case Y:
		s.ButtonY = down
	case LB:
		s.ButtonLB = down
	case RB:
		s.ButtonRB = down
	case Back:
		s.ButtonBack = down
	case Start:
		s.ButtonStart = down
	case Guide:
		s.ButtonGuide = down
	case L3:
		s.ButtonL3 = down
	case R3:
		s.ButtonR3 = down
	case DPadUp:
		s.DPadUp = down
	case DPadDown:
		s.DPadDown = down
	case DPadLeft:
		s.DPadLeft = down
	case DPadRight:
		s.DPadRight = down
	}
}

// EqualInput compares two snapshots ignoring the Timestamp field. Useful
// when deciding whether anything the user can feel has actually changed.
func (s ControllerState) EqualInput(o ControllerState) bool {
	s.Timestamp = 0
	o.Timestamp = 0
	return s == o
}
