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

// Button identifies one of the digital controls on an Xbox-360-class
// controller. The set is closed - iteration over ButtonList covers every
// control the relay carries.
type Button int

// List of valid Button values.
const (
	A Button = iota
	B
	X
	Y
	LB
	RB
	Back
	Start
	Guide
	L3
	R3
	DPadUp
	DPadDown
	DPadLeft
	DPadRight
)

// ButtonList is every valid Button value in declaration order.
var ButtonList = [...]Button{
	A, B, X, Y, LB, RB, Back, Start, Guide, L3, R3,
	DPadUp, DPadDown, DPadLeft, DPadRight,
}

func (b Button) String() string {
	switch b {
	case A:
		return "A"
	case B:
		return "B"
	case X:
		return "X"
	case Y:
		return "Y"
	case LB:
		return "LB"
	case RB:
		return "RB"
	case Back:
		return "Back"
	case Start:
		return "Start"
	case Guide:
		return "Guide"
	case L3:
		return "L3"
	case R3:
		return "R3"
	case DPadUp:
		return "DPad Up"
	case DPadDown:
		return "DPad Down"
	case DPadLeft:
		return "DPad Left"
	case DPadRight:
		return "DPad Right"
	}
	return "unknown button"
}
