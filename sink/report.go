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

package sink

import (
	"github.com/drazoxXD/steamdeck-Controls/state"
)

// Report is the fixed report shape accepted by the virtual-device driver:
// the field layout of an Xbox 360 controller. Axes are full-range int16
// (positive up/right), triggers are 0-255, Buttons is the XInput button
// mask.
type Report struct {
	Buttons      uint16
	LeftTrigger  uint8
	RightTrigger uint8
	LeftStickX   int16
	LeftStickY   int16
	RightStickX  int16
	RightStickY  int16
}

// the XInput button mask bits.
const (
	MaskDPadUp    uint16 = 0x0001
	MaskDPadDown  uint16 = 0x0002
	MaskDPadLeft  uint16 = 0x0004
	MaskDPadRight uint16 = 0x0008
	MaskStart     uint16 = 0x0010
	MaskBack      uint16 = 0x0020
	MaskL3        uint16 = 0x0040
	MaskR3        uint16 = 0x0080
	MaskLB        uint16 = 0x0100
	MaskRB        uint16 = 0x0200
	MaskGuide     uint16 = 0x0400
	MaskA         uint16 = 0x1000
	MaskB         uint16 = 0x2000
	MaskX         uint16 = 0x4000
	MaskY         uint16 = 0x8000
)

// NewReport converts a controller snapshot into the report shape. Pure
// function: the same snapshot always produces the same report.
func NewReport(s state.ControllerState) Report {
	var r Report

	r.LeftStickX = axisToReport(s.LeftStickX)
	r.LeftStickY = axisToReport(s.LeftStickY)
	r.RightStickX = axisToReport(s.RightStickX)
	r.RightStickY = axisToReport(s.RightStickY)
	r.LeftTrigger = triggerToReport(s.LeftTrigger)
	r.RightTrigger = triggerToReport(s.RightTrigger)
	r.Buttons = buttonMask(s)

	return r
}

func axisToReport(v float32) int16 {
	return int16(v * 32767.0)
}

func triggerToReport(v float32) uint8 {
	return uint8(v * 255.0)
}

func buttonMask(s state.ControllerState) uint16 {
	var mask uint16

	// every state.Button has a bit in the mask. the switch is exhaustive
	// over the closed button set
	for _, b := range state.ButtonList {
		if !s.Pressed(b) {
			continue
		}
		switch b {
		case state.DPadUp:
			mask |= MaskDPadUp
		case state.DPadDown:
			mask |= MaskDPadDown
		case state.DPadLeft:
			mask |= MaskDPadLeft
		case state.DPadRight:
			mask |= MaskDPadRight
		case state.Start:
			mask |= MaskStart
		case state.Back:
			mask |= MaskBack
		case state.L3:
			mask |= MaskL3
		case state.R3:
			mask |= MaskR3
		case state.LB:
			mask |= MaskLB
		case state.RB:
			mask |= MaskRB
		case state.Guide:
			mask |= MaskGuide
		case state.A:
			mask |= MaskA
		case state.B:
			mask |= MaskB
		case state.X:
			mask |= MaskX
		case state.Y:
			mask |= MaskY
		}
	}

	return mask
}
