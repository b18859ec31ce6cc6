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

package sink_test

import (
	"testing"

	"github.com/drazoxXD/steamdeck-Controls/sink"
	"github.com/drazoxXD/steamdeck-Controls/state"
	"github.com/drazoxXD/steamdeck-Controls/test"
)

func TestReportConversion(t *testing.T) {
	s := state.ControllerState{
		LeftStickX: 0.5,
		LeftStickY: -0.3,
		ButtonA:    true,
		Timestamp:  100,
	}

	r := sink.NewReport(s)

	test.Equate(t, r.LeftStickX, 16383)
	test.Equate(t, r.LeftStickY, -9830)
	test.Equate(t, r.RightStickX, 0)
	test.Equate(t, r.RightStickY, 0)
	test.Equate(t, r.Buttons, sink.MaskA)
}

func TestReportExtremes(t *testing.T) {
	s := state.ControllerState{
		LeftStickX:   1.0,
		LeftStickY:   -1.0,
		LeftTrigger:  1.0,
		RightTrigger: 0.0,
	}

	r := sink.NewReport(s)

	test.Equate(t, r.LeftStickX, 32767)
	test.Equate(t, r.LeftStickY, -32767)
	test.Equate(t, r.LeftTrigger, 255)
	test.Equate(t, r.RightTrigger, 0)
}

func TestReportButtonMask(t *testing.T) {
	for _, c := range []struct {
		button state.Button
		mask   uint16
	}{
		{state.DPadUp, 0x0001},
		{state.DPadDown, 0x0002},
		{state.DPadLeft, 0x0004},
		{state.DPadRight, 0x0008},
		{state.Start, 0x0010},
		{state.Back, 0x0020},
		{state.L3, 0x0040},
		{state.R3, 0x0080},
		{state.LB, 0x0100},
		{state.RB, 0x0200},
		{state.Guide, 0x0400},
		{state.A, 0x1000},
		{state.B, 0x2000},
		{state.X, 0x4000},
		{state.Y, 0x8000},
	} {
		s := state.ControllerState{}
		s.Press(c.button, true)
		r := sink.NewReport(s)
		if r.Buttons != c.mask {
			t.Errorf("%s: mask %#04x, wanted %#04x", c.button, r.Buttons, c.mask)
		}
	}

	// all buttons at once
	s := state.ControllerState{}
	for _, b := range state.ButtonList {
		s.Press(b, true)
	}
	test.Equate(t, sink.NewReport(s).Buttons, uint16(0xf7ff))
}

func TestReportPure(t *testing.T) {
	s := state.ControllerState{RightStickX: 0.25, ButtonY: true}
	if sink.NewReport(s) != sink.NewReport(s) {
		t.Errorf("identical snapshots produced different reports")
	}
}
