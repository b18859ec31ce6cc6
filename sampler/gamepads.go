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

package sampler

import (
	"github.com/drazoxXD/steamdeck-Controls/curated"
	"github.com/drazoxXD/steamdeck-Controls/logger"
	"github.com/drazoxXD/steamdeck-Controls/state"

	"github.com/veandco/go-sdl2/sdl"
)

// Gamepads is the production implementation of the Physical interface,
// built on the SDL game controller API. The first attached game controller
// is the one being relayed; hotplug is handled by rescanning whenever the
// current controller goes away.
type Gamepads struct {
	pad  *sdl.GameController
	info state.DeviceInfo
}

// NewGamepads is the preferred method of initialisation for the Gamepads
// type. Initialises the SDL joystick/gamecontroller subsystems. It is fine
// for no controller to be attached at this point.
func NewGamepads() (*Gamepads, error) {
	err := sdl.Init(sdl.INIT_JOYSTICK | sdl.INIT_GAMECONTROLLER)
	if err != nil {
		return nil, curated.Errorf("sampler: sdl: %v", err)
	}

	// we poll controller state explicitly every tick. we never run an SDL
	// event loop so controller events must not queue up
	sdl.GameControllerEventState(sdl.IGNORE)

	g := &Gamepads{}
	g.scan()

	if g.pad == nil {
		logger.Log(logger.Allow, "sdl", "no controllers found")
	}

	return g, nil
}

// scan for the first attached game controller.
func (g *Gamepads) scan() {
	for i := 0; i < sdl.NumJoysticks(); i++ {
		if !sdl.IsGameController(i) {
			continue
		}
		pad := sdl.GameControllerOpen(i)
		if pad != nil && pad.Attached() {
			g.pad = pad
			joy := pad.Joystick()
			g.info = state.NewDeviceInfo(pad.Name(),
				uint16(joy.Vendor()), uint16(joy.Product()))
			logger.Logf(logger.Allow, "sdl", "gamepad: %s", g.info.String())
			return
		}
	}
	g.pad = nil
	g.info = state.DeviceInfo{}
}

// Poll implements the Physical interface.
func (g *Gamepads) Poll() (state.ControllerState, error) {
	// pump the joystick subsystem before reading anything
	sdl.GameControllerUpdate()

	if g.pad == nil || !g.pad.Attached() {
		if g.pad != nil {
			g.pad.Close()
			g.pad = nil
		}
		g.scan()
		if g.pad == nil {
			return state.ControllerState{}, curated.Errorf(NoControllerAvailable)
		}
	}

	var s state.ControllerState

	// SDL reports stick Y axes as positive-down. the protocol carries
	// positive-up, matching the virtual controller report on the far side
	s.LeftStickX = axis(g.pad.Axis(sdl.CONTROLLER_AXIS_LEFTX))
	s.LeftStickY = -axis(g.pad.Axis(sdl.CONTROLLER_AXIS_LEFTY))
	s.RightStickX = axis(g.pad.Axis(sdl.CONTROLLER_AXIS_RIGHTX))
	s.RightStickY = -axis(g.pad.Axis(sdl.CONTROLLER_AXIS_RIGHTY))

	s.LeftTrigger = trigger(g.pad.Axis(sdl.CONTROLLER_AXIS_TRIGGERLEFT))
	s.RightTrigger = trigger(g.pad.Axis(sdl.CONTROLLER_AXIS_TRIGGERRIGHT))

	s.Press(state.A, g.pad.Button(sdl.CONTROLLER_BUTTON_A) == sdl.PRESSED)
	s.Press(state.B, g.pad.Button(sdl.CONTROLLER_BUTTON_B) == sdl.PRESSED)
	s.Press(state.X, g.pad.Button(sdl.CONTROLLER_BUTTON_X) == sdl.PRESSED)
	s.Press(state.Y, g.pad.Button(sdl.CONTROLLER_BUTTON_Y) == sdl.PRESSED)
	s.Press(state.LB, g.pad.Button(sdl.CONTROLLER_BUTTON_LEFTSHOULDER) == sdl.PRESSED)
	s.Press(state.RB, g.pad.Button(sdl.CONTROLLER_BUTTON_RIGHTSHOULDER) == sdl.PRESSED)
	s.Press(state.Back, g.pad.Button(sdl.CONTROLLER_BUTTON_BACK) == sdl.PRESSED)
	s.Press(state.Start, g.pad.Button(sdl.CONTROLLER_BUTTON_START) == sdl.PRESSED)
	s.Press(state.Guide, g.pad.Button(sdl.CONTROLLER_BUTTON_GUIDE) == sdl.PRESSED)
	s.Press(state.L3, g.pad.Button(sdl.CONTROLLER_BUTTON_LEFTSTICK) == sdl.PRESSED)
	s.Press(state.R3, g.pad.Button(sdl.CONTROLLER_BUTTON_RIGHTSTICK) == sdl.PRESSED)
	s.Press(state.DPadUp, g.pad.Button(sdl.CONTROLLER_BUTTON_DPAD_UP) == sdl.PRESSED)
	s.Press(state.DPadDown, g.pad.Button(sdl.CONTROLLER_BUTTON_DPAD_DOWN) == sdl.PRESSED)
	s.Press(state.DPadLeft, g.pad.Button(sdl.CONTROLLER_BUTTON_DPAD_LEFT) == sdl.PRESSED)
	s.Press(state.DPadRight, g.pad.Button(sdl.CONTROLLER_BUTTON_DPAD_RIGHT) == sdl.PRESSED)

	return s, nil
}

// Devices implements the Physical interface.
func (g *Gamepads) Devices() []state.DeviceInfo {
	if g.pad == nil {
		return []state.DeviceInfo{}
	}
	return []state.DeviceInfo{g.info}
}

// Close implements the Physical interface.
func (g *Gamepads) Close() {
	if g.pad != nil {
		g.pad.Close()
		g.pad = nil
	}
	sdl.QuitSubSystem(sdl.INIT_JOYSTICK | sdl.INIT_GAMECONTROLLER)
}

// sdl axis values are int16. the positive range is one smaller than the
// negative range so clamp at the constructor takes care of -32768
func axis(v int16) float32 {
	return float32(v) / 32767.0
}

func trigger(v int16) float32 {
	if v < 0 {
		return 0.0
	}
	return float32(v) / 32767.0
}
