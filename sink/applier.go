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
	"fmt"

	"github.com/drazoxXD/steamdeck-Controls/curated"
	"github.com/drazoxXD/steamdeck-Controls/logger"
	"github.com/drazoxXD/steamdeck-Controls/state"
)

// Error patterns raised by this package.
const (
	// the virtual device has not been created (or has gone away). the
	// session logs and tries again on the next state
	NotReady = "sink: not ready"

	// the virtual device rejected the report
	WriteFailure = "sink: write failure: %v"
)

// Device is the virtual-device driver boundary. Implementations expose the
// report to the host operating system (or record it, in the case of
// Recorder).
type Device interface {
	// Update replaces the device's current report
	Update(Report) error

	Close()
}

// analog changes smaller than this are not worth an activity-log entry
const logThreshold = 0.1

// Applier consumes received controller state and drives a Device.
type Applier struct {
	dev Device

	// previous applied state, for change logging
	prev  state.ControllerState
	first bool
}

// NewApplier is the preferred method of initialisation for the Applier
// type. A nil Device is allowed: Apply() fails with NotReady until
// SetDevice() provides one.
func NewApplier(dev Device) *Applier {
	return &Applier{
		dev:   dev,
		first: true,
	}
}

// SetDevice replaces the Device the applier drives. A nil Device puts the
// applier back into the NotReady condition.
func (app *Applier) SetDevice(dev Device) {
	app.dev = dev
	app.first = true
}

// Apply converts the snapshot to a report and forwards it to the device.
// Idempotent: applying the same snapshot again produces an identical
// report.
//
// Failures are NotReady (no device) or WriteFailure (device rejected the
// report). Neither is fatal; the session retries on the next snapshot.
func (app *Applier) Apply(s state.ControllerState) error {
	if app.dev == nil {
		return curated.Errorf(NotReady)
	}

	if err := app.dev.Update(NewReport(s)); err != nil {
		if curated.IsAny(err) {
			return err
		}
		return curated.Errorf(WriteFailure, err)
	}

	app.logChanges(s)
	app.prev = s
	app.first = false

	return nil
}

// one activity-log entry per control that changed, in the manner of the
// debug console's input log.
func (app *Applier) logChanges(s state.ControllerState) {
	if app.first || s.EqualInput(app.prev) {
		return
	}

	for _, b := range state.ButtonList {
		if s.Pressed(b) != app.prev.Pressed(b) {
			if s.Pressed(b) {
				logger.Logf(logger.Allow, "input", "%s: pressed", b)
			} else {
				logger.Logf(logger.Allow, "input", "%s: released", b)
			}
		}
	}

	logAnalog("left stick x", app.prev.LeftStickX, s.LeftStickX)
	logAnalog("left stick y", app.prev.LeftStickY, s.LeftStickY)
	logAnalog("right stick x", app.prev.RightStickX, s.RightStickX)
	logAnalog("right stick y", app.prev.RightStickY, s.RightStickY)
	logAnalog("left trigger", app.prev.LeftTrigger, s.LeftTrigger)
	logAnalog("right trigger", app.prev.RightTrigger, s.RightTrigger)
}

func logAnalog(name string, old float32, new float32) {
	d := new - old
	if d < 0 {
		d = -d
	}
	if d > logThreshold {
		logger.Log(logger.Allow, "input", fmt.Sprintf("%s: %.2f", name, new))
	}
}
