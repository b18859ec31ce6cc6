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

	"github.com/drazoxXD/steamdeck-Controls/curated"
	"github.com/drazoxXD/steamdeck-Controls/logger"
	"github.com/drazoxXD/steamdeck-Controls/sink"
	"github.com/drazoxXD/steamdeck-Controls/state"
	"github.com/drazoxXD/steamdeck-Controls/test"
)

func TestApplierNotReady(t *testing.T) {
	app := sink.NewApplier(nil)

	err := app.Apply(state.ControllerState{})
	test.ExpectedFailure(t, err)
	if !curated.Is(err, sink.NotReady) {
		t.Errorf("expected NotReady error, got: %v", err)
	}

	// providing a device clears the condition
	app.SetDevice(sink.NewRecorder())
	test.ExpectedSuccess(t, app.Apply(state.ControllerState{}))
}

func TestApplierDrivesDevice(t *testing.T) {
	rec := sink.NewRecorder()
	app := sink.NewApplier(rec)

	s := state.ControllerState{LeftStickX: 0.5, ButtonA: true}
	test.ExpectedSuccess(t, app.Apply(s))

	r := rec.Report()
	test.Equate(t, r.LeftStickX, 16383)
	test.Equate(t, r.Buttons, sink.MaskA)

	// applying the same snapshot again leaves the device report unchanged
	test.ExpectedSuccess(t, app.Apply(s))
	if rec.Report() != r {
		t.Errorf("reapplying a snapshot changed the device report")
	}
}

func TestApplierActivityLog(t *testing.T) {
	logger.Clear()

	app := sink.NewApplier(sink.NewRecorder())

	// the first snapshot establishes the baseline without logging anything
	test.ExpectedSuccess(t, app.Apply(state.ControllerState{Timestamp: 1}))

	// the same input under a fresh timestamp is not a change the user can
	// feel and doesn't reach the log
	test.ExpectedSuccess(t, app.Apply(state.ControllerState{Timestamp: 2}))
	logger.BorrowLog(func(entries []logger.Entry) {
		test.Equate(t, len(entries), 0)
	})

	// a button press is
	test.ExpectedSuccess(t, app.Apply(state.ControllerState{ButtonA: true, Timestamp: 3}))
	logger.BorrowLog(func(entries []logger.Entry) {
		test.Equate(t, len(entries), 1)
		test.Equate(t, entries[0].Tag, "input")
		test.Equate(t, entries[0].Detail, "A: pressed")
	})
}

func TestApplierClosedDevice(t *testing.T) {
	rec := sink.NewRecorder()
	app := sink.NewApplier(rec)
	rec.Close()

	err := app.Apply(state.ControllerState{})
	test.ExpectedFailure(t, err)
	if !curated.Is(err, sink.NotReady) {
		t.Errorf("expected NotReady error, got: %v", err)
	}
}
