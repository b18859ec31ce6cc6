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
	"sync"

	"github.com/drazoxXD/steamdeck-Controls/curated"
)

// Recorder is a Device that records the most recent report instead of
// creating a real virtual controller. It stands in on platforms without a
// driver and gives the debug console something to display. Safe for
// concurrent use.
type Recorder struct {
	crit   sync.Mutex
	report Report
	closed bool
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Update implements the Device interface.
func (rec *Recorder) Update(r Report) error {
	rec.crit.Lock()
	defer rec.crit.Unlock()

	if rec.closed {
		return curated.Errorf(NotReady)
	}

	rec.report = r
	return nil
}

// Close implements the Device interface.
func (rec *Recorder) Close() {
	rec.crit.Lock()
	defer rec.crit.Unlock()

	rec.closed = true
}

// Report returns the most recently recorded report.
func (rec *Recorder) Report() Report {
	rec.crit.Lock()
	defer rec.crit.Unlock()

	return rec.report
}
