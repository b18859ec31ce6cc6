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
	"context"
	"sync/atomic"

	"github.com/drazoxXD/steamdeck-Controls/curated"
	"github.com/drazoxXD/steamdeck-Controls/limiter"
	"github.com/drazoxXD/steamdeck-Controls/logger"
	"github.com/drazoxXD/steamdeck-Controls/state"
)

// NoControllerAvailable is returned by Physical.Poll() when no controller
// is attached. The sampler pauses emission until one arrives. It is a
// status condition, not a failure - it never ends the session.
const NoControllerAvailable = "sampler: no controller available"

// DefaultRate is the nominal sampling rate in snapshots per second.
const DefaultRate = 60

// Physical is the interface to the physical input layer.
//
// Poll() returns the controller's current state, raw and unclamped, or an
// error matching the NoControllerAvailable pattern. Devices() lists the
// currently attached controllers. Both are only ever called from the
// sampling goroutine.
type Physical interface {
	Poll() (state.ControllerState, error)
	Devices() []state.DeviceInfo
	Close()
}

// Sampler reads the Physical layer at a fixed cadence and publishes
// snapshots. Create with NewSampler() and drive with Run().
type Sampler struct {
	phys Physical
	lim  *limiter.Limiter

	// capacity one, latest-wins. see publish()
	snapshots chan state.ControllerState
	devices   chan []state.DeviceInfo

	// whether the most recent Poll() found a controller
	available atomic.Bool

	// most recent device list, for consumers who need the current list
	// on demand rather than change notifications
	deviceList atomic.Value // []state.DeviceInfo
}

// NewSampler is the preferred method of initialisation for the Sampler
// type. rate is in snapshots per second; values below 1 are treated as
// DefaultRate.
func NewSampler(phys Physical, rate int) *Sampler {
	if rate < 1 {
		rate = DefaultRate
	}
	smp := &Sampler{
		phys:      phys,
		lim:       limiter.NewLimiter(rate),
		snapshots: make(chan state.ControllerState, 1),
		devices:   make(chan []state.DeviceInfo, 1),
	}
	smp.deviceList.Store([]state.DeviceInfo{})
	return smp
}

// Snapshots returns the channel on which state snapshots are published.
// Receivers see the most recent snapshot only.
func (smp *Sampler) Snapshots() <-chan state.ControllerState {
	return smp.snapshots
}

// Devices returns the channel on which changes to the attached controller
// list are published.
func (smp *Sampler) Devices() <-chan []state.DeviceInfo {
	return smp.devices
}

// DeviceList returns the current list of attached controllers.
func (smp *Sampler) DeviceList() []state.DeviceInfo {
	return smp.deviceList.Load().([]state.DeviceInfo)
}

// Available returns whether the most recent poll found a controller. For
// status display only - consumers of Snapshots() simply see no snapshots
// while no controller is attached.
func (smp *Sampler) Available() bool {
	return smp.available.Load()
}

// Run samples until the context is cancelled. Blocking; callers run it in
// its own goroutine. The Physical layer is closed on the way out.
func (smp *Sampler) Run(ctx context.Context) {
	defer smp.phys.Close()
	defer smp.lim.Stop()

	var devices []state.DeviceInfo
	var lastTimestamp uint64

	for {
		smp.lim.Wait()

		select {
		case <-ctx.Done():
			return
		default:
		}

		snap, err := smp.phys.Poll()
		if err != nil {
			if curated.Has(err, NoControllerAvailable) {
				if smp.available.Swap(false) {
					logger.Log(logger.Allow, "sampler", "controller detached, waiting")
					devices = smp.phys.Devices()
					smp.deviceList.Store(devices)
					publish(smp.devices, devices)
					devices = nil
				}
				continue
			}
			logger.Logf(logger.Allow, "sampler", "poll: %v", err)
			continue
		}

		if !smp.available.Swap(true) {
			logger.Log(logger.Allow, "sampler", "controller attached")
		}

		// announce device list changes
		if d := smp.phys.Devices(); !sameDevices(d, devices) {
			devices = d
			smp.deviceList.Store(devices)
			publish(smp.devices, devices)
		}

		snap = state.NewControllerState(snap)
		snap.Timestamp = state.Now()

		// state.Now() is monotonic but at high sampling rates two ticks can
		// land in the same millisecond. nudge so consumers can rely on the
		// non-decreasing property distinguishing samples
		if snap.Timestamp < lastTimestamp {
			snap.Timestamp = lastTimestamp
		}
		lastTimestamp = snap.Timestamp

		publish(smp.snapshots, snap)
	}
}

// publish on a capacity-one channel, discarding the undelivered value if
// there is one. the newest value always wins.
func publish[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

func sameDevices(a, b []state.DeviceInfo) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
