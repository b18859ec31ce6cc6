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

// Package limiter provides a rough and ready way of limiting events to a
// fixed rate. It paces the sampling loop.
//
// A new Limiter can be created with:
//
//	lim := limiter.NewLimiter(60)
//
// Operations can then be stalled with the Wait() function. For example:
//
//	for {
//		lim.Wait()
//		sampleController()
//	}
package limiter

import (
	"time"
)

// Limiter will trigger at a fixed number of events per second.
//
// The tick goroutine compensates for drift by adjusting the sleep period
// with the measured overshoot of the previous period. Only any good if the
// work between Wait() calls comfortably fits in the period, which holds for
// controller sampling.
type Limiter struct {
	eventsPerSecond int
	perEvent        time.Duration

	tick chan bool
	quit chan bool
}

// NewLimiter is the preferred method of initialisation for the Limiter
// type. Rates that make no sense (zero or negative) are treated as 1 event
// per second.
func NewLimiter(eventsPerSecond int) *Limiter {
	if eventsPerSecond < 1 {
		eventsPerSecond = 1
	}

	lim := &Limiter{
		eventsPerSecond: eventsPerSecond,
		perEvent:        time.Second / time.Duration(eventsPerSecond),
		tick:            make(chan bool),
		quit:            make(chan bool),
	}

	// run ticker concurrently
	go func() {
		adjusted := lim.perEvent
		t := time.Now()
		for {
			select {
			case lim.tick <- true:
			case <-lim.quit:
				return
			}
			time.Sleep(adjusted)
			nt := time.Now()
			adjusted -= nt.Sub(t) - lim.perEvent
			if adjusted < 0 {
				adjusted = 0
			}
			t = nt
		}
	}()

	return lim
}

// Wait will block until the next trigger.
func (lim *Limiter) Wait() {
	<-lim.tick
}

// HasWaited returns true if the trigger has already elapsed and false if it
// is still yet to happen.
func (lim *Limiter) HasWaited() bool {
	select {
	case <-lim.tick:
		return true
	default:
		return false
	}
}

// Stop releases the ticker goroutine. The Limiter must not be used after
// Stop() has been called.
func (lim *Limiter) Stop() {
	close(lim.quit)
}

// Rate returns the number of events per second the limiter was created
// with.
func (lim *Limiter) Rate() int {
	return lim.eventsPerSecond
}
