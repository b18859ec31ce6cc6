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

package limiter_test

import (
	"testing"
	"time"

	"github.com/drazoxXD/steamdeck-Controls/limiter"
	"github.com/drazoxXD/steamdeck-Controls/test"
)

func TestRate(t *testing.T) {
	lim := limiter.NewLimiter(60)
	defer lim.Stop()
	test.Equate(t, lim.Rate(), 60)

	// nonsense rates resolve to 1
	lim2 := limiter.NewLimiter(0)
	defer lim2.Stop()
	test.Equate(t, lim2.Rate(), 1)
}

func TestPacing(t *testing.T) {
	// 100 events per second means 50 waits take around half a second. timing
	// on a loaded test machine is imprecise so the bounds are generous
	lim := limiter.NewLimiter(100)
	defer lim.Stop()

	start := time.Now()
	for i := 0; i < 50; i++ {
		lim.Wait()
	}
	elapsed := time.Since(start)

	if elapsed < 400*time.Millisecond {
		t.Errorf("50 waits at 100/s took only %s", elapsed)
	}
	if elapsed > 2*time.Second {
		t.Errorf("50 waits at 100/s took %s", elapsed)
	}
}

func TestHasWaited(t *testing.T) {
	lim := limiter.NewLimiter(1000)
	defer lim.Stop()

	// the first trigger is available almost immediately
	deadline := time.Now().Add(time.Second)
	for !lim.HasWaited() {
		if time.Now().After(deadline) {
			t.Fatal("trigger never elapsed")
		}
	}
}
