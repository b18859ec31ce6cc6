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

// Package console is the terminal debug view. It renders a read-only
// picture of the running session - connection state, latency, the latest
// controller snapshot and the tail of the activity log - at a fixed
// refresh rate, and watches the keyboard for the quit key.
//
// The console is strictly a consumer. It polls immutable snapshots
// through the Session interface and never hands anything back to the
// core. If it is slow, or not running at all, the relay does not notice.
package console

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/drazoxXD/steamdeck-Controls/limiter"
	"github.com/drazoxXD/steamdeck-Controls/logger"
	"github.com/drazoxXD/steamdeck-Controls/session"
	"github.com/drazoxXD/steamdeck-Controls/state"

	"github.com/pkg/term"
)

// refresh rate of the view. brisk enough that stick movement feels live
const refreshRate = 10

// how many activity-log entries to show
const logTail = 8

// Session is the read-only view of a running session. Both session roles
// satisfy it.
type Session interface {
	ConnectionState() session.ConnectionState
	LatestState() (state.ControllerState, bool)
	Controllers() []state.DeviceInfo
	Latency() (time.Duration, bool)
}

// Monitor renders a Session to the controlling terminal.
type Monitor struct {
	sess Session
	role string

	lim *limiter.Limiter
}

// NewMonitor is the preferred method of initialisation for the Monitor
// type. role is a label for the header line ("deck" or "receive").
func NewMonitor(sess Session, role string) *Monitor {
	return &Monitor{
		sess: sess,
		role: role,
		lim:  limiter.NewLimiter(refreshRate),
	}
}

// Run the monitor until the context is cancelled or the user presses the
// quit key. quit is called on keypress so the rest of the program comes
// down with the console.
//
// If the controlling terminal cannot be put into cbreak mode (no tty, for
// instance when output is redirected) the monitor degrades to rendering
// only; ctrl-c remains the way out.
func (mon *Monitor) Run(ctx context.Context, quit context.CancelFunc) {
	defer mon.lim.Stop()

	keys := make(chan byte)
	t, err := term.Open("/dev/tty", term.CBreakMode, term.ReadTimeout(100*time.Millisecond))
	if err != nil {
		logger.Logf(logger.Allow, "console", "no tty: %v", err)
	} else {
		defer func() {
			_ = t.Restore()
			_ = t.Close()
		}()
		go func() {
			b := make([]byte, 1)
			for {
				if n, err := t.Read(b); err == nil && n == 1 {
					select {
					case keys <- b[0]:
					case <-ctx.Done():
						return
					}
				}
				if ctx.Err() != nil {
					return
				}
			}
		}()
	}

	for {
		mon.lim.Wait()

		select {
		case <-ctx.Done():
			return
		case k := <-keys:
			if k == 'q' || k == 'Q' {
				quit()
				return
			}
		default:
		}

		mon.redraw()
	}
}

func (mon *Monitor) redraw() {
	s := strings.Builder{}

	// home the cursor and clear the screen before every frame
	s.WriteString("\033[H\033[2J")

	s.WriteString(fmt.Sprintf("steamdeck controls [%s]   press q to quit\r\n\r\n", mon.role))

	cs := mon.sess.ConnectionState()
	s.WriteString(fmt.Sprintf("connection: %s\r\n", cs.String()))

	if lat, ok := mon.sess.Latency(); ok {
		s.WriteString(fmt.Sprintf("latency:    %s\r\n", lat))
	} else {
		s.WriteString("latency:    -\r\n")
	}

	list := mon.sess.Controllers()
	if len(list) == 0 {
		s.WriteString("controller: none\r\n")
	}
	for _, inf := range list {
		s.WriteString(fmt.Sprintf("controller: %s\r\n", inf.String()))
	}

	s.WriteString("\r\n")
	if snap, ok := mon.sess.LatestState(); ok {
		s.WriteString(renderState(snap))
	} else {
		s.WriteString("no input yet\r\n")
	}

	s.WriteString("\r\nactivity:\r\n")
	logger.BorrowLog(func(entries []logger.Entry) {
		n := len(entries)
		if n > logTail {
			entries = entries[n-logTail:]
		}
		for i := range entries {
			// Entry.String() ends with a bare newline. normalise for the
			// terminal in cbreak mode
			s.WriteString("  ")
			s.WriteString(strings.TrimSuffix(entries[i].String(), "\n"))
			s.WriteString("\r\n")
		}
	})

	os.Stdout.WriteString(s.String())
}

func renderState(snap state.ControllerState) string {
	s := strings.Builder{}

	s.WriteString(fmt.Sprintf("left stick:  %+.2f %+.2f   trigger: %.2f\r\n",
		snap.LeftStickX, snap.LeftStickY, snap.LeftTrigger))
	s.WriteString(fmt.Sprintf("right stick: %+.2f %+.2f   trigger: %.2f\r\n",
		snap.RightStickX, snap.RightStickY, snap.RightTrigger))

	pressed := []string{}
	for _, b := range state.ButtonList {
		if snap.Pressed(b) {
			pressed = append(pressed, b.String())
		}
	}
	if len(pressed) == 0 {
		s.WriteString("buttons:     none\r\n")
	} else {
		s.WriteString(fmt.Sprintf("buttons:     %s\r\n", strings.Join(pressed, " ")))
	}

	return s.String()
}
