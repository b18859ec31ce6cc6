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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/drazoxXD/steamdeck-Controls/console"
	"github.com/drazoxXD/steamdeck-Controls/logger"
	"github.com/drazoxXD/steamdeck-Controls/modalflag"
	"github.com/drazoxXD/steamdeck-Controls/sampler"
	"github.com/drazoxXD/steamdeck-Controls/session"
	"github.com/drazoxXD/steamdeck-Controls/sink"
	"github.com/drazoxXD/steamdeck-Controls/statsview"
	"github.com/drazoxXD/steamdeck-Controls/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("DECK", "RECEIVE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	// both session modes run until interrupted. cancelling the context is
	// the one shutdown path, whether triggered by ctrl-c or by the console's
	// quit key
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	go func() {
		<-intChan
		fmt.Println("\r")
		cancel()
	}()

	switch md.Mode() {
	case "DECK":
		err = deck(ctx, cancel, md)

	case "RECEIVE":
		err = receive(ctx, cancel, md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

func deck(ctx context.Context, cancel context.CancelFunc, md *modalflag.Modes) error {
	md.NewMode()

	setup := session.NewSetup()

	port := md.AddInt("port", setup.Port, "TCP port to listen on")
	rate := md.AddInt("rate", setup.SampleRate, "controller snapshots per second")
	heartbeat := md.AddDuration("heartbeat", setup.Heartbeat, "heartbeat interval")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	view := md.AddBool("view", true, "show the terminal debug view")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// the debug view owns the terminal. echoing the log over it makes both
	// unreadable
	if *log && !*view {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Println("* statsview not available in this build (rebuild with the statsview build tag)")
		}
	}

	setup.Port = *port
	setup.SampleRate = *rate
	setup.Heartbeat = *heartbeat

	pads, err := sampler.NewGamepads()
	if err != nil {
		return err
	}

	// the source drives the sampler, which closes the gamepads on the way out
	smp := sampler.NewSampler(pads, setup.SampleRate)
	src := session.NewSource(setup, smp)

	return runSession(ctx, cancel, src, "deck", *view)
}

func receive(ctx context.Context, cancel context.CancelFunc, md *modalflag.Modes) error {
	md.NewMode()

	setup := session.NewSetup()

	port := md.AddInt("port", setup.Port, "TCP port to scan for")
	scan := md.AddString("scan", setup.ScanRange, "host range to scan (eg. 192.168.1.1-254)")
	heartbeat := md.AddDuration("heartbeat", setup.Heartbeat, "heartbeat interval")
	redial := md.AddDuration("redial", setup.RedialDelay, "pause between reconnection attempts")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	view := md.AddBool("view", true, "show the terminal debug view")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log && !*view {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Println("* statsview not available in this build (rebuild with the statsview build tag)")
		}
	}

	setup.Port = *port
	setup.ScanRange = *scan
	setup.Heartbeat = *heartbeat
	setup.RedialDelay = *redial

	// the virtual-device driver slots in behind the sink.Device interface.
	// the recorder stands in for it, holding the most recently applied
	// report for the debug view
	dev := sink.NewRecorder()
	defer dev.Close()

	app := sink.NewApplier(dev)
	snk := session.NewSink(setup, app)

	return runSession(ctx, cancel, snk, "receive", *view)
}

// sessionRunner is satisfied by both session roles.
type sessionRunner interface {
	console.Session
	Run(ctx context.Context) error
}

// runSession runs the session and, optionally, the terminal debug view.
// returns when the session ends, which happens only on a terminal error or
// on context cancellation.
func runSession(ctx context.Context, cancel context.CancelFunc, sess sessionRunner, role string, view bool) error {
	var wg sync.WaitGroup

	if view {
		mon := console.NewMonitor(sess, role)
		wg.Add(1)
		go func() {
			defer wg.Done()
			mon.Run(ctx, cancel)
		}()
	}

	err := sess.Run(ctx)

	// the session has ended. bring the console down with it
	cancel()
	wg.Wait()

	return err
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display vcs revision")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ver, rev, _ := version.Version()
	fmt.Printf("%s (%s)\n", version.ApplicationName, ver)
	if *revision {
		fmt.Println(rev)
	}

	return nil
}
