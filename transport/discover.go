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

package transport

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/drazoxXD/steamdeck-Controls/curated"
	"github.com/drazoxXD/steamdeck-Controls/logger"
)

// NoPeerFound is returned by Discovery.Run() when no host in the scan
// range accepted a connection. Retryable - the peer may simply not be up
// yet.
const NoPeerFound = "transport: discovery: no peer found"

// defaults for the Discovery type. chosen so a /24 scan completes in a few
// seconds even when most hosts are unreachable.
const (
	DefaultConnectTimeout = 300 * time.Millisecond
	DefaultParallel       = 8
)

// Discovery scans a host range for a listening relay peer. The zero value
// is not usable: Hosts and Port must be set. The remaining fields default
// sensibly.
type Discovery struct {
	Hosts []string
	Port  int

	// per-attempt connection timeout. DefaultConnectTimeout if zero
	ConnectTimeout time.Duration

	// maximum number of simultaneous connection attempts.
	// DefaultParallel if zero
	Parallel int

	// handed to the winning Conn. see NewConn()
	ReadTimeout time.Duration
}

// Run the scan. The first host to accept a connection wins and the rest of
// the scan is abandoned. Blocks until a peer is found, the range is
// exhausted (NoPeerFound), or the context is cancelled.
func (d Discovery) Run(ctx context.Context) (*Conn, error) {
	if len(d.Hosts) == 0 {
		return nil, curated.Errorf(InvalidConfig, "empty scan range")
	}
	if d.Port < 1 || d.Port > 65535 {
		return nil, curated.Errorf(InvalidConfig, fmt.Sprintf("port %d", d.Port))
	}

	connectTimeout := d.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	parallel := d.Parallel
	if parallel < 1 {
		parallel = DefaultParallel
	}

	// scanCtx cancels the outstanding attempts as soon as a winner is found
	scanCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	found := make(chan net.Conn, 1)
	sem := make(chan bool, parallel)

	for _, host := range d.Hosts {
		select {
		case sem <- true:
		case <-scanCtx.Done():
		}
		if scanCtx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(addr string) {
			defer wg.Done()
			defer func() { <-sem }()

			dialer := net.Dialer{Timeout: connectTimeout}
			peer, err := dialer.DialContext(scanCtx, "tcp", addr)
			if err != nil {
				return
			}

			select {
			case found <- peer:
				logger.Logf(logger.Allow, "discovery", "peer found at %s", addr)
				cancel()
			default:
				// another attempt won the race
				_ = peer.Close()
			}
		}(net.JoinHostPort(host, strconv.Itoa(d.Port)))
	}

	wg.Wait()

	select {
	case peer := <-found:
		return NewConn(peer, d.ReadTimeout), nil
	default:
	}

	if ctx.Err() != nil {
		return nil, curated.Errorf(IoFailure, ctx.Err())
	}

	return nil, curated.Errorf(NoPeerFound)
}

// ParseHostRange expands a scan-range string into the list of hosts it
// covers. Two forms are understood:
//
//	192.168.1.7      a single host
//	192.168.1.2-254  every host from .2 to .254 inclusive
//
// An unparseable range or one covering no hosts is an InvalidConfig error.
func ParseHostRange(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, curated.Errorf(InvalidConfig, "empty scan range")
	}

	if !strings.Contains(s, "-") {
		if net.ParseIP(s) == nil {
			return nil, curated.Errorf(InvalidConfig, fmt.Sprintf("bad host %q", s))
		}
		return []string{s}, nil
	}

	dot := strings.LastIndex(s, ".")
	if dot == -1 {
		return nil, curated.Errorf(InvalidConfig, fmt.Sprintf("bad scan range %q", s))
	}

	prefix := s[:dot]
	lo, hi, ok := strings.Cut(s[dot+1:], "-")
	if !ok {
		return nil, curated.Errorf(InvalidConfig, fmt.Sprintf("bad scan range %q", s))
	}

	from, err := strconv.Atoi(lo)
	if err != nil {
		return nil, curated.Errorf(InvalidConfig, fmt.Sprintf("bad scan range %q", s))
	}
	to, err := strconv.Atoi(hi)
	if err != nil {
		return nil, curated.Errorf(InvalidConfig, fmt.Sprintf("bad scan range %q", s))
	}

	if from < 0 || to > 255 || from > to {
		return nil, curated.Errorf(InvalidConfig, fmt.Sprintf("bad scan range %q", s))
	}
	if net.ParseIP(fmt.Sprintf("%s.%d", prefix, from)) == nil {
		return nil, curated.Errorf(InvalidConfig, fmt.Sprintf("bad scan range %q", s))
	}

	hosts := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		hosts = append(hosts, fmt.Sprintf("%s.%d", prefix, i))
	}

	return hosts, nil
}
