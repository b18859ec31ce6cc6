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

package version

import "runtime/debug"

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "SteamDeck Controls"

// number is set through the linker by a release build. it stays empty for
// any other kind of build
var number string

var version string
var revision string

// Version returns the version and revision strings and whether this build
// is a numbered release. When release is false the version string is
// "unreleased" (built from a checkout) or "local" (no vcs information at
// all, eg. "go run ."). The revision string carries a "+dirty" suffix when
// the working tree had uncommitted changes at build time.
func Version() (string, string, bool) {
	return version, revision, version == number
}

func init() {
	var vcs bool
	var rev string
	var dirty bool

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				rev = s.Value
			case "vcs.modified":
				dirty = s.Value == "true"
			}
		}
	}

	switch {
	case rev == "":
		revision = "no revision information"
	case dirty:
		revision = rev + "+dirty"
	default:
		revision = rev
	}

	switch {
	case number != "":
		version = number
	case vcs:
		version = "unreleased"
	default:
		version = "local"
	}
}
