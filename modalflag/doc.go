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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Whereas with flag.FlagSet you call Parse() with the array of strings as the
// only argument, with modalflag you first call NewArgs() with the array of
// arguments and then Parse() with no arguments:
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	_, _ = md.Parse()
//
// Once the arguments have been parsed, non-flag arguments can be retrieved
// with the RemainingArgs() or GetArg() function.
//
// The important difference between the standard flag package and the
// modalflag package is the ability of the latter to handle "modes". In this
// context, a mode is a special command line argument that when specified,
// puts the program into a different mode of operation, each mode with its
// own set of flags and expected arguments. Modes are declared with the
// AddSubModes() function (comparisons are case insensitive):
//
//	md.AddSubModes("deck", "receive")
//
// Subsequent calls to Parse() will then process flags in the normal way but
// will also check to see if the first argument after the flags is one of
// these modes:
//
//	md.Parse()
//	switch md.Mode() {
//	case "DECK":
//		md.NewMode()
//		// add mode specific flags before calling md.Parse() again
//	}
//
// Modes can be chained as deep as required. The first sub-mode in the list
// given to AddSubModes() is the default and is selected when the user names
// no mode at all.
package modalflag
