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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. Like fmt.Errorf() it
// takes a formatting pattern and placeholder values, and returns an error.
// Unlike fmt.Errorf() the pattern doubles as the error's identity: the Is()
// function answers whether an error was created with a specific pattern and
// the Has() function answers whether the pattern occurs anywhere in the error
// chain.
//
//	e := curated.Errorf(transport.NotConnected)
//	f := curated.Errorf("session: %v", e)
//
//	curated.Is(f, transport.NotConnected)   // false. wrapped
//	curated.Has(f, transport.NotConnected)  // true
//
// The error categories of this project (wire.Malformed, transport.Timeout,
// sink.NotReady, and so on) are declared as pattern constants in the package
// that raises them and matched with Is()/Has() at the recovery site.
//
// The Error() function normalises the message chain, removing duplicate
// adjacent parts. This means wrapping at every call boundary is harmless.
package curated
