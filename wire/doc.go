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

// Package wire defines the message set exchanged between the two halves of
// the relay and the codec that carries it over a byte stream.
//
// A Message is a closed tagged variant: ControllerList, ControllerState,
// Ping or Pong. Every decode and dispatch site switches over the full set.
//
// On the stream each message is framed as a 4-byte little-endian length
// followed by a JSON body. The body is an envelope with an explicit "type"
// discriminator. Framing means a malformed body never corrupts the
// messages that follow it - the reader consumes the whole frame before
// attempting to decode, so decoding failures are confined to a single
// message.
//
// Decode() is total. Any byte sequence either yields a Message or the
// Malformed error; there is no input that produces undefined behaviour.
package wire
