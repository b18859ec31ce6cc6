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

package wire

import (
	"encoding/binary"
	"io"

	"github.com/drazoxXD/steamdeck-Controls/curated"
)

// MaxFrameLength is the largest body a frame may declare. Real messages are
// a few hundred bytes; anything larger means the stream is not speaking
// this protocol.
const MaxFrameLength = 1 << 20

// FrameTooLarge is returned by ReadMessage() when a frame declares a body
// larger than MaxFrameLength. Unlike Malformed there is no way to resume
// the stream after this error - the connection should be dropped.
const FrameTooLarge = "wire: frame too large (%d bytes)"

// WriteMessage encodes m and writes it to w as one frame: a 4-byte
// little-endian length followed by the body.
//
// An error from the underlying writer is returned as-is so the caller can
// classify it (the transport package maps it to its own error taxonomy).
func WriteMessage(w io.Writer, m Message) error {
	b, err := Encode(m)
	if err != nil {
		return err
	}

	var l [4]byte
	binary.LittleEndian.PutUint32(l[:], uint32(len(b)))

	if _, err := w.Write(l[:]); err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return err
	}

	return nil
}

// ReadMessage reads one frame from r and decodes it.
//
// A Malformed error means the frame was consumed but the body could not be
// decoded; the stream is still aligned and the caller can simply read the
// next message. A FrameTooLarge error or an error from the underlying
// reader means the stream is unusable.
func ReadMessage(r io.Reader) (Message, error) {
	var l [4]byte
	if _, err := io.ReadFull(r, l[:]); err != nil {
		return nil, err
	}

	length := binary.LittleEndian.Uint32(l[:])
	if length > MaxFrameLength {
		return nil, curated.Errorf(FrameTooLarge, length)
	}

	b := make([]byte, length)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}

	return Decode(b)
}
