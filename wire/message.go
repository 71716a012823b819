// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

// Message is implemented by every generated (interface, direction, opcode)
// struct: one field per argument, read/written in declaration order. Len
// sums the field lengths so a sender can stamp a frame header before
// encoding the payload (see §4.B).
type Message interface {
	// Len returns the encoded payload length in bytes, not including the
	// frame header.
	Len() uint32
	// FDCount returns how many fd-typed fields this message instance
	// carries, so a sender can size its FD cursor before Encode runs.
	FDCount() int
	// Encode writes the message's fields, in order, into data/fds.
	Encode(data *Cursor, fds *FDCursor) error
}

// Event is implemented by every generated (interface, direction, opcode)
// struct on the receiving side: Decode reads the fields, in order, out of
// an already-routed frame's payload.
type Event interface {
	Decode(data *Cursor, fds *FDCursor) error
}

// FDCount reports how many fd-typed fields a given opcode carries for some
// interface and direction; generated code supplies one such function per
// (interface, direction). The runtime needs this to size the FD cursor
// before it can know how to decode a message.
type FDCount func(opcode uint16) (int, bool)

// EncodeMessage stamps a frame header for m addressed to id and opcode,
// then encodes m's payload, entirely within data/fds. On any error the
// cursor positions are restored to their pre-call values, per §4.A's
// failure policy — callers never observe partial writes.
func EncodeMessage(data *Cursor, fds *FDCursor, id ObjectID, opcode uint16, m Message) error {
	dataSnap, fdSnap := data.Snapshot(), fds.Snapshot()
	if err := encodeMessage(data, fds, id, opcode, m); err != nil {
		data.Restore(dataSnap)
		fds.Restore(fdSnap)
		return err
	}
	return nil
}

func encodeMessage(data *Cursor, fds *FDCursor, id ObjectID, opcode uint16, m Message) error {
	datalen := HeaderLen + int(m.Len())
	if datalen > MaxFrameLen {
		return ErrInvalidMethod
	}
	if err := EncodeHeader(data, Header{ObjectID: id, Datalen: uint16(datalen), Opcode: opcode}); err != nil {
		return err
	}
	return m.Encode(data, fds)
}
