// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

// HeaderLen is the fixed size, in bytes, of every frame header.
const HeaderLen = 8

// MaxFrameLen is the largest frame (header + payload) the wire format can
// express in the 16-bit datalen field, and the size budget the duplex ring
// buffers are provisioned for (see ioengine).
const MaxFrameLen = 1<<16 - 1

// Header is the 8-byte prefix of every Wayland frame: object_id, and a
// combined datalen|opcode word. datalen is the TOTAL frame size including
// this header — the payload length is datalen-8.
type Header struct {
	ObjectID ObjectID
	Datalen  uint16
	Opcode   uint16
}

// PayloadLen returns the payload length implied by Datalen.
func (h Header) PayloadLen() int {
	return int(h.Datalen) - HeaderLen
}

// DecodeHeader parses a Header from the cursor. It does not validate
// ObjectID or Opcode against any schema — that is the caller's job once it
// knows which interface the frame addresses.
func DecodeHeader(c *Cursor) (Header, error) {
	id, err := ReadUint(c)
	if err != nil {
		return Header{}, err
	}
	combined, err := ReadUint(c)
	if err != nil {
		return Header{}, err
	}
	return Header{
		ObjectID: ObjectID(id),
		Datalen:  uint16(combined >> 16),
		Opcode:   uint16(combined & 0xffff),
	}, nil
}

// EncodeHeader writes a Header. Writers should compute Datalen from the
// payload's encoded length plus HeaderLen before calling this.
func EncodeHeader(c *Cursor, h Header) error {
	if err := WriteUint(c, uint32(h.ObjectID)); err != nil {
		return err
	}
	combined := uint32(h.Datalen)<<16 | uint32(h.Opcode)
	return WriteUint(c, combined)
}
