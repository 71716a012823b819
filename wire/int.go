// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import "code.hybscloud.com/wlconn/internal/bo"

// ReadInt reads a signed 32-bit int at the cursor's native byte order.
func ReadInt(c *Cursor) (int32, error) {
	v, err := ReadUint(c)
	return int32(v), err
}

// WriteInt writes a signed 32-bit int, advancing the cursor by 4 bytes.
func WriteInt(c *Cursor, v int32) error {
	return WriteUint(c, uint32(v))
}

// ReadUint reads an unsigned 32-bit int at the cursor's native byte order.
func ReadUint(c *Cursor) (uint32, error) {
	if c.Remaining() < 4 {
		return 0, ErrImplementation
	}
	v := bo.Native().Uint32(c.Buf[c.Pos : c.Pos+4])
	c.Pos += 4
	return v, nil
}

// WriteUint writes an unsigned 32-bit int, advancing the cursor by 4 bytes.
func WriteUint(c *Cursor, v uint32) error {
	if c.Remaining() < 4 {
		return ErrImplementation
	}
	bo.Native().PutUint32(c.Buf[c.Pos:c.Pos+4], v)
	c.Pos += 4
	return nil
}
