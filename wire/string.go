// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

// StringLen returns the encoded length of s including its header, NUL
// terminator, and padding to the next 4-byte boundary.
func StringLen(s string) uint32 {
	n := len(s) + 1 // trailing NUL
	return 4 + uint32(n+padTo4(n))
}

// ArrayLen returns the encoded length of a byte array including its header
// and padding to the next 4-byte boundary.
func ArrayLen(data []byte) uint32 {
	n := len(data)
	return 4 + uint32(n+padTo4(n))
}

// ReadString reads a length-prefixed, null-terminated string padded to a
// 4-byte boundary. A length of 0 in this (non-nullable) position is a
// protocol error; use ReadOptionalString where the schema allows null.
func ReadString(c *Cursor) (string, error) {
	s, ok, err := readStringData(c)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidMethod
	}
	return s, nil
}

// WriteString writes a required string field. The value is encoded with an
// explicit trailing NUL; the NUL and any pad bytes are written as zeros,
// whatever the buffer held before.
func WriteString(c *Cursor, s string) error {
	return writeStringData(c, s, true)
}

// ReadOptionalString reads a string field that may be null (wire length 0).
func ReadOptionalString(c *Cursor) (s string, ok bool, err error) {
	return readStringData(c)
}

// WriteOptionalString writes an optional string; ok=false writes the null
// encoding (a single zero length word, no payload).
func WriteOptionalString(c *Cursor, s string, ok bool) error {
	return writeStringData(c, s, ok)
}

func readStringData(c *Cursor) (s string, ok bool, err error) {
	n, err := ReadUint(c)
	if err != nil {
		return "", false, err
	}
	if n == 0 {
		return "", false, nil
	}
	total := int(n) + padTo4(int(n))
	if c.Remaining() < total {
		return "", false, ErrImplementation
	}
	raw := c.Buf[c.Pos : c.Pos+int(n)]
	c.Pos += total
	if len(raw) == 0 || raw[len(raw)-1] != 0 {
		return "", false, ErrInvalidMethod
	}
	return string(raw[:len(raw)-1]), true, nil
}

func writeStringData(c *Cursor, s string, ok bool) error {
	if !ok {
		return WriteUint(c, 0)
	}
	n := len(s) + 1
	if err := WriteUint(c, uint32(n)); err != nil {
		return err
	}
	pad := padTo4(n)
	total := n + pad
	if c.Remaining() < total {
		return ErrImplementation
	}
	copy(c.Buf[c.Pos:c.Pos+len(s)], s)
	// Zero the NUL terminator and any padding explicitly — callers that
	// hold an un-NUL-terminated Go string rely on this region being zero
	// to supply the terminator.
	for i := len(s); i < total; i++ {
		c.Buf[c.Pos+i] = 0
	}
	c.Pos += total
	return nil
}

// ReadArray reads a length-prefixed byte array padded to a 4-byte boundary.
// The returned slice aliases the cursor's buffer and is valid only until
// the next write into it.
func ReadArray(c *Cursor) ([]byte, error) {
	n, err := ReadUint(c)
	if err != nil {
		return nil, err
	}
	total := int(n) + padTo4(int(n))
	if c.Remaining() < total {
		return nil, ErrImplementation
	}
	data := c.Buf[c.Pos : c.Pos+int(n)]
	c.Pos += total
	return data, nil
}

// WriteArray writes a length-prefixed byte array, zeroing the pad region.
func WriteArray(c *Cursor, data []byte) error {
	n := len(data)
	if err := WriteUint(c, uint32(n)); err != nil {
		return err
	}
	pad := padTo4(n)
	total := n + pad
	if c.Remaining() < total {
		return ErrImplementation
	}
	copy(c.Buf[c.Pos:c.Pos+n], data)
	for i := n; i < total; i++ {
		c.Buf[c.Pos+i] = 0
	}
	c.Pos += total
	return nil
}
