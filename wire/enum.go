// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

// Enum is a uint with a restricted value set on the wire. Bitfield enums
// store the flag combination raw and never reject a value; plain enum types
// expose EnumValue.Valid so callers can check a value against the known set.
type Enum uint32

// ReadEnum reads the raw 4-byte value without validating it; callers that
// need validation call EnumValue.Valid on the typed value (the wlcore
// decoders store the raw value unchecked).
func ReadEnum(c *Cursor) (Enum, error) {
	v, err := ReadUint(c)
	return Enum(v), err
}

// WriteEnum writes the raw 4-byte value.
func WriteEnum(c *Cursor, e Enum) error {
	return WriteUint(c, uint32(e))
}

// EnumValue is implemented by generated enum types to support the
// bidirectional u32 conversion and since_version accessor of §4.F.
type EnumValue interface {
	// Valid reports whether the enum instance is a known member (always
	// true for bitfield enums, which accept any raw combination).
	Valid() bool
	// SinceVersion returns the protocol version that introduced this entry.
	SinceVersion() uint32
}
