// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

// Fixed is a 24.8 signed fixed-point number: a sign bit, 23 bits of integer
// precision, and 8 bits of decimal precision, carried as a plain int32 on
// the wire. Treat it as opaque except through the conversions below.
type Fixed int32

// ToF64 converts to a float64.
func (f Fixed) ToF64() float64 {
	return float64(f) / 256.0
}

// FixedFromF64 converts d to a Fixed, scaling by 256 and truncating toward
// zero rather than rounding to the nearest 1/256th.
func FixedFromF64(d float64) Fixed {
	return Fixed(int32(d * 256))
}

// ToI32 truncates the fractional part and returns the integer part.
func (f Fixed) ToI32() int32 {
	return int32(f) / 256
}

// FixedFromI32 builds a Fixed with a zero fractional part.
func FixedFromI32(i int32) Fixed {
	return Fixed(i * 256)
}

// ReadFixed reads a 24.8 fixed-point value, advancing the cursor by 4 bytes.
func ReadFixed(c *Cursor) (Fixed, error) {
	v, err := ReadInt(c)
	return Fixed(v), err
}

// WriteFixed writes a 24.8 fixed-point value, advancing the cursor by 4 bytes.
func WriteFixed(c *Cursor, f Fixed) error {
	return WriteInt(c, int32(f))
}
