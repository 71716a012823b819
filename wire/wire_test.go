// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire_test

import (
	"testing"
	"unsafe"

	"code.hybscloud.com/wlconn/wire"
)

func TestIntRoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 1 << 30, -(1 << 30), 2147483647, -2147483648}
	for _, v := range values {
		buf := make([]byte, 4)
		c := &wire.Cursor{Buf: buf}
		if err := wire.WriteInt(c, v); err != nil {
			t.Fatalf("write(%d): %v", v, err)
		}
		if c.Pos != 4 {
			t.Fatalf("write(%d): cursor advanced %d bytes, want 4", v, c.Pos)
		}
		c2 := &wire.Cursor{Buf: buf}
		got, err := wire.ReadInt(c2)
		if err != nil {
			t.Fatalf("read back %d: %v", v, err)
		}
		if got != v {
			t.Fatalf("round trip: got %d, want %d", got, v)
		}
	}
}

func TestUintRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 0xffffffff, 0x80000000, 12345}
	for _, v := range values {
		buf := make([]byte, 4)
		c := &wire.Cursor{Buf: buf}
		if err := wire.WriteUint(c, v); err != nil {
			t.Fatalf("write(%d): %v", v, err)
		}
		c2 := &wire.Cursor{Buf: buf}
		got, err := wire.ReadUint(c2)
		if err != nil || got != v {
			t.Fatalf("round trip(%d): got (%d, %v)", v, got, err)
		}
	}
}

func TestFixedConversions(t *testing.T) {
	f := wire.FixedFromI32(5)
	if got := f.ToI32(); got != 5 {
		t.Fatalf("ToI32 after FromI32(5) = %d, want 5", got)
	}
	if got := wire.Fixed(256 * 3).ToF64(); got != 3.0 {
		t.Fatalf("ToF64(768) = %v, want 3.0", got)
	}
}

// TestStringPadding covers scenario 2 and 3 of spec §8: encoding a string
// whose length is already a multiple of 4 after the NUL, and one that
// isn't.
func TestStringPadding(t *testing.T) {
	t.Run("length 4 including NUL, no extra padding", func(t *testing.T) {
		buf := make([]byte, 8)
		c := &wire.Cursor{Buf: buf}
		if err := wire.WriteString(c, "wl_"); err != nil {
			t.Fatal(err)
		}
		want := []byte{4, 0, 0, 0, 'w', 'l', '_', 0}
		assertBytesNative(t, buf, want)
	})

	t.Run("length 3, one explicit pad byte", func(t *testing.T) {
		buf := make([]byte, 8)
		c := &wire.Cursor{Buf: buf}
		if err := wire.WriteString(c, "hi"); err != nil {
			t.Fatal(err)
		}
		want := []byte{3, 0, 0, 0, 'h', 'i', 0, 0}
		assertBytesNative(t, buf, want)
	})
}

func TestStringRoundTrip(t *testing.T) {
	values := []string{"", "a", "hi", "wl_display", "a long protocol interface name"}
	for _, s := range values {
		n := wire.StringLen(s)
		buf := make([]byte, n)
		c := &wire.Cursor{Buf: buf}
		if err := wire.WriteString(c, s); err != nil {
			t.Fatalf("write(%q): %v", s, err)
		}
		if uint32(c.Pos) != n {
			t.Fatalf("write(%q): advanced %d, want %d", s, c.Pos, n)
		}
		c2 := &wire.Cursor{Buf: buf}
		got, err := wire.ReadString(c2)
		if err != nil || got != s {
			t.Fatalf("round trip(%q): got (%q, %v)", s, got, err)
		}
		// Padding bytes are zero.
		for i := 4 + len(s) + 1; i < len(buf); i++ {
			if buf[i] != 0 {
				t.Fatalf("pad byte %d of %q not zero", i, s)
			}
		}
	}
}

func TestReadStringEmptyIsProtocolError(t *testing.T) {
	buf := []byte{0, 0, 0, 0}
	c := &wire.Cursor{Buf: buf}
	if _, err := wire.ReadString(c); err != wire.ErrInvalidMethod {
		t.Fatalf("ReadString(empty) = %v, want ErrInvalidMethod", err)
	}
}

func TestOptionalObjectNull(t *testing.T) {
	buf := make([]byte, 4)
	c := &wire.Cursor{Buf: buf}
	if err := wire.WriteOptionalObject(c, 0, false); err != nil {
		t.Fatal(err)
	}
	want := []byte{0, 0, 0, 0}
	assertBytesNative(t, buf, want)

	c2 := &wire.Cursor{Buf: buf}
	id, ok, err := wire.ReadOptionalObject(c2)
	if err != nil || ok || id != 0 {
		t.Fatalf("ReadOptionalObject(null) = (%d, %v, %v), want (0, false, nil)", id, ok, err)
	}
}

func TestRequiredObjectNullIsProtocolError(t *testing.T) {
	buf := []byte{0, 0, 0, 0}
	c := &wire.Cursor{Buf: buf}
	if _, err := wire.ReadObject(c); err != wire.ErrInvalidMethod {
		t.Fatalf("ReadObject(null) = %v, want ErrInvalidMethod", err)
	}
}

func TestNewIDZeroIsProtocolError(t *testing.T) {
	buf := []byte{0, 0, 0, 0}
	c := &wire.Cursor{Buf: buf}
	if _, err := wire.ReadNewID(c); err != wire.ErrInvalidMethod {
		t.Fatalf("ReadNewID(0) = %v, want ErrInvalidMethod", err)
	}
}

func TestArrayRoundTripAndPadding(t *testing.T) {
	values := [][]byte{nil, {1}, {1, 2, 3}, {1, 2, 3, 4}, {1, 2, 3, 4, 5}}
	for _, v := range values {
		n := wire.ArrayLen(v)
		buf := make([]byte, n)
		c := &wire.Cursor{Buf: buf}
		if err := wire.WriteArray(c, v); err != nil {
			t.Fatalf("write(%v): %v", v, err)
		}
		c2 := &wire.Cursor{Buf: buf}
		got, err := wire.ReadArray(c2)
		if err != nil {
			t.Fatalf("read back %v: %v", v, err)
		}
		if len(got) != len(v) {
			t.Fatalf("round trip %v: got len %d", v, len(got))
		}
		for i := 4 + len(v); i < len(buf); i++ {
			if buf[i] != 0 {
				t.Fatalf("pad byte %d of %v not zero", i, v)
			}
		}
	}
}

func TestFDAccounting(t *testing.T) {
	fc := &wire.FDCursor{FDs: []int{11, 22, 33}}
	for _, want := range []int{11, 22, 33} {
		got, err := wire.ReadFd(fc)
		if err != nil || got != want {
			t.Fatalf("ReadFd() = (%d, %v), want (%d, nil)", got, err, want)
		}
	}
	if _, err := wire.ReadFd(fc); err != wire.ErrImplementation {
		t.Fatalf("ReadFd() past end = %v, want ErrImplementation", err)
	}
}

// TestCursorRestoreOnFailure checks that after a failed write, which may
// leave the cursor advanced, Restore returns it to the snapshot position;
// per §4.A's failure policy the codec does not roll back on its own.
func TestCursorRestoreOnFailure(t *testing.T) {
	buf := make([]byte, 4)
	c := &wire.Cursor{Buf: buf}
	snap := c.Snapshot()
	if err := wire.WriteString(c, "too long for this buffer"); err == nil {
		t.Fatal("expected error writing oversized string into a 4-byte buffer")
	}
	c.Restore(snap)
	if c.Pos != snap {
		t.Fatalf("cursor not restored: pos=%d want %d", c.Pos, snap)
	}
}

func assertBytesNative(t *testing.T, got, wantLE []byte) {
	t.Helper()
	// The test vectors in spec §8 are written little-endian, matching the
	// vast majority of real hosts this runs on; on a big-endian host, the
	// 4-byte length/id words would be byte-reversed while payload bytes
	// stay put, so only compare directly when running little-endian.
	if !isLittleEndianHost() {
		t.Skip("test vector is little-endian; skipping on big-endian host")
	}
	if len(got) != len(wantLE) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(wantLE))
	}
	for i := range got {
		if got[i] != wantLE[i] {
			t.Fatalf("byte %d: got %#x, want %#x (got=%v want=%v)", i, got[i], wantLE[i], got, wantLE)
		}
	}
}

func isLittleEndianHost() bool {
	var x uint16 = 1
	return (*(*[2]byte)(unsafe.Pointer(&x)))[0] == 1
}
