// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wire implements the Wayland wire format: the primitive value set
// of §4.A (int, uint, fixed, object, new_id, string, array, fd, enum), 4-byte
// alignment and padding, and the 8-byte message frame header of §4.B.
//
// Every read and write operates on a Cursor (bytes) and an FDCursor (out-of-
// band file descriptors) passed by the caller. Primitive functions never
// retain the slices they are given and, apart from the string readers
// (which copy into a new Go string), never allocate; on failure, the
// caller is responsible for restoring the cursor to its pre-call position
// (see Cursor.Snapshot/Restore) — the codec itself never leaves partial
// writes for the peer to observe.
package wire

// Cursor is a byte-slice position used for both reading and writing.
// Reads advance Pos past consumed bytes; writes advance Pos past produced
// bytes. Buf is never grown by the codec — callers size it up front.
type Cursor struct {
	Buf []byte
	Pos int
}

// Remaining returns the unread/unwritten tail of the cursor's buffer.
func (c *Cursor) Remaining() int { return len(c.Buf) - c.Pos }

// Snapshot captures the current position for a later Restore.
func (c *Cursor) Snapshot() int { return c.Pos }

// Restore resets the position to a value returned by Snapshot, undoing any
// partial progress made by a failed read or write.
func (c *Cursor) Restore(pos int) { c.Pos = pos }

// FDCursor is a position into a slice of file descriptors consumed or
// produced alongside a Cursor, mirroring how fd-typed fields travel
// out-of-band in the socket's ancillary data rather than in Buf.
type FDCursor struct {
	FDs []int
	Pos int
}

func (c *FDCursor) Remaining() int { return len(c.FDs) - c.Pos }

func (c *FDCursor) Snapshot() int { return c.Pos }

func (c *FDCursor) Restore(pos int) { c.Pos = pos }

// padTo4 returns the number of padding bytes needed to round n up to the
// next multiple of 4.
func padTo4(n int) int {
	return (4 - n%4) % 4
}
