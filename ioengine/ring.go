// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ioengine implements the ring-buffered duplex transport of spec
// §4.C: two independent rings per direction (payload bytes and file
// descriptors) driven by sendmsg/recvmsg with SCM_RIGHTS ancillary data,
// backed by golang.org/x/sys/unix.
//
// The rings here resolve the "buffer sharing across frames with ragged
// alignment" open question by always keeping the occupied region
// contiguous: instead of a zero-copy wrap-around cursor pair, Ring compacts
// (memmoves the occupied bytes to offset 0) whenever free space at the tail
// runs out but total free space would suffice. This trades a bounded extra
// copy — amortized, since compaction only happens when the tail is full —
// for a codec that never has to special-case a frame body spanning the
// wrap, matching the "must compact before the next recvmsg" rule of §4.C's
// maximum-frame guarantee.
package ioengine

// Ring is a byte FIFO with a fixed-capacity backing array.
type Ring struct {
	buf        []byte
	start, end int
}

// NewRing allocates a ring with the given byte capacity.
func NewRing(capacity int) *Ring {
	return &Ring{buf: make([]byte, capacity)}
}

// Len returns the number of occupied bytes.
func (r *Ring) Len() int { return r.end - r.start }

// Cap returns the ring's total capacity.
func (r *Ring) Cap() int { return len(r.buf) }

// Occupied returns the contiguous occupied region. The slice is only valid
// until the next call that mutates the ring.
func (r *Ring) Occupied() []byte { return r.buf[r.start:r.end] }

// Advance drops the first n occupied bytes (they have been consumed by the
// caller, e.g. handed off as a decoded message or flushed to the socket).
func (r *Ring) Advance(n int) {
	r.start += n
	if r.start == r.end {
		r.start, r.end = 0, 0
	}
}

// Reserve ensures n bytes of contiguous free space exist at the tail,
// compacting in place if necessary. It reports false if the ring's total
// capacity cannot hold n bytes even after compaction — the caller must
// drain more before retrying (spec §4.C step 3: "caller must drive I/O and
// retry").
func (r *Ring) Reserve(n int) bool {
	if len(r.buf)-r.end >= n {
		return true
	}
	if len(r.buf)-r.Len() < n {
		return false
	}
	copy(r.buf, r.buf[r.start:r.end])
	r.end -= r.start
	r.start = 0
	return len(r.buf)-r.end >= n
}

// FreeAtTail returns the contiguous free region at the tail, usable as a
// recvmsg iovec target. Call Reserve first if more room is needed than is
// currently free without compaction.
func (r *Ring) FreeAtTail() []byte { return r.buf[r.end:] }

// Grow records that n bytes were written into the slice returned by
// FreeAtTail (e.g. by a successful recvmsg).
func (r *Ring) Grow(n int) { r.end += n }

// Push copies data into the ring, reserving room first. It returns false
// (writing nothing) if there is not enough total capacity.
func (r *Ring) Push(data []byte) bool {
	if !r.Reserve(len(data)) {
		return false
	}
	copy(r.buf[r.end:], data)
	r.end += len(data)
	return true
}

// Encoders stage an entire message into the slice returned by FreeAtTail
// before calling Grow, rather than writing field-by-field straight into the
// ring and rolling back on failure: Reserve(total) is called once for the
// whole frame, the codec writes into that exact-sized slice (so it can only
// fail for schema reasons, never for lack of room), and Grow only commits
// once encoding the full message succeeded. A failed encode therefore never
// needs the ring rolled back — nothing was ever appended to it.
