// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ioengine

// FDRing is a FIFO of file descriptors, mirroring Ring's compacting
// contiguous-occupied-region design at int granularity.
type FDRing struct {
	fds        []int
	start, end int
}

// NewFDRing allocates an FD ring with the given slot capacity.
func NewFDRing(capacity int) *FDRing {
	return &FDRing{fds: make([]int, capacity)}
}

func (r *FDRing) Len() int { return r.end - r.start }
func (r *FDRing) Cap() int { return len(r.fds) }

// Occupied returns the contiguous occupied region.
func (r *FDRing) Occupied() []int { return r.fds[r.start:r.end] }

// Advance drops the first n occupied FDs.
func (r *FDRing) Advance(n int) {
	r.start += n
	if r.start == r.end {
		r.start, r.end = 0, 0
	}
}

// Reserve ensures n free slots at the tail, compacting if necessary.
func (r *FDRing) Reserve(n int) bool {
	if len(r.fds)-r.end >= n {
		return true
	}
	if len(r.fds)-r.Len() < n {
		return false
	}
	copy(r.fds, r.fds[r.start:r.end])
	r.end -= r.start
	r.start = 0
	return len(r.fds)-r.end >= n
}

// FreeAtTail returns the contiguous free region at the tail.
func (r *FDRing) FreeAtTail() []int { return r.fds[r.end:] }

// Grow records that n FDs were written into the slice returned by
// FreeAtTail.
func (r *FDRing) Grow(n int) { r.end += n }

// Push appends fds, reserving room first.
func (r *FDRing) Push(fds []int) bool {
	if !r.Reserve(len(fds)) {
		return false
	}
	copy(r.fds[r.end:], fds)
	r.end += len(fds)
	return true
}
