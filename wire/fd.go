// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import "golang.org/x/sys/unix"

// ReadFd consumes one file descriptor from the FD cursor. It contributes
// zero bytes to the in-band payload — fds travel in the socket's SCM_RIGHTS
// ancillary data, already demultiplexed into fc by the transport layer.
func ReadFd(fc *FDCursor) (int, error) {
	if fc.Remaining() < 1 {
		return -1, ErrImplementation
	}
	fd := fc.FDs[fc.Pos]
	fc.Pos++
	return fd, nil
}

// WriteFd enqueues a duplicate of fd onto the FD cursor; the caller retains
// ownership of fd itself. Duplication failure is reported as
// ErrImplementation (resource exhaustion, per spec §7).
func WriteFd(fc *FDCursor, fd int) error {
	dup, err := unix.Dup(fd)
	if err != nil {
		return ErrImplementation
	}
	if fc.Remaining() < 1 {
		unix.Close(dup)
		return ErrImplementation
	}
	fc.FDs[fc.Pos] = dup
	fc.Pos++
	return nil
}
