// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ioengine

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock and ErrMore are re-exported from the teacher's own
// non-blocking-first vocabulary and drive recvOnce/sendOnce's internal
// retry loop inside DriveOnce: a recvmsg/sendmsg call that returns
// EAGAIN/EWOULDBLOCK without moving any bytes surfaces as ErrWouldBlock,
// and a call that filled its entire target buffer (recv) or fell short of
// draining everything queued (send) — meaning another call is likely to
// make progress immediately, without waiting on poll again — surfaces as
// ErrMore. Neither ever reaches a conn caller; DriveOnce consumes both.
var (
	ErrWouldBlock = iox.ErrWouldBlock
	ErrMore       = iox.ErrMore
)

// ErrClosed is returned once a direction has latched RecvClosed or
// SendClosed: a non-EWOULDBLOCK errno from recvmsg/sendmsg, or an orderly
// zero-byte close. It is terminal for that direction (spec §7, Transport
// error).
var ErrClosed = errors.New("ioengine: connection closed")

// ErrFDRingFull reports that a received SCM_RIGHTS control message carried
// more file descriptors than the rx FD ring has room for. The ring holds
// MaxFDSlots descriptors by default, while one recvmsg's control buffer has
// room for at most MaxFDsPerSendmsg, so the ring only fills when received
// fds are left unconsumed.
var ErrFDRingFull = errors.New("ioengine: rx fd ring exhausted")
