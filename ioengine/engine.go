// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ioengine

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"code.hybscloud.com/wlconn/wire"
)

// WaylandMaxFrame is 64 KiB, one byte more than the largest single Wayland
// frame (header + payload) the wire format's 16-bit datalen field can
// express (wire.MaxFrameLen).
const WaylandMaxFrame = 1 << 16

// MaxData sizes each direction's byte ring so at least one full-sized
// frame always fits after a compaction, per spec §4.C's maximum-frame
// guarantee.
const MaxData = WaylandMaxFrame * 4

// MaxFDSlots sizes each direction's FD ring.
const MaxFDSlots = 1024

// MaxFDsPerSendmsg caps how many FDs a single sendmsg call may carry, the
// same conservative bound the reference implementation uses (a Linux
// SCM_RIGHTS control message has a kernel-imposed practical ceiling well
// below SCM_MAX_FD on most systems).
const MaxFDsPerSendmsg = 252

// Io is the shared, single-locked I/O state of spec §4.C/§5: two duplex
// ring pairs, the cached rx header, the interest mask, and the socket fd.
// Only the holder of Mu may mutate the fields below it — callers use
// Mu.TryLock()/Lock() directly, mirroring the "try_lock semantics
// throughout" resource model of spec §5.
type Io struct {
	Mu sync.Mutex

	fd int

	Tx   *Ring
	TxFD *FDRing
	Rx   *Ring
	RxFD *FDRing

	Interest Interest

	// RxHeader caches an already-parsed-but-not-yet-consumed frame header
	// across scheduling rounds, shared by every object's Recv so whichever
	// one holds the lock next can see it without re-parsing (spec §4.B).
	// The wire package (not ioengine) owns parsing it; ioengine only
	// stores what callers put here.
	RxHeader         wire.Header
	RxHeaderHasValue bool
	pollTimeout      time.Duration
	maxFDsPerSendmsg int
	log              zerolog.Logger
}

// Tuning holds the runtime-adjustable knobs of an Io; a zero Tuning means
// "use the built-in defaults" field by field, so callers only need to set
// the fields they actually want to override.
type Tuning struct {
	// RingBytes sizes each direction's byte ring. Zero means MaxData.
	RingBytes int
	// FDSlots sizes each direction's FD ring. Zero means MaxFDSlots.
	FDSlots int
	// MaxFDsPerSendmsg caps FDs attached to a single sendmsg call. Zero
	// means MaxFDsPerSendmsg.
	MaxFDsPerSendmsg int
	// PollTimeout bounds how long a single poll() call may block waiting
	// for readiness before DriveOnce rechecks ctx. Zero means 50ms.
	PollTimeout time.Duration
}

// New constructs an Io over an already-connected, non-blocking socket fd,
// using the built-in default tuning.
func New(fd int, log zerolog.Logger) *Io {
	return NewTuned(fd, log, Tuning{})
}

// NewTuned constructs an Io with ring sizes, FD caps, and poll timeout
// pulled from t, falling back to the package defaults for any zero field —
// the hook wlconfig uses to apply file/env overrides onto a connection.
func NewTuned(fd int, log zerolog.Logger, t Tuning) *Io {
	ringBytes := t.RingBytes
	if ringBytes == 0 {
		ringBytes = MaxData
	}
	fdSlots := t.FDSlots
	if fdSlots == 0 {
		fdSlots = MaxFDSlots
	}
	maxFDs := t.MaxFDsPerSendmsg
	if maxFDs == 0 {
		maxFDs = MaxFDsPerSendmsg
	}
	pollTimeout := t.PollTimeout
	if pollTimeout == 0 {
		pollTimeout = 50 * time.Millisecond
	}
	return &Io{
		fd:               fd,
		Tx:               NewRing(ringBytes),
		TxFD:             NewFDRing(fdSlots),
		Rx:               NewRing(ringBytes),
		RxFD:             NewFDRing(fdSlots),
		Interest:         Recv,
		pollTimeout:      pollTimeout,
		maxFDsPerSendmsg: maxFDs,
		log:              log,
	}
}

// FD returns the underlying socket descriptor.
func (io *Io) FD() int { return io.fd }

// Close shuts the socket down; pending recv/send callers observe ErrClosed
// on their next poll.
func (io *Io) Close() error {
	io.Interest.Set(RecvClosed | SendClosed)
	return unix.Close(io.fd)
}

// DriveOnce runs one scheduling round: it polls for readiness, then drains
// at most one recvmsg and one sendmsg pass, advancing the rings and
// updating Interest. It returns whether either direction made progress.
// The caller must hold Mu.
//
// recvOnce/sendOnce surface ErrWouldBlock/ErrMore rather than a plain
// bool: DriveOnce treats ErrWouldBlock as "nothing to do this round" and
// loops straight back into the same direction on ErrMore instead of
// returning to poll again, since a filled-to-capacity recv or a
// short send both mean the socket is very likely still ready without
// needing another poll syscall to confirm it.
func (io *Io) DriveOnce(ctx context.Context) (progressed bool, err error) {
	want := io.wantEvents()
	if want == 0 {
		if io.Interest.Has(RecvClosed) || io.Interest.Has(SendClosed) {
			return false, ErrClosed
		}
		return false, nil
	}

	ready, err := io.poll(ctx, want)
	if err != nil {
		return false, err
	}

	if ready&unix.POLLIN != 0 {
		for {
			p, err := io.recvOnce()
			progressed = progressed || p
			switch err {
			case nil, ErrWouldBlock:
			case ErrMore:
				continue
			default:
				return progressed, err
			}
			break
		}
	}
	if ready&unix.POLLOUT != 0 {
		for {
			p, err := io.sendOnce()
			progressed = progressed || p
			switch err {
			case nil, ErrWouldBlock:
			case ErrMore:
				continue
			default:
				return progressed, err
			}
			break
		}
	}
	return progressed, nil
}

func (io *Io) wantEvents() (events int16) {
	if io.Interest.Has(Recv) && !io.Interest.Has(RecvClosed) {
		events |= unix.POLLIN
	}
	if io.Interest.Has(Send) && !io.Interest.Has(SendClosed) {
		events |= unix.POLLOUT
	}
	return events
}

func (io *Io) poll(ctx context.Context, events int16) (int16, error) {
	fds := []unix.PollFd{{Fd: int32(io.fd), Events: events}}
	timeoutMs := int(io.pollTimeout / time.Millisecond)
	for {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			default:
			}
		}
		n, err := unix.Poll(fds, timeoutMs)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, err
		}
		if n == 0 {
			if ctx == nil {
				return 0, nil
			}
			continue
		}
		return fds[0].Revents, nil
	}
}

// recvOnce performs one recvmsg call into the rx ring's free tail,
// extracting any SCM_RIGHTS payload into the rx FD ring. It reports
// ErrWouldBlock if the syscall made no progress, or ErrMore if it filled
// the entire target buffer — the kernel may well have more queued.
func (io *Io) recvOnce() (bool, error) {
	if !io.Rx.Reserve(WaylandMaxFrame) {
		// The rx ring is still full of an unconsumed frame the owning
		// object hasn't drained yet; nothing to do until it does.
		return false, nil
	}
	buf := io.Rx.FreeAtTail()
	oob := make([]byte, unix.CmsgSpace(4*io.maxFDsPerSendmsg))

	n, oobn, _, _, err := unix.Recvmsg(io.fd, buf, oob, unix.MSG_DONTWAIT)
	if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
		io.Interest.Clear(Recv)
		return false, ErrWouldBlock
	}
	if err != nil {
		io.Interest.Set(RecvClosed)
		return false, ErrClosed
	}
	if n == 0 {
		io.Interest.Set(RecvClosed)
		return false, ErrClosed
	}
	io.Rx.Grow(n)

	if oobn > 0 {
		if err := io.absorbControlMessages(oob[:oobn]); err != nil {
			return true, err
		}
	}
	if n == len(buf) {
		return true, ErrMore
	}
	return true, nil
}

func (io *Io) absorbControlMessages(oob []byte) error {
	msgs, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		io.log.Warn().Err(err).Msg("ioengine: failed to parse control message")
		return nil
	}
	gotRights := false
	for _, msg := range msgs {
		if msg.Header.Level != unix.SOL_SOCKET || msg.Header.Type != unix.SCM_RIGHTS {
			io.log.Warn().Int32("level", msg.Header.Level).Int32("type", msg.Header.Type).
				Msg("ioengine: discarding foreign control message")
			continue
		}
		rights, err := unix.ParseUnixRights(&msg)
		if err != nil {
			io.log.Warn().Err(err).Msg("ioengine: failed to parse SCM_RIGHTS")
			continue
		}
		if gotRights {
			io.log.Warn().Int("count", len(rights)).Msg("ioengine: discarding duplicate SCM_RIGHTS")
			for _, fd := range rights {
				unix.Close(fd)
			}
			continue
		}
		gotRights = true
		if !io.RxFD.Push(rights) {
			for _, fd := range rights {
				unix.Close(fd)
			}
			return ErrFDRingFull
		}
	}
	return nil
}

// sendOnce performs one sendmsg call from the tx ring's occupied region,
// attaching up to MaxFDsPerSendmsg queued FDs as SCM_RIGHTS. It reports
// ErrWouldBlock if the syscall made no progress, or ErrMore on a short
// write — the tx ring still holds bytes a follow-up sendmsg is likely to
// accept right away.
func (io *Io) sendOnce() (bool, error) {
	data := io.Tx.Occupied()
	if len(data) == 0 {
		io.Interest.Clear(Send)
		return false, nil
	}

	fds := io.TxFD.Occupied()
	if len(fds) > io.maxFDsPerSendmsg {
		fds = fds[:io.maxFDsPerSendmsg]
	}
	var oob []byte
	if len(fds) > 0 {
		oob = unix.UnixRights(fds...)
	}

	n, err := unix.Sendmsg(io.fd, data, oob, nil, unix.MSG_DONTWAIT)
	if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
		io.Interest.Clear(Send)
		return false, ErrWouldBlock
	}
	if err != nil {
		io.Interest.Set(SendClosed)
		return false, ErrClosed
	}
	if n == 0 && len(data) > 0 {
		io.Interest.Set(SendClosed)
		return false, ErrClosed
	}

	io.Tx.Advance(n)
	if len(fds) > 0 {
		io.TxFD.Advance(len(fds))
	}
	if n < len(data) {
		return true, ErrMore
	}
	return true, nil
}
