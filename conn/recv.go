// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conn

import (
	"context"
	"fmt"

	"code.hybscloud.com/wlconn/ioengine"
	"code.hybscloud.com/wlconn/registry"
	"code.hybscloud.com/wlconn/wire"
)

// errRetryRecv is recvLocked's internal signal that it released c.io.Mu
// without producing a frame for the caller's object — either because the
// buffered frame belongs to someone else, or because it arrived for an
// object nobody has registered (the reference implementation logs this
// case and hangs on the theory that a receiver may still show up; Recv
// reproduces that by parking on self, bounded only by ctx). Never
// returned to Recv's caller — Recv's loop converts it into a wait.
var errRetryRecv = fmt.Errorf("conn: retry recv")

// Recv blocks until a frame addressed to obj's ID has been fully received,
// decoding its header first and handing back the raw payload/fd slices
// for the caller to interpret with the matching generated Event type.
//
// While obj is not at the head of the cached header, Recv cooperatively
// drives the shared I/O engine on its behalf (spec §4.C/§4.E): any
// goroutine blocked in Recv or Send may end up performing the syscalls
// that satisfy someone else's wait.
func (c *Connection) Recv(ctx context.Context, obj *Object) (*Frame, error) {
	self := registry.NewTicket()
	for {
		if !c.io.Mu.TryLock() {
			c.reg.RegisterRecv(obj.id, self, obj.fdCount)
			if err := waitTicket(ctx, self); err != nil {
				return nil, err
			}
			continue
		}

		frame, err := c.recvLocked(ctx, obj, self)
		c.io.Mu.Unlock()
		switch {
		case err == errRetryRecv:
			// recvLocked already re-registered self as obj's receiver
			// before releasing the lock; park until something wakes it.
			if err := waitTicket(ctx, self); err != nil {
				return nil, err
			}
			continue
		case err != nil:
			return nil, err
		default:
			return frame, nil
		}
	}
}

// recvLocked runs the decode loop while c.io.Mu is held, returning either a
// completed frame or errRetryRecv once it has released the lock to park on
// self (having already arranged, via the registry, to be woken again).
func (c *Connection) recvLocked(ctx context.Context, obj *Object, self registry.Ticket) (*Frame, error) {
	for {
		if !c.io.RxHeaderHasValue {
			if c.io.Rx.Len() < wire.HeaderLen {
				if _, err := c.driveOrWait(ctx); err != nil {
					return nil, err
				}
				continue
			}
			hdr, err := wire.DecodeHeader(&wire.Cursor{Buf: c.io.Rx.Occupied()[:wire.HeaderLen]})
			if err != nil {
				return nil, err
			}
			c.io.Rx.Advance(wire.HeaderLen)
			c.io.RxHeader = hdr
			c.io.RxHeaderHasValue = true
			continue
		}

		hdr := c.io.RxHeader
		payloadLen := hdr.PayloadLen()

		if hdr.ObjectID == obj.id {
			fdCount, ok := obj.fdCount(hdr.Opcode)
			if !ok {
				return nil, fmt.Errorf("conn: invalid opcode %d for object %d", hdr.Opcode, hdr.ObjectID)
			}
			if c.io.Rx.Len() < payloadLen || c.io.RxFD.Len() < fdCount {
				if _, err := c.driveOrWait(ctx); err != nil {
					return nil, err
				}
				continue
			}

			frame := &Frame{
				Header: hdr,
				Data:   append([]byte(nil), c.io.Rx.Occupied()[:payloadLen]...),
				FDs:    append([]int(nil), c.io.RxFD.Occupied()[:fdCount]...),
			}
			c.io.Rx.Advance(payloadLen)
			c.io.RxFD.Advance(fdCount)
			c.io.RxHeaderHasValue = false

			c.reg.RegisterRecv(obj.id, self, obj.fdCount)
			c.reg.WakeRecver(self)
			return frame, nil
		}

		fdCount, ok := c.reg.FDCount(hdr.ObjectID)
		if !ok {
			c.log.Debug().
				Uint32("object_id", uint32(hdr.ObjectID)).
				Uint16("opcode", hdr.Opcode).
				Msg("conn: frame addressed to unknown object, connection may be stuck")
			c.reg.RegisterRecv(obj.id, self, obj.fdCount)
			return nil, errRetryRecv
		}
		n, ok := fdCount(hdr.Opcode)
		if !ok {
			return nil, fmt.Errorf("conn: invalid opcode %d for object %d", hdr.Opcode, hdr.ObjectID)
		}
		if c.io.Rx.Len() < payloadLen || c.io.RxFD.Len() < n {
			if _, err := c.driveOrWait(ctx); err != nil {
				return nil, err
			}
			continue
		}

		// The frame is fully buffered but addressed elsewhere: leave it in
		// the ring untouched, wake that object's receiver, and park.
		c.reg.WakeRecver(self)
		c.reg.RegisterRecv(obj.id, self, obj.fdCount)
		return nil, errRetryRecv
	}
}

// driveOrWait runs one ioengine scheduling round. It reports (true, nil)
// if progress was made and the caller should re-check buffered state, or
// surfaces a transport error.
func (c *Connection) driveOrWait(ctx context.Context) (bool, error) {
	progressed, err := c.io.DriveOnce(ctx)
	if err == ioengine.ErrClosed {
		return false, err
	}
	return progressed, err
}
