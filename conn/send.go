// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conn

import (
	"context"

	"code.hybscloud.com/wlconn/ioengine"
	"code.hybscloud.com/wlconn/registry"
	"code.hybscloud.com/wlconn/wire"
)

// Send encodes msg as a frame addressed to obj and queues it on the shared
// tx ring. If no other sender is waiting, Send also drives the socket
// itself until the tx ring drains — the reference design's "last sender
// flushes" rule, so a single isolated request doesn't linger unsent
// waiting for a Flush call that may never come.
func (c *Connection) Send(ctx context.Context, obj *Object, opcode uint16, msg wire.Message) error {
	self := registry.NewTicket()

	if err := c.encodeLocked(ctx, obj, opcode, msg, self); err != nil {
		return err
	}

	if c.reg.WakeSender() {
		c.reg.WakeRecver(self)
		return nil
	}
	return c.drainTx(ctx, self)
}

func (c *Connection) encodeLocked(ctx context.Context, obj *Object, opcode uint16, msg wire.Message, self registry.Ticket) error {
	for {
		if !c.io.Mu.TryLock() {
			c.reg.RegisterSendLocked(self)
			if err := waitTicket(ctx, self); err != nil {
				return err
			}
			continue
		}

		if c.io.Interest.Has(ioengine.SendClosed) {
			c.io.Mu.Unlock()
			// The peer has gone away. Per spec §7 this is terminal for the
			// send direction, but we still let a queued sender behind us
			// run so pending error events on the recv side get a chance
			// to be observed before everyone gives up.
			c.reg.WakeSender()
			return ioengine.ErrClosed
		}

		total := wire.HeaderLen + int(msg.Len())
		if !c.io.Tx.Reserve(total) {
			if _, err := c.driveLocked(ctx); err != nil {
				c.io.Mu.Unlock()
				return err
			}
			c.io.Mu.Unlock()
			continue
		}

		fdCount := msg.FDCount()
		if !c.io.TxFD.Reserve(fdCount) {
			if _, err := c.driveLocked(ctx); err != nil {
				c.io.Mu.Unlock()
				return err
			}
			c.io.Mu.Unlock()
			continue
		}

		data := &wire.Cursor{Buf: c.io.Tx.FreeAtTail()[:total]}
		fds := &wire.FDCursor{FDs: c.io.TxFD.FreeAtTail()[:fdCount]}
		if err := wire.EncodeMessage(data, fds, obj.id, opcode, msg); err != nil {
			c.io.Mu.Unlock()
			return err
		}

		c.io.Tx.Grow(total)
		c.io.TxFD.Grow(fdCount)
		c.io.Interest.Set(ioengine.Send)
		c.io.Mu.Unlock()
		return nil
	}
}

// drainTx drives the socket until the tx ring is empty, the role the last
// queued sender plays so a lone Send doesn't need an explicit Flush.
func (c *Connection) drainTx(ctx context.Context, self registry.Ticket) error {
	for {
		if !c.io.Mu.TryLock() {
			c.reg.RegisterSendLocked(self)
			if err := waitTicket(ctx, self); err != nil {
				return err
			}
			continue
		}
		if c.io.Tx.Len() == 0 {
			c.io.Mu.Unlock()
			return nil
		}
		_, err := c.driveLocked(ctx)
		c.io.Mu.Unlock()
		if err != nil {
			return err
		}
	}
}

func (c *Connection) driveLocked(ctx context.Context) (bool, error) {
	progressed, err := c.io.DriveOnce(ctx)
	if err == ioengine.ErrClosed {
		return false, err
	}
	return progressed, err
}

// Flush drives the socket until the shared tx ring is empty, for callers
// that batch several Send calls and want an explicit synchronization
// point rather than relying on the last-sender-flushes rule.
func (c *Connection) Flush(ctx context.Context) error {
	self := registry.NewTicket()
	return c.drainTx(ctx, self)
}
