// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package registry is the object-routing table of spec §4.D: which
// goroutine wants to receive on a given object, which goroutines are
// queued to send, and in what order a scheduling round should wake them.
//
// The reference implementation expresses a "wake this task" as cloning an
// async Waker. Go has no Waker; a Ticket plays the same role — a
// single-slot, non-blocking-send channel a blocked goroutine selects on.
package registry

// Ticket is the Go stand-in for the reference design's cloned Waker: a
// blocked goroutine hands the registry a Ticket and then selects on it (or
// on ctx.Done()); Wake is safe to call any number of times from any
// goroutine and never blocks.
type Ticket chan struct{}

// NewTicket allocates a ticket with room for exactly one pending wake.
func NewTicket() Ticket { return make(Ticket, 1) }

// Wake signals the ticket. A second Wake before the holder has drained the
// first is a harmless no-op, matching Waker::wake's at-least-once delivery.
func (t Ticket) Wake() {
	select {
	case t <- struct{}{}:
	default:
	}
}
