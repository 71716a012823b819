// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package registry

import (
	"sort"
	"sync"

	"code.hybscloud.com/wlconn/wire"
)

// FirstClientID is the first object ID the registry hands out; 0 is never
// valid and 1 is reserved for wl_display (spec §3.1).
const FirstClientID wire.ObjectID = 2

// recvEntry is one live object's receiver registration: the ticket to wake
// when a frame addressed to it arrives, and the schema's fd-count lookup
// for its opcode set.
type recvEntry struct {
	ticket  Ticket
	fdCount wire.FDCount
}

// Registry is the single-locked routing table described by spec §4.D: an
// object-ID allocator, a map from live object to its receiver, and a
// sender-side FIFO plus a one-slot "locked" sender carve-out for a sender
// that found the I/O lock busy and is waiting to (re)acquire it.
//
// Registry has its own mutex, deliberately distinct from ioengine.Io.Mu:
// the registry's mutex is held only briefly inside these methods, never
// across an Io operation or a syscall (spec §5).
type Registry struct {
	mu sync.Mutex

	nextID wire.ObjectID

	receivers map[wire.ObjectID]recvEntry
	// order mirrors the reference implementation's BTreeMap<object, _>
	// iteration order, which wake_recver relies on to always prefer the
	// lowest-numbered live object. A Go map has no iteration order, so the
	// sorted id list is maintained alongside the map on every insert and
	// removal.
	order []wire.ObjectID

	senderQueue  []Ticket
	senderLocked Ticket
}

// New returns an empty registry ready to allocate client-side object IDs.
func New() *Registry {
	return &Registry{
		nextID:    FirstClientID,
		receivers: make(map[wire.ObjectID]recvEntry),
	}
}

// NewID allocates the next client object ID. The allocator saturates
// rather than wraps: once it reaches the top of the ID space, further
// calls return ErrIDSaturated instead of silently reissuing a live ID
// (spec §4.D, "saturating, fatal on saturation").
func (r *Registry) NewID() (wire.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nextID == ^wire.ObjectID(0) {
		return 0, ErrIDSaturated
	}
	id := r.nextID
	r.nextID++
	return id, nil
}

// RegisterRecv records that the calling goroutine wants to be woken when a
// frame destined for obj arrives, replacing any existing registration for
// the same object (a re-registration after a spurious wake, not a new
// object).
func (r *Registry) RegisterRecv(obj wire.ObjectID, t Ticket, fdCount wire.FDCount) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.receivers[obj]; !exists {
		r.insertOrder(obj)
	}
	r.receivers[obj] = recvEntry{ticket: t, fdCount: fdCount}
}

// RemoveRecv drops obj's receiver registration, e.g. on wl_display.delete_id
// or connection teardown.
func (r *Registry) RemoveRecv(obj wire.ObjectID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.receivers[obj]; !exists {
		return
	}
	delete(r.receivers, obj)
	r.removeOrder(obj)
}

// FDCount looks up the fd-count function registered for obj, reporting
// whether a receiver is currently registered for it at all.
func (r *Registry) FDCount(obj wire.ObjectID) (wire.FDCount, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.receivers[obj]
	if !ok {
		return nil, false
	}
	return e.fdCount, true
}

// RegisterSend enqueues a ticket behind any already-waiting sender.
func (r *Registry) RegisterSend(t Ticket) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.senderQueue = append(r.senderQueue, t)
}

// RegisterSendLocked claims the single locked-sender slot if it is free,
// otherwise falls back to the ordinary FIFO. The locked slot lets a sender
// that is waiting to reacquire the I/O lock go ahead of queued senders —
// at most one locked holder at a time.
func (r *Registry) RegisterSendLocked(t Ticket) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.senderLocked == nil {
		r.senderLocked = t
		return
	}
	r.senderQueue = append(r.senderQueue, t)
}

// WakeSender wakes the locked sender if one is holding the slot, else the
// head of the FIFO. It reports whether anyone was woken.
func (r *Registry) WakeSender() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.senderLocked != nil {
		t := r.senderLocked
		r.senderLocked = nil
		t.Wake()
		return true
	}
	if len(r.senderQueue) == 0 {
		return false
	}
	t := r.senderQueue[0]
	r.senderQueue = r.senderQueue[1:]
	t.Wake()
	return true
}

// WakeRecver wakes the locked sender (so a sender blocked waiting for the
// I/O lock gets a chance to proceed) and the
// lowest-numbered registered receiver, skipping self to avoid a goroutine
// waking its own still-running receive.
func (r *Registry) WakeRecver(self Ticket) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.senderLocked != nil {
		t := r.senderLocked
		r.senderLocked = nil
		t.Wake()
	}
	if len(r.order) == 0 {
		return
	}
	first := r.receivers[r.order[0]]
	if first.ticket != nil && (chan struct{})(first.ticket) != (chan struct{})(self) {
		first.ticket.Wake()
	}
}

func (r *Registry) insertOrder(id wire.ObjectID) {
	i := sort.Search(len(r.order), func(i int) bool { return r.order[i] >= id })
	r.order = append(r.order, 0)
	copy(r.order[i+1:], r.order[i:])
	r.order[i] = id
}

func (r *Registry) removeOrder(id wire.ObjectID) {
	i := sort.Search(len(r.order), func(i int) bool { return r.order[i] >= id })
	if i < len(r.order) && r.order[i] == id {
		r.order = append(r.order[:i], r.order[i+1:]...)
	}
}
