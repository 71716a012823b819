// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package registry_test

import (
	"testing"
	"time"

	"code.hybscloud.com/wlconn/registry"
	"code.hybscloud.com/wlconn/wire"
)

func assertWoken(t *testing.T, tk registry.Ticket) {
	t.Helper()
	select {
	case <-tk:
	case <-time.After(time.Second):
		t.Fatal("ticket was not woken")
	}
}

func assertNotWoken(t *testing.T, tk registry.Ticket) {
	t.Helper()
	select {
	case <-tk:
		t.Fatal("ticket was woken unexpectedly")
	default:
	}
}

func TestNewIDStartsAtFirstClientID(t *testing.T) {
	r := registry.New()
	got, err := r.NewID()
	if err != nil {
		t.Fatalf("NewID: %v", err)
	}
	if got != registry.FirstClientID {
		t.Fatalf("first allocated id = %d, want %d", got, registry.FirstClientID)
	}
	second, err := r.NewID()
	if err != nil {
		t.Fatalf("NewID: %v", err)
	}
	if second != registry.FirstClientID+1 {
		t.Fatalf("second allocated id = %d, want %d", second, registry.FirstClientID+1)
	}
}

func TestNewIDIsStrictlyIncreasing(t *testing.T) {
	r := registry.New()
	a, err := r.NewID()
	if err != nil {
		t.Fatalf("NewID: %v", err)
	}
	b, err := r.NewID()
	if err != nil {
		t.Fatalf("NewID: %v", err)
	}
	if b <= a {
		t.Fatalf("ids must be strictly increasing: %d then %d", a, b)
	}
}

func TestWakeRecverPrefersLowestID(t *testing.T) {
	r := registry.New()
	low := registry.NewTicket()
	high := registry.NewTicket()
	r.RegisterRecv(wire.ObjectID(5), high, nil)
	r.RegisterRecv(wire.ObjectID(3), low, nil)

	caller := registry.NewTicket()
	r.WakeRecver(caller)

	assertWoken(t, low)
	assertNotWoken(t, high)
}

func TestWakeRecverSkipsSelf(t *testing.T) {
	r := registry.New()
	self := registry.NewTicket()
	r.RegisterRecv(wire.ObjectID(2), self, nil)

	r.WakeRecver(self)

	assertNotWoken(t, self)
}

func TestRemoveRecvDropsRegistration(t *testing.T) {
	r := registry.New()
	tk := registry.NewTicket()
	r.RegisterRecv(wire.ObjectID(2), tk, nil)
	r.RemoveRecv(wire.ObjectID(2))

	if _, ok := r.FDCount(wire.ObjectID(2)); ok {
		t.Fatal("expected no receiver after RemoveRecv")
	}

	other := registry.NewTicket()
	r.WakeRecver(other)
	assertNotWoken(t, tk)
}

func TestSenderFIFOOrder(t *testing.T) {
	r := registry.New()
	first := registry.NewTicket()
	second := registry.NewTicket()
	r.RegisterSend(first)
	r.RegisterSend(second)

	if !r.WakeSender() {
		t.Fatal("expected a sender to be woken")
	}
	assertWoken(t, first)
	assertNotWoken(t, second)

	if !r.WakeSender() {
		t.Fatal("expected the second sender to be woken")
	}
	assertWoken(t, second)
}

func TestWakeSenderEmptyReportsFalse(t *testing.T) {
	r := registry.New()
	if r.WakeSender() {
		t.Fatal("expected WakeSender to report false with no senders queued")
	}
}

func TestSenderLockedTakesPriorityOverFIFO(t *testing.T) {
	r := registry.New()
	queued := registry.NewTicket()
	locked := registry.NewTicket()
	r.RegisterSend(queued)
	r.RegisterSendLocked(locked)

	if !r.WakeSender() {
		t.Fatal("expected a sender to be woken")
	}
	assertWoken(t, locked)
	assertNotWoken(t, queued)
}

func TestRegisterSendLockedFallsBackToFIFOWhenSlotTaken(t *testing.T) {
	r := registry.New()
	firstLocked := registry.NewTicket()
	secondLocked := registry.NewTicket()
	r.RegisterSendLocked(firstLocked)
	r.RegisterSendLocked(secondLocked)

	r.WakeSender()
	assertWoken(t, firstLocked)
	assertNotWoken(t, secondLocked)

	r.WakeSender()
	assertWoken(t, secondLocked)
}

func TestWakeRecverWakesLockedSender(t *testing.T) {
	r := registry.New()
	locked := registry.NewTicket()
	r.RegisterSendLocked(locked)

	r.WakeRecver(registry.NewTicket())
	assertWoken(t, locked)
}

func TestReregisterRecvReplacesTicketNotOrder(t *testing.T) {
	r := registry.New()
	old := registry.NewTicket()
	r.RegisterRecv(wire.ObjectID(3), old, nil)

	fresh := registry.NewTicket()
	r.RegisterRecv(wire.ObjectID(3), fresh, nil)

	r.WakeRecver(registry.NewTicket())
	assertWoken(t, fresh)
	assertNotWoken(t, old)
}
