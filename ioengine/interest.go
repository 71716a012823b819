// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ioengine

// Interest is the bitset the I/O engine maintains to decide what it still
// must wait on. A *_CLOSED bit, once set, is terminal.
type Interest uint8

const (
	Recv Interest = 1 << iota
	Send
	RecvClosed
	SendClosed
)

func (i Interest) Has(bit Interest) bool { return i&bit != 0 }

func (i *Interest) Set(bit Interest)   { *i |= bit }
func (i *Interest) Clear(bit Interest) { *i &^= bit }

func (i Interest) String() string {
	names := []struct {
		bit  Interest
		name string
	}{
		{Recv, "RECV"}, {Send, "SEND"}, {RecvClosed, "RECV_CLOSED"}, {SendClosed, "SEND_CLOSED"},
	}
	out := ""
	for _, n := range names {
		if i.Has(n.bit) {
			if out != "" {
				out += "|"
			}
			out += n.name
		}
	}
	if out == "" {
		return "EMPTY"
	}
	return out
}
