// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package conn is the connection multiplexer of spec §4.E: it owns one
// ioengine.Io, one registry.Registry, and routes decoded frames to the
// object that registered to receive them, fairly scheduling senders
// behind a single lock.
package conn

import "code.hybscloud.com/wlconn/wire"

// Frame is one fully received message, header plus owned copies of its
// payload bytes and file descriptors. Unlike the reference design's
// MsgBuf, which borrows directly out of the shared rx ring for the
// lifetime of a held mutex guard, Frame copies its contents out before the
// I/O lock is released — one extra allocation per frame, traded for an API
// with no guard object a caller could forget to drop.
type Frame struct {
	Header wire.Header
	Data   []byte
	FDs    []int
}

// Decode parses m out of the frame's payload and fds.
func (f *Frame) Decode(m wire.Event) error {
	return m.Decode(&wire.Cursor{Buf: f.Data}, &wire.FDCursor{FDs: f.FDs})
}
