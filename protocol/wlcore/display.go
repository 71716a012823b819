// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wlcore hand-supplies the consumer-surface shape a real
// `wayland.xml`/`wlr-gamma-control-unstable-v1.xml` code generator would
// emit: one file per interface, a request type implementing wire.Message
// for everything the client sends, an event type implementing wire.Event
// for everything it receives, and an FDCount table per interface used to
// register the object with conn.
package wlcore

import "code.hybscloud.com/wlconn/wire"

// DisplayName and DisplayVersion identify the wl_display singleton,
// always bound at wire.DisplayID.
const (
	DisplayName    = "wl_display"
	DisplayVersion = 1
)

// Request opcodes sent to wl_display.
const (
	DisplaySyncOpcode        uint16 = 0
	DisplayGetRegistryOpcode uint16 = 1
)

// Event opcodes received from wl_display.
const (
	DisplayErrorOpcode    uint16 = 0
	DisplayDeleteIDOpcode uint16 = 1
)

// DisplayFDCount reports that wl_display carries no fd-typed fields in
// either request or event.
func DisplayFDCount(opcode uint16) (int, bool) {
	switch opcode {
	case DisplayErrorOpcode, DisplayDeleteIDOpcode:
		return 0, true
	default:
		return 0, false
	}
}

// DisplaySync requests a round-trip: the compositor fires Callback.Done
// once every request sent before this one has been processed.
type DisplaySync struct {
	Callback wire.NewID
}

func (m DisplaySync) Len() uint32  { return 4 }
func (m DisplaySync) FDCount() int { return 0 }
func (m DisplaySync) Encode(data *wire.Cursor, fds *wire.FDCursor) error {
	return wire.WriteNewID(data, m.Callback)
}

// DisplayGetRegistry requests the global registry object.
type DisplayGetRegistry struct {
	Registry wire.NewID
}

func (m DisplayGetRegistry) Len() uint32  { return 4 }
func (m DisplayGetRegistry) FDCount() int { return 0 }
func (m DisplayGetRegistry) Encode(data *wire.Cursor, fds *wire.FDCursor) error {
	return wire.WriteNewID(data, m.Registry)
}

// DisplayErrorCode enumerates the global error values wl_display.error may
// report.
type DisplayErrorCode uint32

const (
	DisplayErrorInvalidObject  DisplayErrorCode = 0
	DisplayErrorInvalidMethod  DisplayErrorCode = 1
	DisplayErrorNoMemory       DisplayErrorCode = 2
	DisplayErrorImplementation DisplayErrorCode = 3
)

func (e DisplayErrorCode) Valid() bool {
	return e <= DisplayErrorImplementation
}

func (e DisplayErrorCode) SinceVersion() uint32 { return 1 }

// DisplayError is the event a compositor sends when an earlier request
// violated the protocol; it is terminal for the connection.
type DisplayError struct {
	ObjectID wire.ObjectID
	Code     DisplayErrorCode
	Message  string
}

func (e *DisplayError) Decode(data *wire.Cursor, fds *wire.FDCursor) error {
	obj, err := wire.ReadObject(data)
	if err != nil {
		return err
	}
	code, err := wire.ReadUint(data)
	if err != nil {
		return err
	}
	msg, err := wire.ReadString(data)
	if err != nil {
		return err
	}
	e.ObjectID = obj
	e.Code = DisplayErrorCode(code)
	e.Message = msg
	return nil
}

// DisplayDeleteID is the event signaling that a client-allocated object ID
// has been destroyed server-side and may be reused.
type DisplayDeleteID struct {
	ID wire.ObjectID
}

func (e *DisplayDeleteID) Decode(data *wire.Cursor, fds *wire.FDCursor) error {
	id, err := wire.ReadUint(data)
	if err != nil {
		return err
	}
	e.ID = wire.ObjectID(id)
	return nil
}
