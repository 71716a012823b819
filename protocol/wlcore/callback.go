// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wlcore

import "code.hybscloud.com/wlconn/wire"

const (
	CallbackName    = "wl_callback"
	CallbackVersion = 1
)

// CallbackDoneOpcode is wl_callback's single event opcode.
const CallbackDoneOpcode uint16 = 0

// CallbackFDCount reports that wl_callback carries no fd-typed fields.
// wl_callback has no requests of its own — it only ever appears as a
// new_id argument to something else (wl_display.sync, for instance).
func CallbackFDCount(opcode uint16) (int, bool) {
	if opcode == CallbackDoneOpcode {
		return 0, true
	}
	return 0, false
}

// CallbackDone fires once, then the callback object is destroyed
// server-side (a delete_id event follows).
type CallbackDone struct {
	Data uint32
}

func (e *CallbackDone) Decode(data *wire.Cursor, fds *wire.FDCursor) error {
	v, err := wire.ReadUint(data)
	if err != nil {
		return err
	}
	e.Data = v
	return nil
}
