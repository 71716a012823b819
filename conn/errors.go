// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conn

import (
	"fmt"

	"code.hybscloud.com/wlconn/wire"
)

// ProtocolError wraps a wl_display.error event: the compositor reporting
// that some earlier request violated the protocol. It is terminal — once
// received, the connection should be closed.
type ProtocolError struct {
	ObjectID wire.ObjectID
	Code     uint32
	Message  string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("conn: protocol error %d on object %d: %s", e.Code, e.ObjectID, e.Message)
}

// DeleteObject drops the registry's receiver registration for id, the
// cleanup a wl_display.delete_id event requires once the compositor has
// recycled an object's ID.
func (c *Connection) DeleteObject(id wire.ObjectID) {
	c.reg.RemoveRecv(id)
}
