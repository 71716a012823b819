// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wlcore

import "code.hybscloud.com/wlconn/wire"

const (
	RegistryName    = "wl_registry"
	RegistryVersion = 1
)

// Request opcodes sent to wl_registry.
const (
	RegistryBindOpcode uint16 = 0
)

// Event opcodes received from wl_registry.
const (
	RegistryGlobalOpcode       uint16 = 0
	RegistryGlobalRemoveOpcode uint16 = 1
)

// RegistryFDCount reports that wl_registry carries no fd-typed fields.
func RegistryFDCount(opcode uint16) (int, bool) {
	switch opcode {
	case RegistryGlobalOpcode, RegistryGlobalRemoveOpcode:
		return 0, true
	default:
		return 0, false
	}
}

// RegistryBind is the schema-less request spec.md §9 calls out: Name is
// the numeric global a prior Global event advertised, and NewObject names
// the interface/version the client wants to bind it as.
type RegistryBind struct {
	Name      uint32
	NewObject wire.NewIDDyn
}

func (m RegistryBind) Len() uint32  { return 4 + m.NewObject.Len() }
func (m RegistryBind) FDCount() int { return 0 }
func (m RegistryBind) Encode(data *wire.Cursor, fds *wire.FDCursor) error {
	if err := wire.WriteUint(data, m.Name); err != nil {
		return err
	}
	return wire.WriteNewIDDyn(data, m.NewObject)
}

// RegistryGlobal announces one available global.
type RegistryGlobal struct {
	Name      uint32
	Interface string
	Version   uint32
}

func (e *RegistryGlobal) Decode(data *wire.Cursor, fds *wire.FDCursor) error {
	name, err := wire.ReadUint(data)
	if err != nil {
		return err
	}
	iface, err := wire.ReadString(data)
	if err != nil {
		return err
	}
	version, err := wire.ReadUint(data)
	if err != nil {
		return err
	}
	e.Name = name
	e.Interface = iface
	e.Version = version
	return nil
}

// RegistryGlobalRemove announces that a previously advertised global is no
// longer available; Name matches an earlier Global.Name.
type RegistryGlobalRemove struct {
	Name uint32
}

func (e *RegistryGlobalRemove) Decode(data *wire.Cursor, fds *wire.FDCursor) error {
	name, err := wire.ReadUint(data)
	if err != nil {
		return err
	}
	e.Name = name
	return nil
}
