// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wlcore

import "code.hybscloud.com/wlconn/wire"

// zwlr_gamma_control_manager_v1: the bindable global that hands out
// per-output gamma control objects, from wlr-gamma-control-unstable-v1.xml.
const (
	GammaControlManagerName    = "zwlr_gamma_control_manager_v1"
	GammaControlManagerVersion = 1
)

// Request opcodes sent to zwlr_gamma_control_manager_v1.
const (
	GammaControlManagerGetGammaControlOpcode uint16 = 0
	GammaControlManagerDestroyOpcode         uint16 = 1
)

// GammaControlManagerFDCount reports that the manager interface carries no
// fd-typed fields; it has no events at all.
func GammaControlManagerFDCount(uint16) (int, bool) { return 0, false }

// GammaControlManagerGetGammaControl requests a gamma control object for a
// specific output.
type GammaControlManagerGetGammaControl struct {
	ID     wire.NewID
	Output wire.ObjectID
}

func (m GammaControlManagerGetGammaControl) Len() uint32  { return 8 }
func (m GammaControlManagerGetGammaControl) FDCount() int { return 0 }
func (m GammaControlManagerGetGammaControl) Encode(data *wire.Cursor, fds *wire.FDCursor) error {
	if err := wire.WriteNewID(data, m.ID); err != nil {
		return err
	}
	return wire.WriteObject(data, m.Output)
}

// GammaControlManagerDestroy releases the manager without affecting any
// gamma control objects it already handed out.
type GammaControlManagerDestroy struct{}

func (m GammaControlManagerDestroy) Len() uint32  { return 0 }
func (m GammaControlManagerDestroy) FDCount() int { return 0 }
func (m GammaControlManagerDestroy) Encode(data *wire.Cursor, fds *wire.FDCursor) error {
	return nil
}

// zwlr_gamma_control_v1: one ramp table per output.
const (
	GammaControlName    = "zwlr_gamma_control_v1"
	GammaControlVersion = 1
)

// Request opcodes sent to zwlr_gamma_control_v1.
const (
	GammaControlSetGammaOpcode uint16 = 0
	GammaControlDestroyOpcode  uint16 = 1
)

// Event opcodes received from zwlr_gamma_control_v1.
const (
	GammaControlGammaSizeOpcode uint16 = 0
	GammaControlFailedOpcode    uint16 = 1
)

// GammaControlFDCount reports zwlr_gamma_control_v1's fd-typed fields: none
// of its events carry one (gamma_size is a uint, failed has no args).
func GammaControlFDCount(opcode uint16) (int, bool) {
	switch opcode {
	case GammaControlGammaSizeOpcode, GammaControlFailedOpcode:
		return 0, true
	default:
		return 0, false
	}
}

// GammaControlSetGamma uploads a new gamma ramp: three tables of
// gamma_size uint16 entries (red, green, blue, back to back) passed as a
// single memfd the compositor mmaps and reads.
type GammaControlSetGamma struct {
	FD int
}

func (m GammaControlSetGamma) Len() uint32  { return 0 }
func (m GammaControlSetGamma) FDCount() int { return 1 }
func (m GammaControlSetGamma) Encode(data *wire.Cursor, fds *wire.FDCursor) error {
	return wire.WriteFd(fds, m.FD)
}

// GammaControlDestroy releases the gamma control object, restoring the
// output's default gamma ramp.
type GammaControlDestroy struct{}

func (m GammaControlDestroy) Len() uint32  { return 0 }
func (m GammaControlDestroy) FDCount() int { return 0 }
func (m GammaControlDestroy) Encode(data *wire.Cursor, fds *wire.FDCursor) error {
	return nil
}

// GammaControlGammaSize reports how many entries each of the three ramp
// tables set_gamma expects.
type GammaControlGammaSize struct {
	Size uint32
}

func (e *GammaControlGammaSize) Decode(data *wire.Cursor, fds *wire.FDCursor) error {
	v, err := wire.ReadUint(data)
	if err != nil {
		return err
	}
	e.Size = v
	return nil
}

// GammaControlFailed reports that the compositor revoked this gamma
// control object, e.g. because the output was unplugged.
type GammaControlFailed struct{}

func (e *GammaControlFailed) Decode(data *wire.Cursor, fds *wire.FDCursor) error { return nil }
