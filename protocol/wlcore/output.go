// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wlcore

import "code.hybscloud.com/wlconn/wire"

const (
	OutputName    = "wl_output"
	OutputVersion = 4
)

// Event opcodes received from wl_output.
const (
	OutputGeometryOpcode uint16 = 0
	OutputModeOpcode     uint16 = 1
	OutputDoneOpcode     uint16 = 2
	OutputScaleOpcode    uint16 = 3
)

// OutputFDCount reports that wl_output carries no fd-typed fields.
func OutputFDCount(opcode uint16) (int, bool) {
	switch opcode {
	case OutputGeometryOpcode, OutputModeOpcode, OutputDoneOpcode, OutputScaleOpcode:
		return 0, true
	default:
		return 0, false
	}
}

// OutputSubpixel enumerates the sub-pixel geometry wl_output.geometry
// reports.
type OutputSubpixel int32

const (
	OutputSubpixelUnknown       OutputSubpixel = 0
	OutputSubpixelNone          OutputSubpixel = 1
	OutputSubpixelHorizontalRGB OutputSubpixel = 2
	OutputSubpixelHorizontalBGR OutputSubpixel = 3
	OutputSubpixelVerticalRGB   OutputSubpixel = 4
	OutputSubpixelVerticalBGR   OutputSubpixel = 5
)

func (s OutputSubpixel) Valid() bool          { return s >= OutputSubpixelUnknown && s <= OutputSubpixelVerticalBGR }
func (s OutputSubpixel) SinceVersion() uint32 { return 1 }

// OutputTransform enumerates the output's rotation/flip, applied by the
// compositor before presenting.
type OutputTransform int32

const (
	OutputTransformNormal     OutputTransform = 0
	OutputTransform90         OutputTransform = 1
	OutputTransform180        OutputTransform = 2
	OutputTransform270        OutputTransform = 3
	OutputTransformFlipped    OutputTransform = 4
	OutputTransformFlipped90  OutputTransform = 5
	OutputTransformFlipped180 OutputTransform = 6
	OutputTransformFlipped270 OutputTransform = 7
)

func (t OutputTransform) Valid() bool          { return t >= OutputTransformNormal && t <= OutputTransformFlipped270 }
func (t OutputTransform) SinceVersion() uint32 { return 1 }

// OutputModeFlags is a bitfield: current and/or preferred.
type OutputModeFlags uint32

const (
	OutputModeCurrent   OutputModeFlags = 1 << 0
	OutputModePreferred OutputModeFlags = 1 << 1
)

// OutputGeometry describes the output's physical properties and position
// in the compositor's global coordinate space.
type OutputGeometry struct {
	X, Y                          int32
	PhysicalWidth, PhysicalHeight int32
	Subpixel                      OutputSubpixel
	Make, Model                   string
	Transform                     OutputTransform
}

func (e *OutputGeometry) Decode(data *wire.Cursor, fds *wire.FDCursor) error {
	var err error
	if e.X, err = wire.ReadInt(data); err != nil {
		return err
	}
	if e.Y, err = wire.ReadInt(data); err != nil {
		return err
	}
	if e.PhysicalWidth, err = wire.ReadInt(data); err != nil {
		return err
	}
	if e.PhysicalHeight, err = wire.ReadInt(data); err != nil {
		return err
	}
	subpixel, err := wire.ReadInt(data)
	if err != nil {
		return err
	}
	e.Subpixel = OutputSubpixel(subpixel)
	if e.Make, err = wire.ReadString(data); err != nil {
		return err
	}
	if e.Model, err = wire.ReadString(data); err != nil {
		return err
	}
	transform, err := wire.ReadInt(data)
	if err != nil {
		return err
	}
	e.Transform = OutputTransform(transform)
	return nil
}

// OutputMode announces one available display mode.
type OutputMode struct {
	Flags                  OutputModeFlags
	Width, Height, Refresh int32
}

func (e *OutputMode) Decode(data *wire.Cursor, fds *wire.FDCursor) error {
	flags, err := wire.ReadUint(data)
	if err != nil {
		return err
	}
	e.Flags = OutputModeFlags(flags)
	if e.Width, err = wire.ReadInt(data); err != nil {
		return err
	}
	if e.Height, err = wire.ReadInt(data); err != nil {
		return err
	}
	if e.Refresh, err = wire.ReadInt(data); err != nil {
		return err
	}
	return nil
}

// OutputDone marks the end of one atomic batch of geometry/mode/scale
// events following a bind or a reconfiguration.
type OutputDone struct{}

func (e *OutputDone) Decode(data *wire.Cursor, fds *wire.FDCursor) error { return nil }

// OutputScale reports the output's preferred integer scale factor.
type OutputScale struct {
	Factor int32
}

func (e *OutputScale) Decode(data *wire.Cursor, fds *wire.FDCursor) error {
	v, err := wire.ReadInt(data)
	if err != nil {
		return err
	}
	e.Factor = v
	return nil
}
