// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import "errors"

var (
	// ErrInvalidMethod reports a malformed on-wire value: a missing
	// null-terminator, a null where the schema disallows it, a new_id of
	// zero, or a value outside a constrained enum's range.
	ErrInvalidMethod = errors.New("wire: invalid method")

	// ErrImplementation reports that the codec itself could not make
	// progress: the buffer ran out before a field was fully read or
	// written, or an fd could not be duplicated on write.
	ErrImplementation = errors.New("wire: implementation error")
)
