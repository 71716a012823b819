// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package registry

import "errors"

// ErrIDSaturated is returned by NewID once the client-side object ID
// space is exhausted. A connection that observes this should treat it as
// fatal: there is no valid ID left to allocate.
var ErrIDSaturated = errors.New("registry: object id space exhausted")
