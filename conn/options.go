// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conn

import (
	"github.com/rs/zerolog"

	"code.hybscloud.com/wlconn/ioengine"
)

// Options configures a Dial call.
type Options struct {
	// Logger receives dial/close debug events, routing-race events, and
	// the I/O engine's control-message warnings. Defaults to a disabled
	// logger so library consumers opt in explicitly.
	Logger zerolog.Logger

	// SocketPath overrides WAYLAND_DISPLAY/XDG_RUNTIME_DIR discovery
	// entirely when non-empty.
	SocketPath string

	// Tuning overrides the underlying Io's ring sizes, FD cap, and poll
	// timeout. Zero-value fields fall back to ioengine's defaults — see
	// wlconfig for loading this from a file/environment.
	Tuning ioengine.Tuning
}

var defaultOptions = Options{
	Logger: zerolog.Nop(),
}

type Option func(*Options)

// WithLogger attaches a structured logger to the connection.
func WithLogger(log zerolog.Logger) Option {
	return func(o *Options) { o.Logger = log }
}

// WithSocketPath bypasses environment-variable discovery and dials an
// explicit Unix socket path.
func WithSocketPath(path string) Option {
	return func(o *Options) { o.SocketPath = path }
}

// WithTuning applies runtime ring/FD/poll tuning, typically loaded via
// wlconfig.Load.
func WithTuning(t ioengine.Tuning) Option {
	return func(o *Options) { o.Tuning = t }
}
