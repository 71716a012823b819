// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conn

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"code.hybscloud.com/wlconn/ioengine"
	"code.hybscloud.com/wlconn/registry"
	"code.hybscloud.com/wlconn/wire"
)

// Connection is the single-locked multiplexer of spec §4.E: one
// ioengine.Io, one registry.Registry, and a SessionID correlating this
// connection's log lines.
type Connection struct {
	io  *ioengine.Io
	reg *registry.Registry

	SessionID uuid.UUID
	log       zerolog.Logger
}

// Dial connects to the compositor socket, by default the one named by
// WAYLAND_DISPLAY under XDG_RUNTIME_DIR — the same discovery rule
// libwayland and every compliant client use — configurable via opts.
func Dial(ctx context.Context, opts ...Option) (*Connection, error) {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}

	path := o.SocketPath
	if path == "" {
		runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
		if runtimeDir == "" {
			return nil, errors.New("conn: XDG_RUNTIME_DIR is not set")
		}
		display := os.Getenv("WAYLAND_DISPLAY")
		if display == "" {
			display = "wayland-0"
		}
		path = display
		if !filepath.IsAbs(display) {
			path = filepath.Join(runtimeDir, display)
		}
	}

	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, fmt.Errorf("conn: socket: %w", err)
	}
	if err := unix.Connect(fd, &unix.SockaddrUnix{Name: path}); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("conn: connect %s: %w", path, err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("conn: set nonblocking: %w", err)
	}

	c := newConnTuned(fd, o.Logger, o.Tuning)
	c.log.Debug().Str("socket", path).Msg("conn: dialed compositor socket")
	return c, nil
}

// newConn wraps an already-connected, non-blocking socket fd using default
// tuning.
func newConn(fd int, log zerolog.Logger) *Connection {
	return newConnTuned(fd, log, ioengine.Tuning{})
}

// newConnTuned wraps an already-connected, non-blocking socket fd with
// explicit ring/FD/poll tuning.
func newConnTuned(fd int, log zerolog.Logger, t ioengine.Tuning) *Connection {
	sessionID := uuid.New()
	sessionLog := log.With().Str("session_id", sessionID.String()).Logger()
	return &Connection{
		io:        ioengine.NewTuned(fd, sessionLog, t),
		reg:       registry.New(),
		SessionID: sessionID,
		log:       sessionLog,
	}
}

// Close shuts the underlying socket down.
func (c *Connection) Close() error {
	c.log.Debug().Msg("conn: closing")
	return c.io.Close()
}

// Object is a live Wayland object bound to this connection: an ID, and the
// schema hook the registry uses to size incoming frames addressed to it.
type Object struct {
	conn    *Connection
	id      wire.ObjectID
	fdCount wire.FDCount
}

// ID returns the object's wire ID.
func (o *Object) ID() wire.ObjectID { return o.id }

// Display returns the always-present wl_display object at ID 1.
func (c *Connection) Display(fdCount wire.FDCount) *Object {
	return &Object{conn: c, id: wire.DisplayID, fdCount: fdCount}
}

// NewObject allocates a fresh client-side object ID and wraps it, ready to
// be used as the new_id argument of a request such as wl_registry.bind.
func (c *Connection) NewObject(fdCount wire.FDCount) (*Object, error) {
	id, err := c.reg.NewID()
	if err != nil {
		return nil, err
	}
	return &Object{conn: c, id: id, fdCount: fdCount}, nil
}

// BindExisting wraps an object ID the caller already knows about (e.g. one
// received from the compositor), rather than allocating a new one.
func (c *Connection) BindExisting(id wire.ObjectID, fdCount wire.FDCount) *Object {
	return &Object{conn: c, id: id, fdCount: fdCount}
}

// waitTicket blocks until t is woken or ctx is done, whichever comes
// first.
func waitTicket(ctx context.Context, t registry.Ticket) error {
	select {
	case <-t:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
