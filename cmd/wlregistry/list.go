// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"code.hybscloud.com/wlconn/conn"
	"code.hybscloud.com/wlconn/protocol/wlcore"
	"code.hybscloud.com/wlconn/wire"
	"code.hybscloud.com/wlconn/wlconfig"
)

// runList binds the registry, waits for the initial burst of globals to
// land (a wl_display.sync round trip marks the end of the burst), prints
// them, and either exits or keeps streaming changes under --watch.
func runList(cmd *cobra.Command, args []string) error {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)
	green := color.New(color.FgGreen, color.Bold)
	red := color.New(color.FgRed, color.Bold)
	out := cmd.OutOrStdout()

	cfg, err := wlconfig.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	opts := []conn.Option{conn.WithLogger(zerolog.Nop()), conn.WithTuning(cfg.Tuning())}
	switch {
	case socketFlag != "":
		opts = append(opts, conn.WithSocketPath(socketFlag))
	case cfg.Socket != "":
		opts = append(opts, conn.WithSocketPath(cfg.Socket))
	}

	rootCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	c, err := conn.Dial(rootCtx, opts...)
	if err != nil {
		return fmt.Errorf("dial compositor: %w", err)
	}
	defer c.Close()

	display := c.Display(wlcore.DisplayFDCount)
	registryObj, err := c.NewObject(wlcore.RegistryFDCount)
	if err != nil {
		return fmt.Errorf("allocate registry object: %w", err)
	}
	callbackObj, err := c.NewObject(wlcore.CallbackFDCount)
	if err != nil {
		return fmt.Errorf("allocate sync callback object: %w", err)
	}

	getRegistry := wlcore.DisplayGetRegistry{Registry: wire.NewID(registryObj.ID())}
	if err := c.Send(rootCtx, display, wlcore.DisplayGetRegistryOpcode, getRegistry); err != nil {
		return fmt.Errorf("send get_registry: %w", err)
	}
	sync := wlcore.DisplaySync{Callback: wire.NewID(callbackObj.ID())}
	if err := c.Send(rootCtx, display, wlcore.DisplaySyncOpcode, sync); err != nil {
		return fmt.Errorf("send sync: %w", err)
	}

	// listCtx drives the registry recv loop. Once the sync callback fires
	// and --watch wasn't given, cancel it ourselves rather than blocking
	// forever on a registry that has nothing left to say.
	listCtx, cancelList := context.WithCancel(rootCtx)
	defer cancelList()

	go func() {
		frame, err := c.Recv(listCtx, callbackObj)
		if err != nil {
			return
		}
		if frame.Header.Opcode == wlcore.CallbackDoneOpcode && !watchFlag {
			cancelList()
		}
	}()

	count := 0
	for {
		frame, err := c.Recv(listCtx, registryObj)
		if err != nil {
			if errors.Is(err, context.Canceled) && !watchFlag {
				green.Fprintf(out, "%d globals\n", count)
				return nil
			}
			red.Fprintln(cmd.ErrOrStderr(), "recv failed:", err)
			return err
		}

		switch frame.Header.Opcode {
		case wlcore.RegistryGlobalOpcode:
			var ev wlcore.RegistryGlobal
			if err := frame.Decode(&ev); err != nil {
				return fmt.Errorf("decode global: %w", err)
			}
			count++
			fmt.Fprintf(out, "%3d  ", ev.Name)
			cyan.Fprint(out, ev.Interface)
			fmt.Fprint(out, " ")
			yellow.Fprintf(out, "v%d\n", ev.Version)
		case wlcore.RegistryGlobalRemoveOpcode:
			var ev wlcore.RegistryGlobalRemove
			if err := frame.Decode(&ev); err != nil {
				return fmt.Errorf("decode global_remove: %w", err)
			}
			count--
			if watchFlag {
				red.Fprintf(out, "%3d  removed\n", ev.Name)
			}
		}
	}
}
