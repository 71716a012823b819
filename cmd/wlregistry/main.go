// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command wlregistry is a small illustrative client: it dials a
// compositor, binds the registry, and prints whatever it advertises. It
// exists to exercise conn/wlcore/wlconfig end to end, not as a protocol
// implementation of its own.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	socketFlag string
	watchFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "wlregistry",
	Short: "List (and optionally watch) a Wayland compositor's registry globals",
	Long: `wlregistry connects to the compositor named by WAYLAND_DISPLAY (or
--socket), binds wl_registry, and prints every global it advertises.`,
	RunE: runList,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&socketFlag, "socket", "", "explicit compositor socket path, overriding WAYLAND_DISPLAY discovery")
	rootCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "keep the connection open and print global/global_remove events as they arrive")
}
