// lumen - progressive Monte Carlo path tracer
// Render built-in scenes or GLB/OBJ meshes to image files, or watch them
// converge in the terminal.
//
// Controls (view):
//
//	W/S         - Move forward/back
//	A/D         - Strafe left/right
//	Space/C     - Move up/down
//	R           - Restart accumulation
//	E           - Cycle exposure curve
//	Esc/Ctrl+C  - Quit
package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
)

var version = "dev"

func main() {
	err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	)
	if err != nil {
		os.Exit(1)
	}
}
