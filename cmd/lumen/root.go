package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "lumen",
		Short: "Progressive Monte Carlo path tracer",
		Long: `lumen traces light paths through small analytic scenes and meshes.

Every setting can also come from a LUMEN_* environment variable
(LUMEN_SCENE, LUMEN_SAMPLES, LUMEN_LOG_LEVEL, ...) or a .env file;
flags win over the environment.`,
		SilenceUsage:      true,
		PersistentPreRunE: o.setup,
	}
	bindSceneFlags(root.PersistentFlags(), o)

	root.AddCommand(
		newRenderCmd(o),
		newViewCmd(o),
		newScenesCmd(),
	)
	return root
}
