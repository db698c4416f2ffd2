package main

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/taigrr/lumen/pkg/scene"
)

var (
	nameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f5c542"))
	descStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9a9a9a"))
)

func newScenesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List built-in scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, name := range scene.Names() {
				sc, err := scene.Builtin(name)
				if err != nil {
					return err
				}
				lipgloss.Fprintf(out, "%s  %s\n",
					nameStyle.Render(fmt.Sprintf("%-8s", sc.Name)),
					descStyle.Render(fmt.Sprintf("%s (%d primitives, depth %d)", sc.Description, sc.Root.Primitives(), sc.Depth)))
			}
			return nil
		},
	}
}
