package cli

import (
	"github.com/andy/countdown/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the terminal UI",
	Long:  `Launch the interactive countdown. Press e to type a new HHMMSS value, space to start or stop, r to reset.`,
	RunE:  launchTUI,
}

func launchTUI(cmd *cobra.Command, args []string) error {
	a, err := requireApp(cmd.Context())
	if err != nil {
		return err
	}
	return tui.Run(a)
}
