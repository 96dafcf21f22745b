// ABOUTME: Launches the interactive terminal UI
// ABOUTME: The UI shares the session and client with the other commands

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/markalston/petcare-cli/internal/tui"
	"github.com/spf13/cobra"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive terminal UI",
	Args:  cobra.NoArgs,
	Run: withEnv(func(ctx context.Context, w io.Writer, env *environment, _ []string) int {
		if err := tui.Run(ctx, env.session, env.client); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
		return exitOK
	}),
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
