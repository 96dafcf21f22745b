// ABOUTME: Version command for the petcare CLI
// ABOUTME: Prints a banner and the build version

package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/markalston/petcare-cli/internal/tui/styles"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=v1.2.3".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runVersion(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(w io.Writer) {
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(map[string]string{"version": Version, "go": runtime.Version()}))
		return
	}
	fmt.Fprintln(w, styles.Banner())
	fmt.Fprintf(w, "petcare %s (%s)\n", Version, runtime.Version())
}
