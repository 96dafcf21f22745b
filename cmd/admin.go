// ABOUTME: Admin commands for the petcare CLI
// ABOUTME: Manage every user's pets; refused locally without the ADMIN authority

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	adminUpdateFlags petFlags
	adminDeleteYes   bool
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative commands (requires the ADMIN authority)",
}

var adminPetsCmd = &cobra.Command{
	Use:   "pets",
	Short: "Manage all pets",
}

var adminPetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every pet",
	Args:  cobra.NoArgs,
	Run: withEnv(func(ctx context.Context, w io.Writer, env *environment, _ []string) int {
		if !requireAdmin(w, env) {
			return exitError
		}
		return runPetsList(ctx, w, env, true)
	}),
}

var adminPetsUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change any pet's fields",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withEnv(func(ctx context.Context, w io.Writer, env *environment, args []string) int {
			if !requireAdmin(w, env) {
				return exitError
			}
			return runPetUpdate(ctx, w, env, args[0], adminUpdateFlags.patchFrom(cmd.Flags()), true)
		})(cmd, args)
	},
}

var adminPetsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete any pet",
	Args:  cobra.ExactArgs(1),
	Run: withEnv(func(ctx context.Context, w io.Writer, env *environment, args []string) int {
		if !requireAdmin(w, env) {
			return exitError
		}
		if !adminDeleteYes && !confirm(fmt.Sprintf("Delete pet %s for its owner?", args[0])) {
			fmt.Fprintln(w, "Aborted.")
			return exitError
		}
		return runPetDelete(ctx, w, env, args[0], true)
	}),
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminPetsCmd)
	adminPetsCmd.AddCommand(adminPetsListCmd, adminPetsUpdateCmd, adminPetsDeleteCmd)
	adminUpdateFlags.register(adminPetsUpdateCmd.Flags())
	adminPetsDeleteCmd.Flags().BoolVarP(&adminDeleteYes, "yes", "y", false, "Do not ask for confirmation")
}

// requireAdmin refuses before any request when the session lacks ADMIN.
func requireAdmin(w io.Writer, env *environment) bool {
	if !requireLogin(w, env) {
		return false
	}
	if !env.session.IsAdmin() {
		fmt.Fprintln(w, "Error: admin privileges required.")
		return false
	}
	return true
}
