// ABOUTME: Register command for the petcare CLI
// ABOUTME: Creates a new account; does not log in

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/markalston/petcare-cli/internal/client"
	"github.com/spf13/cobra"
)

var (
	registerUser          string
	registerEmail         string
	registerPasswordStdin bool
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long:  `Create a new account. Missing fields are asked for interactively.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withEnv(func(ctx context.Context, w io.Writer, env *environment, _ []string) int {
			reg := client.Registration{UserName: registerUser, Email: registerEmail}
			if registerPasswordStdin {
				pw, err := readSecret(cmd.InOrStdin())
				if err != nil {
					fmt.Fprintf(w, "Error: %v\n", err)
					return exitError
				}
				reg.Password = pw
			}
			if reg.UserName == "" || reg.Email == "" || reg.Password == "" {
				if err := registerForm(&reg).Run(); err != nil {
					return formError(w, err)
				}
			}
			return runRegister(ctx, w, env, reg)
		})(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVarP(&registerUser, "user", "u", "", "User name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Email address")
	registerCmd.Flags().BoolVar(&registerPasswordStdin, "password-stdin", false, "Read the password from stdin")
}

func registerForm(reg *client.Registration) *huh.Form {
	var confirm string
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("User name").Value(&reg.UserName).Validate(required("user name")),
			huh.NewInput().Title("Email").Value(&reg.Email).Validate(func(s string) error {
				return client.Registration{UserName: "x", Password: "x", Email: s}.Validate()
			}),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&reg.Password).Validate(required("password")),
			huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Value(&confirm).Validate(func(s string) error {
				if s != reg.Password {
					return errors.New("passwords do not match")
				}
				return nil
			}),
		),
	)
}

// runRegister creates the account
func runRegister(ctx context.Context, w io.Writer, env *environment, reg client.Registration) int {
	resp, err := env.client.Register(ctx, reg)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			fmt.Fprintf(w, "Error: registration failed: %s\n", apiErr.Message)
			return exitError
		}
		fmt.Fprintf(w, "Error: registration failed: %v\n", err)
		return exitError
	}

	name := resp.UserName
	if name == "" {
		name = reg.UserName
	}
	fmt.Fprintf(w, "Registered %s. Run 'petcare login --user %s' to start.\n", name, name)
	return exitOK
}
