package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and save the session",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		if err := env.sessions.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(env.out, "已登出")
		return nil
	},
}

// readPassword prompts on the terminal without echo. Tests replace it.
var readPassword = func() (string, error) {
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	return string(b), err
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	if email == "" {
		return fmt.Errorf("--email is required")
	}
	if password == "" {
		if !env.interactive {
			return fmt.Errorf("--password is required in non-interactive mode")
		}
		fmt.Fprint(env.out, "密碼: ")
		password, err = readPassword()
		fmt.Fprintln(env.out)
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
	}

	user, err := env.client.Login(cmd.Context(), email, password)
	if err != nil {
		return err
	}
	if err := env.saveSession(user); err != nil {
		return err
	}
	fmt.Fprintf(env.out, "已登入：%s (%s)\n", user.Name, user.Email)
	return nil
}
