package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"onuze-cli/auth"
	"onuze-cli/term"
)

var signInCmd = &cobra.Command{
	Use:   "sign-in",
	Short: "Sign in to an Onuze account",
	Args:  cobra.NoArgs,
	Run:   signIn,
}

var signOutCmd = &cobra.Command{
	Use:   "sign-out",
	Short: "Sign out and clear stored credentials",
	Args:  cobra.NoArgs,
	Run:   signOut,
}

func init() {
	RootCmd.AddCommand(signInCmd)
	RootCmd.AddCommand(signOutCmd)

	signInCmd.Flags().String("username", "", "Account username")
}

func signIn(cmd *cobra.Command, args []string) {
	username, err := cmd.Flags().GetString("username")
	if err != nil {
		term.OutputErrorAndExit("Error getting username: %v", err)
	}

	if username == "" {
		username, err = term.GetRequiredUserStringInput("Username:")
		if err != nil {
			term.OutputErrorAndExit("Error reading username: %v", err)
		}
	}

	password, err := term.GetUserPasswordInput("Password:")
	if err != nil {
		term.OutputErrorAndExit("Error reading password: %v", err)
	}

	term.StartSpinner("")
	err = auth.SignIn(username, password)
	term.StopSpinner()

	if err != nil {
		term.OutputErrorAndExit("Error signing in: %v", err)
	}

	fmt.Println("✅ Signed in as", color.New(color.Bold, term.ColorHiGreen).Sprint(auth.Current.User.Username))
	fmt.Println()
	term.PrintCmds("", "feed", "notifications")
}

func signOut(cmd *cobra.Command, args []string) {
	if auth.Current == nil {
		resolveAuthSilent()
	}

	if err := auth.SignOut(); err != nil {
		term.OutputErrorAndExit("Error signing out: %v", err)
	}

	fmt.Println("✅ Signed out")
}
