package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"onuze-cli/api"
	"onuze-cli/auth"
	"onuze-cli/shared"
	"onuze-cli/term"
)

var resendActivationCmd = &cobra.Command{
	Use:   "resend-activation [email]",
	Short: "Resend the account activation email",
	Args:  cobra.ExactArgs(1),
	Run:   resendActivation,
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password [uid] [token]",
	Short: "Confirm a password reset using the emailed uid and token",
	Args:  cobra.ExactArgs(2),
	Run:   resetPassword,
}

var appealCmd = &cobra.Command{
	Use:   "appeal [community] [message]",
	Short: "Appeal a ban from a community",
	Args:  cobra.MinimumNArgs(1),
	Run:   appealBan,
}

func init() {
	RootCmd.AddCommand(resendActivationCmd)
	RootCmd.AddCommand(resetPasswordCmd)
	RootCmd.AddCommand(appealCmd)
}

func resendActivation(cmd *cobra.Command, args []string) {
	term.StartSpinner("")
	apiErr := api.Client.ResendActivation(shared.ResendActivationRequest{Email: args[0]})
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error resending activation email")
	}

	fmt.Println("📧 Activation email sent to", args[0])
}

func resetPassword(cmd *cobra.Command, args []string) {
	password, err := term.GetUserPasswordInput("New password:")
	if err != nil {
		term.OutputErrorAndExit("Error reading password: %v", err)
	}

	confirm, err := term.GetUserPasswordInput("Confirm password:")
	if err != nil {
		term.OutputErrorAndExit("Error reading password: %v", err)
	}

	if password != confirm {
		term.OutputErrorAndExit("Passwords don't match")
	}

	term.StartSpinner("")
	apiErr := api.Client.ConfirmPasswordReset(args[0], args[1], shared.ResetPasswordConfirmRequest{
		NewPassword: password,
	})
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error resetting password")
	}

	fmt.Println("✅ Password reset")
	fmt.Println()
	term.PrintCmds("", "sign-in")
}

func appealBan(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	communityPath := args[0]
	message := ""
	if len(args) > 1 {
		message = args[1]
	}

	if message == "" {
		var err error
		message, err = term.GetRequiredUserStringInput("Why should the ban be lifted?")
		if err != nil {
			term.OutputErrorAndExit("Error reading message: %v", err)
		}
	}

	term.StartSpinner("")
	_, apiErr := api.Client.CreateBanAppeal(communityPath, shared.CreateBanAppealRequest{Content: message})
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error submitting appeal")
	}

	fmt.Println("✅ Appeal submitted. A moderator will review it.")
}
