package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"onuze-cli/api"
	"onuze-cli/auth"
	"onuze-cli/term"
	"onuze-cli/types"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload an image and print its hosted URL",
	Args:  cobra.ExactArgs(1),
	Run:   upload,
}

func init() {
	RootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().String("kind", string(types.UploadKindPost), "Upload kind: post, community, or avatar")
}

func upload(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	kindStr, _ := cmd.Flags().GetString("kind")
	kind := types.UploadKind(kindStr)
	switch kind {
	case types.UploadKindPost, types.UploadKindCommunity, types.UploadKindAvatar:
	default:
		term.OutputErrorAndExit("Invalid kind: %s", kindStr)
	}

	file, err := os.Open(args[0])
	if err != nil {
		term.OutputErrorAndExit("Error opening file: %v", err)
	}
	defer file.Close()

	term.StartSpinner("📤 Uploading")
	res, apiErr := api.Client.UploadImage(file, filepath.Base(args[0]), kind)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error uploading file")
	}

	fmt.Println(res.Url)
	fmt.Println()
	term.PrintCmds("", "submit")
}
