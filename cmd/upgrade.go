package cmd

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/fatih/color"
	"github.com/inconshreveable/go-update"
	"github.com/spf13/cobra"

	"onuze-cli/api"
	"onuze-cli/term"
	"onuze-cli/version"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade onuze to the latest version",
	Args:  cobra.NoArgs,
	Run:   upgrade,
}

func init() {
	RootCmd.AddCommand(upgradeCmd)
}

// CheckForUpgrade is the silent startup check, called from main before
// command dispatch. Skipped for source builds and when
// ONUZE_SKIP_UPGRADE is set.
func CheckForUpgrade() {
	if os.Getenv("ONUZE_SKIP_UPGRADE") != "" {
		return
	}

	if version.BuiltFromSource {
		return
	}

	term.StartSpinner("")
	defer term.StopSpinner()

	latest, err := fetchLatestVersion()
	if err != nil {
		log.Println("Error checking latest version:", err)
		return
	}

	current, err := semver.NewVersion(version.Version)
	if err != nil {
		log.Println("Error parsing current version:", err)
		return
	}

	if !latest.GreaterThan(current) {
		return
	}

	term.StopSpinner()
	fmt.Println("A new version of Onuze is available:", color.New(color.Bold, term.ColorHiGreen).Sprint(latest.String()))
	fmt.Printf("Current version: %s\n", color.New(color.Bold, term.ColorHiCyan).Sprint(version.Version))
	confirmed, err := term.ConfirmYesNo("Upgrade to the latest version?")
	if err != nil {
		log.Println("Error reading input:", err)
		return
	}

	if !confirmed {
		fmt.Println("Note: set ONUZE_SKIP_UPGRADE=1 to stop upgrade prompts")
		return
	}

	term.ResumeSpinner()
	if err := doUpgrade(latest.String()); err != nil {
		log.Println("Upgrade failed:", err)
		return
	}
	term.StopSpinner()
	restartOnuze()
}

func upgrade(cmd *cobra.Command, args []string) {
	term.StartSpinner("")
	latest, err := fetchLatestVersion()
	term.StopSpinner()

	if err != nil {
		term.OutputErrorAndExit("Error checking latest version: %v", err)
	}

	if !version.BuiltFromSource {
		if current, err := semver.NewVersion(version.Version); err == nil && !latest.GreaterThan(current) {
			fmt.Println("✅ Already on the latest version:", color.New(color.Bold, term.ColorHiGreen).Sprint(version.Version))
			return
		}
	}

	term.StartSpinner("📥 Downloading onuze " + latest.String())
	upgradeErr := doUpgrade(latest.String())
	term.StopSpinner()

	if upgradeErr != nil {
		term.OutputErrorAndExit("Upgrade failed: %v", upgradeErr)
	}

	fmt.Println("✅ Upgraded to", color.New(color.Bold, term.ColorHiGreen).Sprint(latest.String()))
}

func fetchLatestVersion() (*semver.Version, error) {
	res, apiErr := api.Client.GetLatestVersion()
	if apiErr != nil {
		return nil, fmt.Errorf("%s", apiErr.Msg)
	}

	latest, err := semver.NewVersion(strings.TrimSpace(res.LatestVersion))
	if err != nil {
		return nil, fmt.Errorf("error parsing latest version: %v", err)
	}
	return latest, nil
}

func doUpgrade(version string) error {
	tag := fmt.Sprintf("cli/v%s", version)
	escapedTag := url.QueryEscape(tag)

	downloadURL := fmt.Sprintf("https://github.com/shaongitbd/onuze/releases/download/%s/onuze_%s_%s_%s.tar.gz", escapedTag, version, runtime.GOOS, runtime.GOARCH)
	resp, err := http.Get(downloadURL)
	if err != nil {
		return fmt.Errorf("failed to download the update: %w", err)
	}
	defer resp.Body.Close()

	// Create a temporary file to save the downloaded archive
	tempFile, err := os.CreateTemp("", "*.tar.gz")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	_, err = io.Copy(tempFile, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to save the downloaded archive: %w", err)
	}

	_, err = tempFile.Seek(0, 0)
	if err != nil {
		return fmt.Errorf("failed to seek in temporary file: %w", err)
	}

	gzr, err := gzip.NewReader(tempFile)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzr.Close()

	tarReader := tar.NewReader(gzr)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read tar header: %w", err)
		}

		if header.Typeflag == tar.TypeReg && (header.Name == "onuze" || header.Name == "onuze.exe") {
			err = update.Apply(tarReader, update.Options{})
			if err != nil {
				return fmt.Errorf("failed to apply update: %w", err)
			}
			break
		}
	}

	return nil
}

func restartOnuze() {
	exe, err := os.Executable()
	if err != nil {
		log.Fatalf("Failed to determine executable path: %v", err)
	}

	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err = cmd.Start()
	if err != nil {
		log.Fatalf("Failed to restart: %v", err)
	}

	err = cmd.Wait()

	// If the process exited with an error, exit with the same error code
	if exitErr, ok := err.(*exec.ExitError); ok {
		os.Exit(exitErr.ExitCode())
	} else if err != nil {
		log.Fatalf("Failed to restart: %v", err)
	}

	os.Exit(0)
}
