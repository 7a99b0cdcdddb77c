package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

var HomeDir string
var HomeOnuzeDir string
var HomeAuthPath string
var HomeLogPath string

func init() {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Couldn't find home dir: %v\n", err)
		os.Exit(1)
	}
	HomeDir = home

	if os.Getenv("ONUZE_ENV") == "development" {
		HomeOnuzeDir = filepath.Join(home, ".onuze-home-dev")
	} else {
		HomeOnuzeDir = filepath.Join(home, ".onuze-home")
	}

	err = os.MkdirAll(HomeOnuzeDir, os.ModePerm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", HomeOnuzeDir, err)
		os.Exit(1)
	}

	HomeAuthPath = filepath.Join(HomeOnuzeDir, "auth.json")
	HomeLogPath = filepath.Join(HomeOnuzeDir, "onuze.log")
}
