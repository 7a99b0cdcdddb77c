package term

import (
	"fmt"
	"os"

	"github.com/cqroot/prompt"
	"github.com/cqroot/prompt/input"
	"github.com/eiannone/keyboard"
	"github.com/fatih/color"
)

// GetRequiredUserStringInput re-prompts until the user enters something.
func GetRequiredUserStringInput(msg string) (string, error) {
	for {
		res, err := GetUserStringInput(msg)
		if err != nil {
			return "", fmt.Errorf("failed to get user input: %s", err)
		}
		if res != "" {
			return res, nil
		}
		color.New(color.Bold, ColorHiRed).Println("🚨 This input is required")
	}
}

func GetUserStringInput(msg string) (string, error) {
	return GetUserStringInputWithDefault(msg, "")
}

func GetUserStringInputWithDefault(msg, def string) (string, error) {
	res, err := prompt.New().Ask(msg).Input(def)

	if err != nil && err.Error() == "user quit prompt" {
		os.Exit(0)
	}

	return res, err
}

func GetUserPasswordInput(msg string) (string, error) {
	res, err := prompt.New().Ask(msg).Input("", input.WithEchoMode(input.EchoPassword))

	if err != nil && err.Error() == "user quit prompt" {
		os.Exit(0)
	}

	return res, err
}

// GetUserKeyInput reads a single keypress without waiting for enter.
func GetUserKeyInput() (rune, error) {
	if err := keyboard.Open(); err != nil {
		return 0, fmt.Errorf("failed to open keyboard: %s", err)
	}
	defer func() {
		_ = keyboard.Close()
	}()

	char, _, err := keyboard.GetKey()
	if err != nil {
		return 0, fmt.Errorf("failed to read keypress: %s", err)
	}

	return char, nil
}

func ConfirmYesNo(fmtStr string, fmtArgs ...interface{}) (bool, error) {
	for {
		color.New(ColorHiMagenta, color.Bold).Printf(fmtStr+" (y)es | (n)o ", fmtArgs...)
		color.New(ColorHiMagenta, color.Bold).Print("> ")

		char, err := GetUserKeyInput()
		if err != nil {
			return false, fmt.Errorf("failed to get user input: %s", err)
		}
		fmt.Println(string(char))

		switch char {
		case 'y', 'Y':
			return true, nil
		case 'n', 'N':
			return false, nil
		}

		fmt.Println()
		color.New(ColorHiRed, color.Bold).Print("Invalid input.\nEnter 'y' for yes or 'n' for no.\n\n")
	}
}
