package term

import (
	"os"

	"github.com/fatih/color"
	"github.com/plandex-ai/survey/v2"
)

func SelectFromList(msg string, options []string) (string, error) {
	var selected string
	prompt := &survey.Select{
		Message:       color.New(ColorHiMagenta, color.Bold).Sprint(msg),
		Options:       options,
		PageSize:      15,
		FilterMessage: "",
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		if err.Error() == "interrupt" {
			os.Exit(0)
		}
		return "", err
	}

	return selected, nil
}
