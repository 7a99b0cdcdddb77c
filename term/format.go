package term

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

const maxMarkdownWidth = 100

// GetMarkdown renders markdown for the terminal, wrapped to the current
// terminal width.
func GetMarkdown(input string) (string, error) {
	style := "light"
	if IsDarkBg {
		style = "dark"
	}

	width, err := getTerminalWidth()
	if err != nil || width <= 0 {
		width = 80
	}
	if width > maxMarkdownWidth {
		width = maxMarkdownWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("error creating markdown renderer: %v", err)
	}

	out, err := r.Render(input)
	if err != nil {
		return "", fmt.Errorf("error rendering markdown: %v", err)
	}

	return out, nil
}
