package term

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/fatih/color"

	"onuze-cli/shared"
)

func OutputErrorAndExit(msg string, args ...interface{}) {
	StopSpinner()
	msg = fmt.Sprintf(msg, args...)

	displayMsg := ""
	errorParts := strings.Split(msg, ": ")
	addedErrors := map[string]bool{}

	if len(errorParts) > 1 {
		var lastPart string
		i := 0
		for _, part := range errorParts {
			// don't repeat the same error message
			if _, ok := addedErrors[strings.ToLower(part)]; ok {
				continue
			}

			if len(lastPart) < 10 && i > 0 {
				lastPart = lastPart + ": " + part
				displayMsg += ": " + part
				addedErrors[strings.ToLower(lastPart)] = true
				continue
			}

			if i > 0 {
				displayMsg += "\n"
			}

			s := capitalize(part)
			if i > 0 {
				s = "→ " + s
			}

			indent := strings.Repeat("  ", i)
			displayMsg += indent + s

			addedErrors[strings.ToLower(part)] = true
			lastPart = part
			i++
		}
	} else {
		displayMsg = capitalize(msg)
	}

	fmt.Fprintln(os.Stderr, color.New(color.Bold, ColorHiRed).Sprint("🚨 "+displayMsg))
	os.Exit(1)
}

func OutputSimpleError(msg string, args ...interface{}) {
	msg = fmt.Sprintf(msg, args...)
	fmt.Fprintln(os.Stderr, color.New(color.Bold, ColorHiRed).Sprint("🚨 "+capitalize(msg)))
}

// OutputApiError prints a friendly message for a typed api error and exits.
func OutputApiError(apiErr *shared.ApiError, prefix string) {
	StopSpinner()

	switch apiErr.Type {
	case shared.ApiErrorTypeNetwork:
		OutputErrorAndExit("%s: can't reach the server. Check your connection and try again.", prefix)

	case shared.ApiErrorTypeInvalidToken:
		fmt.Fprintln(os.Stderr, color.New(color.Bold, ColorHiRed).Sprint("🚨 Your session has expired."))
		fmt.Println()
		PrintCmds("", "sign-in")
		os.Exit(1)

	case shared.ApiErrorTypeUnauthorized:
		OutputErrorAndExit("%s: you don't have permission to do that", prefix)

	case shared.ApiErrorTypeNotFound:
		OutputErrorAndExit("%s: not found", prefix)

	case shared.ApiErrorTypeValidation:
		OutputErrorAndExit("%s: %s", prefix, apiErr.Error())

	default:
		OutputErrorAndExit("%s: %s", prefix, apiErr.Msg)
	}
}

func OutputUnformattedErrorAndExit(msg string) {
	StopSpinner()
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
