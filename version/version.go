package version

import (
	"os"
	"strings"
)

// Version is stamped at release time via -ldflags. A bare `go build` keeps
// the "source" sentinel and falls back to version.txt when present.
var Version = "source"
var BuiltFromSource = false

func init() {
	if Version != "source" {
		return
	}
	BuiltFromSource = true

	data, err := os.ReadFile("version.txt")
	if err != nil {
		return
	}
	if v := strings.TrimSpace(string(data)); v != "" {
		Version = v
	}
}
