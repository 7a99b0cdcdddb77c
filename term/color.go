package term

import (
	"github.com/fatih/color"
	"github.com/muesli/termenv"
)

var IsDarkBg = termenv.HasDarkBackground()

// Hi* variants wash out on light backgrounds, so the palette degrades to
// the plain colors there.
var (
	ColorHiGreen   = pick(color.FgHiGreen, color.FgGreen)
	ColorHiMagenta = pick(color.FgHiMagenta, color.FgMagenta)
	ColorHiRed     = pick(color.FgHiRed, color.FgRed)
	ColorHiYellow  = pick(color.FgHiYellow, color.FgYellow)
	ColorHiCyan    = pick(color.FgHiCyan, color.FgCyan)
	ColorHiBlue    = pick(color.FgHiBlue, color.FgBlue)
)

func pick(dark, light color.Attribute) color.Attribute {
	if IsDarkBg {
		return dark
	}
	return light
}
