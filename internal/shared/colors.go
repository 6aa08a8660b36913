package shared

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Package-level color variables
var (
	ColorInfo    = color.New(color.FgCyan)
	ColorSuccess = color.New(color.FgGreen)
	ColorWarning = color.New(color.FgYellow)
	ColorError   = color.New(color.FgRed)
	ColorPrompt  = color.New(color.FgBlue, color.Bold)
	ColorMuted   = color.New(color.FgHiBlack)
)

// InitializeColors turns color output off when stdout is not a terminal or when forced off
func InitializeColors(disable bool) {
	color.NoColor = disable || !isatty.IsTerminal(os.Stdout.Fd())
}
