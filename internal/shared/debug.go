package shared

import (
	"fmt"
	"os"
)

// DebugPrint prints debug messages when debug mode is enabled
func DebugPrint(debug bool, format string, args ...interface{}) {
	if debug {
		ColorMuted.Printf("DEBUG: "+format+"\n", args...)
	}
}

// IsDebugMode checks if debug mode is enabled via environment variable
func IsDebugMode() bool {
	return os.Getenv("DEBUG") == "1" || os.Getenv("DEBUG") == "true"
}

// PrintErrorList prints at most limit per-file errors, then a count of the rest
func PrintErrorList(errs []FileError, limit int) {
	for i, fe := range errs {
		if i == limit {
			ColorError.Printf("   ... and %d more\n", len(errs)-limit)
			return
		}
		ColorError.Printf("   • %s\n", fe.Error())
	}
}

// Pluralize returns word with an "s" unless n is one
func Pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
