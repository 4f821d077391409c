package ui

import (
	"fmt"
	"io"
	"os"
)

// Stderr is where status lines go. Tests may replace it.
var Stderr io.Writer = os.Stderr

// PrintSuccess writes a success line to stderr.
func PrintSuccess(format string, args ...interface{}) {
	printStatus(SuccessStyle().Render(SymbolSuccess), format, args...)
}

// PrintWarning writes a warning line to stderr.
func PrintWarning(format string, args ...interface{}) {
	printStatus(WarningStyle().Render(SymbolWarning), format, args...)
}

// PrintError writes a failure line to stderr.
func PrintError(format string, args ...interface{}) {
	printStatus(ErrorStyle().Render(SymbolFail), format, args...)
}

func printStatus(symbol, format string, args ...interface{}) {
	fmt.Fprintf(Stderr, "%s %s\n", symbol, fmt.Sprintf(format, args...))
}
