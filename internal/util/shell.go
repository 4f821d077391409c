// Package util provides common utility functions used across the codebase.
package util

import "strings"

// ShellQuote wraps a string in single quotes, escaping any existing single quotes.
// This is safe for use in shell commands where the string should be treated literally.
func ShellQuote(s string) string {
	// Replace ' with '\'' (end quote, escaped quote, start quote)
	escaped := strings.ReplaceAll(s, "'", "'\\''")
	return "'" + escaped + "'"
}

// safeShellChars are characters that never need quoting in a POSIX shell word.
const safeShellChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_./=:@%+,"

// QuoteIfNeeded returns s unchanged when it is a plain shell word and
// ShellQuote(s) otherwise.
func QuoteIfNeeded(s string) string {
	if s == "" {
		return "''"
	}
	for _, r := range s {
		if !strings.ContainsRune(safeShellChars, r) {
			return ShellQuote(s)
		}
	}
	return s
}

// FormatCommand renders an argument vector as a copy-pasteable command line.
// It is for display only; commands are never executed through a shell.
func FormatCommand(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, QuoteIfNeeded(name))
	for _, a := range args {
		parts = append(parts, QuoteIfNeeded(a))
	}
	return strings.Join(parts, " ")
}
