// Package ui provides the terminal status output for lscpkg: a spinner
// shown on stderr while an external tool runs, and styled one-line
// success, warning and failure messages.
//
// Colors are ANSI codes rendered through Lip Gloss. DisableColors switches
// the color profile to plain ASCII for --no-color and non-terminal output.
//
//	s := ui.NewSpinner("Building RPM")
//	err := s.Track(func() error { return build() })
package ui
