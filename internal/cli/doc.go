// Package cli implements the lscpkg command-line interface.
//
// Each command is a thin Cobra wrapper: it gathers input (passwords from a
// flag, stdin or a Huh prompt; public keys from a file or stdin), calls the
// lsc service, and delivers the artifact to --out or stdout.
//
//	lscpkg keys                    - Generate a passphrase-protected private key
//	lscpkg rpm <user>              - Build an RPM creating <user> with a public key
//	lscpkg deb <user>              - Build a Debian package creating <user>
//	lscpkg exe <user>              - Build a Windows installer creating <user>
//	lscpkg config [init|show]      - Manage configuration
//	lscpkg doctor                  - Check config, tools and scratch root
//	lscpkg clean                   - Remove workspaces left by killed runs
//	lscpkg version                 - Print build information
//
// Binary output is never written to a terminal. A spinner is shown on
// stderr while an external tool runs, unless --verbose is set. Exit statuses
// follow errors.ExitCode.
package cli
