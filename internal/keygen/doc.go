// Package keygen creates passphrase-protected SSH keypairs for local
// security check accounts.
//
// # Key Generation
//
// Generator.Generate runs an ssh-keygen compatible tool inside a private
// workspace:
//
//	ssh-keygen -t rsa -f <workspace>/key -C <comment> -P <passphrase>
//
// The tool is called with an argument vector, never through a shell, so
// neither the comment nor the passphrase is interpreted. The passphrase is
// redacted from every log line.
//
// Passphrases shorter than five characters are rejected before a workspace
// is created or a process is spawned.
//
// # Public Keys
//
// ParsePublicKey validates authorized_keys material supplied by callers and
// reports its type and SHA256 fingerprint.
//
// # Security Notes
//
// Private key bytes only ever live in the workspace, which is removed
// before Generate returns, and in the returned KeyMaterial. The package
// never logs key contents.
package keygen
