package cli

import (
	"github.com/spf13/pflag"
)

// PasswordFlags holds the ways a command can receive a password.
type PasswordFlags struct {
	Password string
	Stdin    bool
}

// AddPasswordFlags registers --password and --password-stdin.
func AddPasswordFlags(fs *pflag.FlagSet, flags *PasswordFlags, what string) {
	fs.StringVar(&flags.Password, "password", "", what+" (visible to other users in the process list; prefer --password-stdin)")
	fs.BoolVar(&flags.Stdin, "password-stdin", false, "read the "+what+" from the first line of stdin")
}

// OutputFlags holds where an artifact is written.
type OutputFlags struct {
	Out string
}

// AddOutputFlags registers --out/-o.
func AddOutputFlags(fs *pflag.FlagSet, flags *OutputFlags, what string) {
	fs.StringVarP(&flags.Out, "out", "o", "", "write the "+what+" to this file instead of stdout")
}

// PackageFlags holds the inputs shared by the rpm and deb commands.
type PackageFlags struct {
	KeyFile    string
	Maintainer string
}

// AddPackageFlags registers --key-file and, for Debian packages, --maintainer.
func AddPackageFlags(fs *pflag.FlagSet, flags *PackageFlags, withMaintainer bool) {
	fs.StringVarP(&flags.KeyFile, "key-file", "k", "", "public key to install, in authorized_keys format ('-' reads stdin)")
	if withMaintainer {
		fs.StringVar(&flags.Maintainer, "maintainer", "", "package maintainer, e.g. 'Scanner Team <scan@example.com>' (default: packaging.maintainer)")
	}
}
