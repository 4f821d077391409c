package cli

import (
	"fmt"
	"strings"

	"github.com/lscpkg/lscpkg/internal/artifact"
	"github.com/lscpkg/lscpkg/internal/config"
	"github.com/lscpkg/lscpkg/internal/keygen"
	"github.com/lscpkg/lscpkg/internal/logger"
	"github.com/lscpkg/lscpkg/internal/lsc"
	"github.com/lscpkg/lscpkg/internal/packaging"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	keysPassword PasswordFlags
	keysOutput   OutputFlags
	rpmPackage   PackageFlags
	rpmOutput    OutputFlags
	debPackage   PackageFlags
	debOutput    OutputFlags
	exePassword  PasswordFlags
	exeOutput    OutputFlags
)

// keysCmd generates a passphrase-protected private key
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Generate an SSH private key for a scanner account",
	Long: `Generate an RSA keypair with ssh-keygen and output the private key.

The passphrase must be at least 5 characters. The matching public key can
be derived later with 'ssh-keygen -y -f <key>'.

Examples:
  lscpkg keys --out scanner.key
  printf %s "$PASS" | lscpkg keys --password-stdin > scanner.key`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return keysCommand(svc, systemStreams(), keysPassword, keysOutput)
	},
}

// rpmCmd builds an RPM that creates the scanner account
var rpmCmd = &cobra.Command{
	Use:   "rpm <user>",
	Short: "Build an RPM that creates a scanner account with a public key",
	Long: `Build an RPM package that creates <user> and installs the given public
key in its authorized keys. The package is produced by the RPM creator
script (tools.rpm_script).

Examples:
  lscpkg rpm scanner --key-file scanner.pub --out scanner.rpm`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return packageCommand(svc, systemStreams(), packaging.RPM, args[0], rpmPackage, rpmOutput)
	},
}

// debCmd builds a Debian package that creates the scanner account
var debCmd = &cobra.Command{
	Use:   "deb <user>",
	Short: "Build a Debian package that creates a scanner account with a public key",
	Long: `Build a Debian package that creates <user> and installs the given public
key in its authorized keys. The package is produced by the DEB creator
script (tools.deb_script) and needs a maintainer identity.

Examples:
  lscpkg deb scanner --key-file scanner.pub --maintainer ops@example.com --out scanner.deb`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return packageCommand(svc, systemStreams(), packaging.DEB, args[0], debPackage, debOutput)
	},
}

// exeCmd builds a Windows installer that creates the scanner account
var exeCmd = &cobra.Command{
	Use:   "exe <user>",
	Short: "Build a Windows installer that creates a scanner account with a password",
	Long: `Build a Windows installer with makensis that creates <user> with the
given password and adds it to the Administrators group. The password is
embedded in the installer as given.

Examples:
  lscpkg exe scanner --out scanner.exe`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return exeCommand(svc, systemStreams(), args[0], exePassword, exeOutput)
	},
}

func init() {
	AddPasswordFlags(keysCmd.Flags(), &keysPassword, "key passphrase")
	AddOutputFlags(keysCmd.Flags(), &keysOutput, "private key")

	AddPackageFlags(rpmCmd.Flags(), &rpmPackage, false)
	AddOutputFlags(rpmCmd.Flags(), &rpmOutput, "package")

	AddPackageFlags(debCmd.Flags(), &debPackage, true)
	AddOutputFlags(debCmd.Flags(), &debOutput, "package")

	AddPasswordFlags(exeCmd.Flags(), &exePassword, "account password")
	AddOutputFlags(exeCmd.Flags(), &exeOutput, "installer")

	rootCmd.AddCommand(keysCmd, rpmCmd, debCmd, exeCmd)
}

// newService loads the config and builds the credential service.
func newService() (*lsc.Service, error) {
	cfg, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}

	log := logger.NewEnvLogger("[lscpkg]")
	if path != "" {
		log.Debug("using config %s", path)
	}
	return lsc.New(cfg, lsc.WithLogger(log))
}

func keysCommand(svc *lsc.Service, s streams, pw PasswordFlags, out OutputFlags) error {
	if err := checkOutput(s, out.Out); err != nil {
		return err
	}
	passphrase, err := pw.resolve(s, "Passphrase for the new key", keygen.CheckPassphrase)
	if err != nil {
		return err
	}

	var key []byte
	err = track(s, "Generating key", func() error {
		var err error
		key, err = svc.GenerateKeyPair(passphrase)
		return err
	})
	if err != nil {
		return err
	}
	return writeArtifact(s, out.Out, key, 0600)
}

func packageCommand(svc *lsc.Service, s streams, format packaging.Format, user string, pkg PackageFlags, out OutputFlags) error {
	if err := checkOutput(s, out.Out); err != nil {
		return err
	}
	publicKey, err := readPublicKey(pkg.KeyFile, s.In)
	if err != nil {
		return err
	}

	var art *artifact.Artifact
	label := fmt.Sprintf("Building %s package for %s", strings.ToUpper(string(format)), user)
	err = track(s, label, func() error {
		var err error
		switch format {
		case packaging.DEB:
			art, err = svc.RecreateDEB(user, publicKey, pkg.Maintainer)
		default:
			art, err = svc.RecreateRPM(user, publicKey)
		}
		return err
	})
	if err != nil {
		return err
	}
	return writeArtifact(s, out.Out, art.Data, 0644)
}

func exeCommand(svc *lsc.Service, s streams, user string, pw PasswordFlags, out OutputFlags) error {
	if err := checkOutput(s, out.Out); err != nil {
		return err
	}
	password, err := pw.resolve(s, fmt.Sprintf("Password for %s", user), requireNonEmpty)
	if err != nil {
		return err
	}

	var art *artifact.Artifact
	err = track(s, fmt.Sprintf("Building Windows installer for %s", user), func() error {
		var err error
		art, err = svc.RecreateEXE(user, password)
		return err
	})
	if err != nil {
		return err
	}
	return writeArtifact(s, out.Out, art.Data, 0644)
}
