package keygen

import (
	"fmt"
	"os"

	"github.com/lscpkg/lscpkg/internal/artifact"
	"github.com/lscpkg/lscpkg/internal/errors"
	"github.com/lscpkg/lscpkg/internal/logger"
	"github.com/lscpkg/lscpkg/internal/runner"
	"github.com/lscpkg/lscpkg/internal/workspace"
)

const (
	// DefaultTool is the external keypair generator.
	DefaultTool = "ssh-keygen"
	// DefaultComment is embedded in every generated key.
	DefaultComment = "Key generated by lscpkg"
	// MinPassphraseLength is the shortest passphrase accepted.
	MinPassphraseLength = 5
	// KeyType is the only key type produced.
	KeyType = "rsa"

	privateKeyName  = "key"
	workspacePrefix = "lsc_key_"
)

// KeyMaterial is a generated keypair plus the inputs that created it.
type KeyMaterial struct {
	PrivateKey []byte
	// PublicKey is empty if the generator didn't leave a readable .pub file.
	PublicKey  []byte
	Comment    string
	Passphrase string
}

// Generator produces RSA keypairs with an external ssh-keygen compatible tool.
type Generator struct {
	Runner     runner.Runner
	Workspaces *workspace.Manager
	// Tool is the generator executable. DefaultTool when empty.
	Tool   string
	Logger logger.Logger
}

// NewGenerator creates a generator using tool.
func NewGenerator(r runner.Runner, ws *workspace.Manager, tool string, log logger.Logger) *Generator {
	if log == nil {
		log = logger.Noop()
	}
	return &Generator{Runner: r, Workspaces: ws, Tool: tool, Logger: log}
}

// CheckPassphrase rejects passphrases shorter than MinPassphraseLength.
func CheckPassphrase(passphrase string) error {
	if len(passphrase) < MinPassphraseLength {
		return errors.New(errors.ErrPrecondition,
			fmt.Sprintf("Passphrase must be at least %d characters", MinPassphraseLength),
			"Choose a longer password")
	}
	return nil
}

// Generate creates a keypair protected by passphrase and returns it.
// Inputs are validated before any workspace or process is created; the
// workspace holding the key files is always removed before returning.
func (g *Generator) Generate(comment, passphrase string) (*KeyMaterial, error) {
	if comment == "" {
		return nil, errors.New(errors.ErrPrecondition,
			"Key comment must be set",
			"Set keygen.comment in the config file")
	}
	if err := CheckPassphrase(passphrase); err != nil {
		return nil, err
	}

	ws, err := g.Workspaces.Create(workspacePrefix)
	if err != nil {
		return nil, err
	}
	defer g.Workspaces.Release(ws)

	keyPath := ws.Join(privateKeyName)
	tool := g.Tool
	if tool == "" {
		tool = DefaultTool
	}

	inv := g.Runner.Run(runner.Spec{
		Executable: tool,
		Args:       []string{"-t", KeyType, "-f", keyPath, "-C", comment, "-P", passphrase},
		Dir:        ws.Path(),
		Secrets:    []string{passphrase},
	})
	if err := inv.AsError("Failed to create private key"); err != nil {
		return nil, err
	}

	private, err := artifact.Load(keyPath)
	if err != nil {
		return nil, err
	}

	km := &KeyMaterial{
		PrivateKey: private.Data,
		Comment:    comment,
		Passphrase: passphrase,
	}
	if pub, err := os.ReadFile(keyPath + ".pub"); err == nil {
		km.PublicKey = pub
	} else {
		g.Logger.Debug("public key not readable: %v", err)
	}

	return km, nil
}
