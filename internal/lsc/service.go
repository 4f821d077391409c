// Package lsc produces local security check credentials: private keys and
// RPM, Debian and Windows installers that provision a scanner account.
//
// Every operation runs in its own freshly created workspaces and removes
// them before returning, on success and on failure alike. Artifacts are
// read into memory before the workspace holding them is destroyed.
package lsc

import (
	"fmt"
	"os"

	"github.com/lscpkg/lscpkg/internal/artifact"
	"github.com/lscpkg/lscpkg/internal/config"
	"github.com/lscpkg/lscpkg/internal/errors"
	"github.com/lscpkg/lscpkg/internal/installer"
	"github.com/lscpkg/lscpkg/internal/keygen"
	"github.com/lscpkg/lscpkg/internal/logger"
	"github.com/lscpkg/lscpkg/internal/packaging"
	"github.com/lscpkg/lscpkg/internal/runner"
	"github.com/lscpkg/lscpkg/internal/workspace"
)

// publicKeyName is the file the caller's key is written to in its own workspace.
const publicKeyName = "key.pub"

// Service runs the credential operations against one configuration.
// It holds no per-call state and is safe for concurrent use.
type Service struct {
	cfg        *config.Config
	log        logger.Logger
	runner     runner.Runner
	workspaces *workspace.Manager

	keys *keygen.Generator
	rpm  *packaging.Builder
	deb  *packaging.Builder
	exe  *installer.Builder
}

// Option configures a Service.
type Option func(*Service)

// WithRunner replaces the process runner, normally an ExecRunner.
func WithRunner(r runner.Runner) Option {
	return func(s *Service) {
		s.runner = r
	}
}

// WithLogger sets the logger for the service and everything it builds.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// New creates a service from cfg. A nil cfg uses the defaults.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	s := &Service{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Default()
	}
	if s.runner == nil {
		s.runner = runner.NewExecRunner(s.log, cfg.Runner.OutputLimit)
	}

	s.workspaces = workspace.NewManager(cfg.ScratchRoot, s.log)
	s.keys = keygen.NewGenerator(s.runner, s.workspaces, cfg.Tools.Keygen, s.log)
	s.rpm = packaging.NewBuilder(packaging.RPM,
		packaging.ScriptPath(cfg.DataDir, cfg.Tools.RPMScript), s.runner, s.workspaces, s.log)
	s.deb = packaging.NewBuilder(packaging.DEB,
		packaging.ScriptPath(cfg.DataDir, cfg.Tools.DEBScript), s.runner, s.workspaces, s.log)
	s.exe = installer.NewBuilder(cfg.Tools.NSIS, s.runner, s.log)

	return s, nil
}

// Config returns the configuration the service was built with.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// GenerateKeyPair creates an RSA keypair protected by password and returns
// the private key file contents.
func (s *Service) GenerateKeyPair(password string) ([]byte, error) {
	km, err := s.keys.Generate(s.cfg.Keygen.Comment, password)
	if err != nil {
		return nil, err
	}
	return km.PrivateKey, nil
}

// RecreateRPM builds an RPM that creates account name with publicKey in its
// authorized keys, and returns the package.
func (s *Service) RecreateRPM(name string, publicKey []byte) (*artifact.Artifact, error) {
	return s.recreatePackage(s.rpm, packaging.Request{Username: name, PublicKey: publicKey})
}

// RecreateDEB is RecreateRPM for Debian packages. An empty maintainer falls
// back to packaging.maintainer.
func (s *Service) RecreateDEB(name string, publicKey []byte, maintainer string) (*artifact.Artifact, error) {
	if maintainer == "" {
		maintainer = s.cfg.Packaging.Maintainer
	}
	return s.recreatePackage(s.deb, packaging.Request{Username: name, PublicKey: publicKey, Maintainer: maintainer})
}

func (s *Service) recreatePackage(b *packaging.Builder, req packaging.Request) (*artifact.Artifact, error) {
	if err := req.Validate(b.Format); err != nil {
		return nil, err
	}
	if err := s.checkPublicKey(req.PublicKey); err != nil {
		return nil, err
	}

	keyWs, err := s.workspaces.Create("key_")
	if err != nil {
		return nil, err
	}
	defer s.workspaces.Release(keyWs)

	keyPath := keyWs.Join(publicKeyName)
	if err := os.WriteFile(keyPath, req.PublicKey, 0644); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrWorkspace,
			fmt.Sprintf("Failed to write public key to %s", keyPath),
			"Check free space and permissions under scratch_root")
	}

	pkgWs, err := s.workspaces.Create(string(b.Format) + "_")
	if err != nil {
		return nil, err
	}
	defer s.workspaces.Release(pkgWs)

	destination := pkgWs.Join(b.Format.FileName())
	if err := b.Build(req, keyPath, destination); err != nil {
		return nil, err
	}

	return artifact.Load(destination)
}

// checkPublicKey parses the key when validation is enabled. Otherwise it
// only logs the fingerprint of keys that do parse.
func (s *Service) checkPublicKey(data []byte) error {
	info, err := keygen.ParsePublicKey(data)
	if err != nil {
		if s.cfg.Packaging.ValidatePublicKey {
			return err
		}
		s.log.Debug("public key not parsed, passing it through: %v", err)
		return nil
	}
	s.log.Debug("packaging %s key %s", info.Type, info.Fingerprint)
	return nil
}

// RecreateEXE builds a Windows installer that creates account name with
// password, and returns the installer.
func (s *Service) RecreateEXE(name, password string) (*artifact.Artifact, error) {
	ws, err := s.workspaces.Create("exe_")
	if err != nil {
		return nil, err
	}
	defer s.workspaces.Release(ws)

	destination := ws.Join(installer.FileName)
	if err := s.exe.Create(name, password, destination); err != nil {
		return nil, err
	}

	return artifact.Load(destination)
}
