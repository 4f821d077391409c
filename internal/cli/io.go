package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/lscpkg/lscpkg/internal/errors"
	"github.com/lscpkg/lscpkg/internal/logger"
	"github.com/lscpkg/lscpkg/internal/ui"
	"golang.org/x/term"
)

// streams is the terminal a command talks to.
type streams struct {
	In  io.Reader
	Out io.Writer

	InTerminal  bool
	OutTerminal bool
	ErrTerminal bool
}

func systemStreams() streams {
	return streams{
		In:          os.Stdin,
		Out:         os.Stdout,
		InTerminal:  term.IsTerminal(int(os.Stdin.Fd())),
		OutTerminal: term.IsTerminal(int(os.Stdout.Fd())),
		ErrTerminal: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// passwordPrompt asks for a password interactively. Replaced in tests.
var passwordPrompt = promptPassword

func promptPassword(title string, validate func(string) error) (string, error) {
	var password string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(validate),
		),
	)
	if err := form.Run(); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrInput,
			"Password prompt cancelled",
			"Pass --password-stdin to supply it non-interactively")
	}
	return password, nil
}

// resolve returns the password from the flags, stdin, or an interactive
// prompt, in that order. validate is applied to prompted input only; the
// service checks every source.
func (f PasswordFlags) resolve(s streams, title string, validate func(string) error) (string, error) {
	switch {
	case f.Password != "" && f.Stdin:
		return "", errors.New(errors.ErrInput,
			"--password and --password-stdin can't be used together",
			"Pick one")
	case f.Password != "":
		return f.Password, nil
	case f.Stdin:
		line, err := bufio.NewReader(s.In).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", errors.WrapWithCode(err, errors.ErrInput,
				"Couldn't read the password from stdin",
				"")
		}
		password := strings.TrimRight(line, "\r\n")
		if password == "" {
			return "", errors.New(errors.ErrInput,
				"No password on stdin",
				"Pipe the password in, e.g. 'printf %s \"$PASS\" | lscpkg ...'")
		}
		return password, nil
	case s.InTerminal:
		return passwordPrompt(title, validate)
	default:
		return "", errors.New(errors.ErrInput,
			"No password given",
			"Pass --password-stdin and pipe the password in")
	}
}

func requireNonEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// readPublicKey loads the key named by --key-file. "-" reads stdin.
func readPublicKey(path string, in io.Reader) ([]byte, error) {
	if path == "" {
		return nil, errors.New(errors.ErrInput,
			"No public key given",
			"Pass --key-file with the account's .pub file")
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrInput,
			fmt.Sprintf("Couldn't read public key %s", path),
			"Check the path and permissions")
	}
	return data, nil
}

// checkOutput refuses to dump binary data on a terminal. It runs before any
// work so nothing is built that can't be delivered.
func checkOutput(s streams, path string) error {
	if (path == "" || path == "-") && s.OutTerminal {
		return errors.New(errors.ErrInput,
			"Refusing to write binary data to a terminal",
			"Pass --out <file> or redirect stdout")
	}
	return nil
}

// writeArtifact delivers data to path with mode, or to stdout.
func writeArtifact(s streams, path string, data []byte, mode os.FileMode) error {
	if err := checkOutput(s, path); err != nil {
		return err
	}

	if path == "" || path == "-" {
		if _, err := s.Out.Write(data); err != nil {
			return errors.WrapWithCode(err, errors.ErrInput,
				"Failed to write to stdout",
				"")
		}
		return nil
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrInput,
			fmt.Sprintf("Couldn't create %s", path),
			"Check the directory exists and is writable")
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return errors.WrapWithCode(err, errors.ErrInput,
			fmt.Sprintf("Failed to write %s", path),
			"Check free space")
	}
	if err := f.Close(); err != nil {
		return errors.WrapWithCode(err, errors.ErrInput,
			fmt.Sprintf("Failed to write %s", path),
			"Check free space")
	}
	// OpenFile only applies mode to new files.
	if err := os.Chmod(path, mode); err != nil {
		return errors.WrapWithCode(err, errors.ErrInput,
			fmt.Sprintf("Couldn't set permissions on %s", path),
			"")
	}

	ui.PrintSuccess("Wrote %s %s", path, ui.MutedStyle().Render(fmt.Sprintf("(%d bytes)", len(data))))
	return nil
}

// track shows a spinner on an interactive stderr while fn runs. Verbose
// runs skip it so log lines aren't overwritten.
func track(s streams, label string, fn func() error) error {
	if !s.ErrTerminal || logger.DebugEnabled() {
		return fn()
	}
	return ui.NewSpinner(label).Track(fn)
}
