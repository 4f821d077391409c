package runner

import (
	"strings"

	"github.com/lscpkg/lscpkg/internal/util"
	"github.com/samber/lo"
)

// Redact replaces every non-empty secret occurring in s with Redacted.
func Redact(s string, secrets []string) string {
	for _, secret := range lo.Compact(secrets) {
		s = strings.ReplaceAll(s, secret, Redacted)
	}
	return s
}

// RedactArgs returns a copy of args with secrets replaced.
func RedactArgs(args, secrets []string) []string {
	return lo.Map(args, func(arg string, _ int) string {
		return Redact(arg, secrets)
	})
}

// CommandLine renders s for logging with secrets redacted.
func (s Spec) CommandLine() string {
	return util.FormatCommand(s.Executable, RedactArgs(s.Args, s.Secrets))
}
