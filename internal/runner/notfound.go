package runner

import "regexp"

// missingCommandPatterns match the messages shells print when a script calls
// a program that isn't installed. Only consulted for exit code 127.
var missingCommandPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bash: (?:line \d+: )?(\S+): command not found`),
	regexp.MustCompile(`(?i)zsh: command not found: (\S+)`),
	regexp.MustCompile(`(?i)sh: \d+: (\S+): not found`),
	regexp.MustCompile(`(?i)/bin/sh: (\S+): not found`),
	regexp.MustCompile(`(?i)env: '?([^\s']+)'?: No such file or directory`),
	regexp.MustCompile(`(?i)(\S+): command not found`),
}

// MissingCommand reports which program a script failed to find.
// The name is empty when the exit code is 127 but stderr names nothing.
func MissingCommand(inv *Invocation) (string, bool) {
	if inv == nil || inv.Outcome != Exited || inv.ExitCode != 127 {
		return "", false
	}
	stderr := string(inv.Stderr)
	for _, pattern := range missingCommandPatterns {
		if m := pattern.FindStringSubmatch(stderr); len(m) > 1 {
			return m[1], true
		}
	}
	return "", true
}
