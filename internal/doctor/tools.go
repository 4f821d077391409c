package doctor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/lscpkg/lscpkg/internal/config"
	"github.com/lscpkg/lscpkg/internal/packaging"
)

// ToolCheck verifies that an external program can be started. Names without
// a separator are searched in PATH; paths must be executable files.
type ToolCheck struct {
	Key     string // config key, e.g. tools.nsis
	Program string
	Hint    string // install suggestion
}

func (c *ToolCheck) Name() string     { return "tool_" + strings.TrimPrefix(c.Key, "tools.") }
func (c *ToolCheck) Category() string { return CategoryTools }

func (c *ToolCheck) Run() CheckResult {
	path, err := resolveProgram(c.Program)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s: %v", c.Key, err),
			Suggestion: c.Hint,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%s: %s", c.Key, path),
	}
}

func resolveProgram(program string) (string, error) {
	if !strings.ContainsRune(program, os.PathSeparator) {
		path, err := exec.LookPath(program)
		if err != nil {
			return "", fmt.Errorf("%s not found in PATH", program)
		}
		return path, nil
	}

	info, err := os.Stat(program)
	if err != nil {
		return "", fmt.Errorf("%s does not exist", program)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", program)
	}
	if info.Mode().Perm()&0111 == 0 {
		return "", fmt.Errorf("%s is not executable", program)
	}
	return program, nil
}

// ToolChecks returns a check for every external program cfg names.
func ToolChecks(cfg *config.Config) []Check {
	return []Check{
		&ToolCheck{
			Key:     "tools.keygen",
			Program: cfg.Tools.Keygen,
			Hint:    "Install OpenSSH: apt install openssh-client (or equivalent)",
		},
		&ToolCheck{
			Key:     "tools.rpm_script",
			Program: packaging.ScriptPath(cfg.DataDir, cfg.Tools.RPMScript),
			Hint:    "Install the package creator scripts into data_dir, or point tools.rpm_script at them",
		},
		&ToolCheck{
			Key:     "tools.deb_script",
			Program: packaging.ScriptPath(cfg.DataDir, cfg.Tools.DEBScript),
			Hint:    "Install the package creator scripts into data_dir, or point tools.deb_script at them",
		},
		&ToolCheck{
			Key:     "tools.nsis",
			Program: cfg.Tools.NSIS,
			Hint:    "Install NSIS: apt install nsis (or equivalent), needed for Windows installers only",
		},
	}
}
