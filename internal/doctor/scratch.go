package doctor

import (
	"fmt"

	"github.com/lscpkg/lscpkg/internal/config"
	"github.com/lscpkg/lscpkg/internal/logger"
	"github.com/lscpkg/lscpkg/internal/workspace"
)

// ScratchCheck creates and removes a probe workspace under the scratch root.
type ScratchCheck struct {
	Root string
}

func (c *ScratchCheck) Name() string     { return "scratch_root" }
func (c *ScratchCheck) Category() string { return CategoryScratch }

func (c *ScratchCheck) Run() CheckResult {
	mgr := workspace.NewManager(c.Root, logger.Noop())

	ws, err := mgr.Create("lsc_doctor_")
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Can't create workspaces under %s", c.Root),
			Suggestion: err.Error(),
		}
	}

	if err := mgr.Destroy(ws); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Workspaces under %s can't be removed", c.Root),
			Suggestion: err.Error(),
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Scratch root %s is usable", c.Root),
	}
}

// AllChecks returns every check for cfg loaded from configPath.
func AllChecks(configPath string, cfg *config.Config) []Check {
	checks := []Check{
		&ConfigFileCheck{ConfigPath: configPath},
		&ConfigSchemaCheck{ConfigPath: configPath},
	}
	checks = append(checks, ToolChecks(cfg)...)
	return append(checks, &ScratchCheck{Root: cfg.ScratchRoot})
}
