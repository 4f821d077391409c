// Package clean discovers and removes workspaces left under the scratch
// root by lscpkg processes that were killed before their cleanup ran.
package clean

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prefixes are the workspace name prefixes lscpkg creates, longest first so
// the most specific one matches.
var Prefixes = []string{
	"lsc_user_rpm_create_",
	"lsc_user_deb_create_",
	"lsc_doctor_",
	"lsc_key_",
	"key_",
	"rpm_",
	"deb_",
	"exe_",
}

// StaleDir represents a leftover workspace.
type StaleDir struct {
	Path    string    // Full path under the scratch root
	Prefix  string    // Matched workspace prefix (e.g., "rpm_")
	ModTime time.Time // Last modification of the directory itself
	Size    int64     // Total bytes of regular files inside
}

// Discover lists workspaces directly under root that were last modified
// more than olderThan before now. Only directories named <prefix><uuid>
// are considered; anything else in the scratch root is left alone.
func Discover(root string, olderThan time.Duration, now time.Time) ([]StaleDir, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list scratch root %s: %w", root, err)
	}

	cutoff := now.Add(-olderThan)
	var stale []StaleDir
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		prefix, ok := matchWorkspace(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info, nothing to clean
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(root, entry.Name())
		stale = append(stale, StaleDir{
			Path:    path,
			Prefix:  prefix,
			ModTime: info.ModTime(),
			Size:    diskUsage(path),
		})
	}
	return stale, nil
}

// Remove deletes dirs that pass validateRemovalTarget for root.
// Returns the paths that were successfully removed and any errors.
func Remove(root string, dirs []StaleDir) (removed []string, errs []error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, []error{err}
	}

	for _, dir := range dirs {
		if err := validateRemovalTarget(root, dir.Path); err != nil {
			errs = append(errs, fmt.Errorf("refusing to delete %q: %s", dir.Path, err))
			continue
		}
		if err := os.RemoveAll(dir.Path); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", dir.Path, err))
			continue
		}
		removed = append(removed, dir.Path)
	}
	return removed, errs
}

// validateRemovalTarget allows only real directories that sit directly in
// root and carry a workspace name.
func validateRemovalTarget(root, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty path")
	}

	clean := filepath.Clean(path)
	if filepath.Dir(clean) != filepath.Clean(root) {
		return fmt.Errorf("not directly under %s", root)
	}
	if _, ok := matchWorkspace(filepath.Base(clean)); !ok {
		return fmt.Errorf("not a workspace name")
	}

	info, err := os.Lstat(clean)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory")
	}
	return nil
}

// matchWorkspace reports the prefix of a <prefix><uuid> workspace name.
func matchWorkspace(name string) (string, bool) {
	for _, prefix := range Prefixes {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		id := strings.TrimPrefix(name, prefix)
		if len(id) != 36 {
			return "", false
		}
		if _, err := uuid.Parse(id); err != nil {
			return "", false
		}
		return prefix, true
	}
	return "", false
}

func diskUsage(path string) int64 {
	var total int64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil {
				total += info.Size()
			}
		}
		return nil
	})
	return total
}

// FormatSize renders a byte count for display (e.g., "512B", "1.5K", "3.2M").
func FormatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%c", float64(n)/float64(div), "KMGT"[exp])
}
