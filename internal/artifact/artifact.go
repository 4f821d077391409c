// Package artifact loads a produced file into memory.
package artifact

import (
	"fmt"
	"os"

	"github.com/lscpkg/lscpkg/internal/errors"
)

// Artifact is a produced file held entirely in memory.
// Once returned, the caller owns Data.
type Artifact struct {
	Data []byte
	Size int
}

// Load reads the whole file at path. A missing, unreadable, or empty file
// is an ARTIFACT_READ error; callers never get a zero-length artifact.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrRead,
			fmt.Sprintf("Couldn't read %s", path),
			"The tool reported success but its output is missing or unreadable")
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrRead,
			fmt.Sprintf("%s is empty", path),
			"The tool reported success but produced no output")
	}
	return &Artifact{Data: data, Size: len(data)}, nil
}
