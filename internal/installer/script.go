package installer

import (
	_ "embed"
	"io"
	"text/template"

	"github.com/lscpkg/lscpkg/internal/errors"
)

//go:embed script.nsi.tmpl
var scriptTemplate string

var tmpl = template.Must(template.New("nsis").Parse(scriptTemplate))

// Script holds the values substituted into the installer script.
// Values are inserted verbatim: quotes, spaces, or NSIS variables in
// Username or Password change the generated script.
type Script struct {
	// OutFile is the installer path makensis writes.
	OutFile  string
	Username string
	Password string
}

// Render writes the NSIS installer script for s to w.
func Render(w io.Writer, s Script) error {
	if err := tmpl.Execute(w, s); err != nil {
		return errors.WrapWithCode(err, errors.ErrWorkspace,
			"Failed to write the installer script",
			"Check free space in scratch_root")
	}
	return nil
}
