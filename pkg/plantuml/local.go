package plantuml

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/matzehuels/umlgraph/pkg/errors"
)

// DefaultExecutable is the command looked up on PATH by [Local].
const DefaultExecutable = "plantuml"

// Local renders by running the plantuml executable in pipe mode:
// text on stdin, image on stdout.
type Local struct {
	Executable string
}

// Name implements Renderer.
func (l *Local) Name() string { return "plantuml-local" }

// Render implements Renderer. A missing executable or a non-zero exit is
// returned as a CollaboratorError holding the command line and stderr.
func (l *Local) Render(ctx context.Context, text string, format Format) ([]byte, error) {
	exe := l.Executable
	if exe == "" {
		exe = DefaultExecutable
	}
	args := []string{"-pipe", "-t" + string(format)}
	cmdline := exe + " " + strings.Join(args, " ")

	path, err := exec.LookPath(exe)
	if err != nil {
		return nil, &errors.CollaboratorError{
			Collaborator: l.Name(),
			Request:      cmdline,
			Cause:        fmt.Errorf("%s not found. Install with:\n  macOS:  brew install plantuml\n  Linux:  apt install plantuml", exe),
		}
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = strings.NewReader(text)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, &errors.CollaboratorError{
			Collaborator: l.Name(),
			Request:      cmdline,
			Response:     errBuf.Bytes(),
			Cause:        err,
		}
	}
	return out.Bytes(), nil
}
