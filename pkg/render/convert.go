package render

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/matzehuels/umlgraph/pkg/errors"
)

const rsvgConvert = "rsvg-convert"

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "pdf")
}

// ToPNG converts SVG bytes to PNG using rsvg-convert with the given scale factor.
// Scale of 2.0 produces a 2x resolution image.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return convert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// convert shells out to rsvg-convert. Failures are reported as collaborator
// errors carrying the command line and stderr.
func convert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	args := append([]string{"-f", format}, extraArgs...)
	request := rsvgConvert + " " + strings.Join(args, " ")

	if _, err := exec.LookPath(rsvgConvert); err != nil {
		return nil, &errors.CollaboratorError{
			Collaborator: rsvgConvert,
			Request:      request,
			Cause:        fmt.Errorf("%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format),
		}
	}

	cmd := exec.Command(rsvgConvert, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, &errors.CollaboratorError{
			Collaborator: rsvgConvert,
			Request:      request,
			Response:     errBuf.Bytes(),
			Cause:        err,
		}
	}
	return out.Bytes(), nil
}
