package plantuml

import (
	"context"
	"strings"

	"github.com/matzehuels/umlgraph/pkg/errors"
)

// Format is a PlantUML output format tag. It is passed through to the
// renderer unchanged.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatTXT Format = "txt"
)

// ParseFormat validates a format tag.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSVG, FormatPNG, FormatTXT:
		return f, nil
	case "":
		return FormatSVG, nil
	}
	return "", errors.Configuration("format", "unsupported PlantUML format %q (must be svg, png or txt)", s)
}

// Renderer turns PlantUML text into image bytes.
type Renderer interface {
	// Render returns the rendered bytes, or a *errors.CollaboratorError.
	Render(ctx context.Context, text string, format Format) ([]byte, error)

	// Name identifies the renderer in logs and cache keys.
	Name() string
}
