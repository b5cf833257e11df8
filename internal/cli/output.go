package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// knownExts are output extensions stripped when deriving a base path.
var knownExts = map[string]bool{
	"dot": true, "svg": true, "png": true, "pdf": true, "json": true,
	"txt": true, "puml": true, "toml": true,
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if knownExts[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to its file. A single format with an explicit
// output uses that path as given.
func outputPaths(formats []string, output, input string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// writeFile writes data to path, or to w when path is "-".
func writeFile(w io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := w.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// printWarnings reports options that fell back to defaults.
func printWarnings(w io.Writer, warnings []error) {
	for _, err := range warnings {
		printWarning(w, "%s", err.Error())
	}
}
