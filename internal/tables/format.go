package tables

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a document syntax
type Format string

const (
	FormatHCL  Format = "hcl"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat accepts a format name as given on the command line
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "hcl":
		return FormatHCL, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported format %q", s)
	}
}

// FormatOf picks the format from a file extension
func FormatOf(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%s: no file extension to pick a format from", path)
	}
	return ParseFormat(ext)
}

// Ext returns the file extension written for the format
func (f Format) Ext() string {
	return "." + string(f)
}
