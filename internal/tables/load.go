package tables

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// readDocument reads path and picks its format from the extension
func readDocument(path string) ([]byte, Format, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, "", parseFailed(path, err)
	}

	src, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", notFound(path)
	}
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return src, f, nil
}
