package tables

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lox/blackjack-advisor/internal/fileutil"
)

// WriteDefaults writes the built-in documents into dir in the given format
// and returns the written paths. HCL copies the embedded files verbatim;
// YAML and TOML are encoded from the parsed defaults. Existing files are
// replaced.
func WriteDefaults(dir string, f Format) ([]string, error) {
	if f == FormatJSON {
		return nil, fmt.Errorf("writing %s documents is not supported, use hcl, yaml or toml", f)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	docs, err := renderDefaults(f)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, d := range docs {
		path := filepath.Join(dir, d.name+f.Ext())
		if err := fileutil.WriteAtomic(path, 0o644, d.write); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// rendered is one document and the function that encodes it
type rendered struct {
	name  string
	write func(io.Writer) error
}

func renderDefaults(f Format) ([]rendered, error) {
	if f == FormatHCL {
		raw := func(file string) func(io.Writer) error {
			return func(w io.Writer) error {
				_, err := w.Write(defaultSource(file))
				return err
			}
		}
		return []rendered{
			{"strategy", raw(strategyFile)},
			{"deviations", raw(deviationsFile)},
			{"counting", raw(countingFile)},
		}, nil
	}

	b, err := LoadBundle(context.Background(), Paths{})
	if err != nil {
		return nil, err
	}

	return []rendered{
		{"strategy", func(w io.Writer) error { return wrap("encode strategy", EncodeStrategy(w, f, b.Strategy)) }},
		{"deviations", func(w io.Writer) error { return wrap("encode deviations", EncodeDeviations(w, f, b.Deviations)) }},
		{"counting", func(w io.Writer) error { return wrap("encode counting system", EncodeCountingSystem(w, f, b.Counting)) }},
	}, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}
