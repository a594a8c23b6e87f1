// Package local reads source tables from files on disk.
package local

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/umd-lib/staffdir/pkg/errors"
	"github.com/umd-lib/staffdir/pkg/sources"
	"github.com/umd-lib/staffdir/pkg/table"
)

// Source loads a grid from a CSV or YAML file. YAML files hold a
// sequence of rows, each a sequence of cells; JSON arrays parse the
// same way.
type Source struct {
	id   sources.ID
	path string
}

// New creates a new local source.
func New(id sources.ID, path string) *Source {
	return &Source{id: id, path: path}
}

// ID returns the source ID.
func (s *Source) ID() sources.ID {
	return s.id
}

// Path returns the file the source reads.
func (s *Source) Path() string {
	return s.path
}

// Fetch reads and parses the file.
func (s *Source) Fetch(ctx context.Context) ([][]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapFetch(s.id.String(), err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.WrapFetch(s.id.String(), errors.WrapIO("read", s.path, err))
	}

	grid, err := Decode(data, s.path)
	if err != nil {
		return nil, errors.WrapFetch(s.id.String(), err)
	}
	return grid, nil
}

// Decode parses file contents according to the extension of name.
func Decode(data []byte, name string) ([][]any, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv":
		return decodeCSV(data, name)
	case ".yaml", ".yml", ".json":
		var grid [][]any
		if err := yaml.Unmarshal(data, &grid); err != nil {
			return nil, errors.WrapParse(strings.TrimPrefix(ext, "."), name, err)
		}
		return grid, nil
	default:
		return nil, &errors.ParseError{
			Format:  strings.TrimPrefix(ext, "."),
			File:    name,
			Message: "expected .csv, .yaml, .yml or .json",
			Err:     errors.ErrUnsupportedFormat,
		}
	}
}

func decodeCSV(data []byte, name string) ([][]any, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.WrapParse("csv", name, err)
	}
	return table.FromStrings(rows), nil
}
