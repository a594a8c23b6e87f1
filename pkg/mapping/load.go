package mapping

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/umd-lib/staffdir/pkg/constants"
	"github.com/umd-lib/staffdir/pkg/errors"
	"github.com/umd-lib/staffdir/pkg/table"
)

// file is the on-disk shape of YAML and TOML mapping files.
type file struct {
	Mappings Table `yaml:"mappings" toml:"mappings"`
}

// FromRecords builds a Table from header-keyed records such as the rows
// of the "Field Mappings" sheet. Records are read through the columns
// Destination Field, Source, Source Field and Display Type; a record
// without a destination field is rejected.
func FromRecords(records []table.Record) (Table, error) {
	t := make(Table, 0, len(records))
	for i, rec := range records {
		r := Rule{
			DestinationField: rec[constants.DestinationFieldHeader],
			Source:           rec[constants.SourceHeader],
			SourceField:      rec[constants.SourceFieldHeader],
			DisplayType:      rec[constants.DisplayTypeHeader],
		}
		if strings.TrimSpace(r.DestinationField) == "" {
			// i+2: one for the header row, one for 1-based numbering
			return nil, errors.NewValidationError(constants.DestinationFieldHeader, rec,
				"blank destination field in mapping row "+strconv.Itoa(i+2))
		}
		t = append(t, r)
	}
	return t, nil
}

// Load reads a mapping table from a .yaml/.yml, .toml or .csv file.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Decode(data, formatOf(path), path)
}

// Decode parses mapping data in the given format ("yaml", "toml" or "csv").
// name is only used in error messages.
func Decode(data []byte, format, name string) (Table, error) {
	switch format {
	case "yaml":
		var f file
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, errors.WrapParse("yaml", name, err)
		}
		return f.Mappings, nil
	case "toml":
		var f file
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, errors.WrapParse("toml", name, err)
		}
		return f.Mappings, nil
	case "csv":
		r := csv.NewReader(bytes.NewReader(data))
		r.FieldsPerRecord = -1
		rows, err := r.ReadAll()
		if err != nil {
			return nil, errors.WrapParse("csv", name, err)
		}
		return FromRecords(table.ToRecords(table.FromStrings(rows)))
	default:
		return nil, errors.NewParseError(format, name, "unsupported mapping format", errors.ErrUnsupportedFormat)
	}
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	case ".csv":
		return "csv"
	default:
		return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
}
