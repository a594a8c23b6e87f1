package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umd-lib/staffdir/pkg/errors"
	"github.com/umd-lib/staffdir/pkg/table"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

var wantLoaded = Table{
	{DestinationField: "Email", Source: "LDAP", SourceField: "mail", DisplayType: "text"},
	{DestinationField: "Phone", Source: "Staff", SourceField: "Phone"},
}

func TestFromRecords(t *testing.T) {
	records := table.ToRecords([][]any{
		{"Destination Field", "Source", "Source Field", "Display Type"},
		{"Email", "LDAP", "mail", "text"},
		{"Phone", "Staff", "Phone"},
	})

	tbl, err := FromRecords(records)
	require.NoError(t, err)
	assert.Equal(t, wantLoaded, tbl)
}

func TestFromRecordsRejectsBlankDestination(t *testing.T) {
	records := []table.Record{
		{"Destination Field": "Email", "Source": "LDAP", "Source Field": "mail"},
		{"Destination Field": "  ", "Source": "LDAP", "Source Field": "sn"},
	}

	_, err := FromRecords(records)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), "mapping row 3")
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "mappings.yaml",
			content: `mappings:
  - destination: Email
    source: LDAP
    source_field: mail
    display_type: text
  - destination: Phone
    source: Staff
    source_field: Phone
`,
		},
		{
			name: "toml",
			file: "mappings.toml",
			content: `[[mappings]]
destination = "Email"
source = "LDAP"
source_field = "mail"
display_type = "text"

[[mappings]]
destination = "Phone"
source = "Staff"
source_field = "Phone"
`,
		},
		{
			name: "csv",
			file: "mappings.csv",
			content: "Destination Field,Source,Source Field,Display Type\n" +
				"Email,LDAP,mail,text\n" +
				"Phone,Staff,Phone\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Load(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, wantLoaded, tbl)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		var ioErr *errors.IOError
		assert.ErrorAs(t, err, &ioErr)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := Load(writeFile(t, "mappings.xlsx", "binary"))
		assert.ErrorIs(t, err, errors.ErrUnsupportedFormat)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "mappings.yml", "mappings: [unclosed"))
		var parseErr *errors.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "yaml", parseErr.Format)
	})

	t.Run("malformed toml", func(t *testing.T) {
		_, err := Load(writeFile(t, "mappings.toml", "[[mappings]\n"))
		var parseErr *errors.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "toml", parseErr.Format)
	})
}
