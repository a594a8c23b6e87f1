package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umd-lib/staffdir/pkg/errors"
	"github.com/umd-lib/staffdir/pkg/sources"
	"github.com/umd-lib/staffdir/pkg/table"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFetchCSV(t *testing.T) {
	path := writeFile(t, "staff.csv", "uid,Division\njdoe,DSS\nasmith\n")

	src := New(sources.StaffID, path)
	grid, err := src.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, sources.StaffID, src.ID())
	assert.Equal(t, path, src.Path())
	assert.Equal(t, []table.Record{
		{"uid": "jdoe", "Division": "DSS"},
		{"uid": "asmith"},
	}, table.ToRecords(grid))
}

func TestFetchYAML(t *testing.T) {
	path := writeFile(t, "ldap.yaml", `
- [uid, givenName, sn]
- [jdoe, John, Doe]
- [asmith, Ann, 42]
`)

	grid, err := New(sources.LDAPID, path).Fetch(context.Background())
	require.NoError(t, err)

	records := table.ToRecords(grid)
	require.Len(t, records, 2)
	assert.Equal(t, "John", records[0]["givenName"])
	assert.Equal(t, "42", records[1]["sn"])
}

func TestFetchJSON(t *testing.T) {
	path := writeFile(t, "ldap.json", `[["uid","cn"],["jdoe","John Doe"]]`)

	grid, err := New(sources.LDAPID, path).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []table.Record{{"uid": "jdoe", "cn": "John Doe"}}, table.ToRecords(grid))
}

func TestFetchErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := New(sources.StaffID, filepath.Join(t.TempDir(), "nope.csv")).Fetch(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsFetchFailed(err))

		var ioErr *errors.IOError
		assert.ErrorAs(t, err, &ioErr)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, "staff.xlsx", "binary")
		_, err := New(sources.StaffID, path).Fetch(context.Background())
		assert.ErrorIs(t, err, errors.ErrUnsupportedFormat)
		assert.True(t, errors.IsFetchFailed(err))
	})

	t.Run("malformed csv", func(t *testing.T) {
		path := writeFile(t, "staff.csv", "uid,\"broken\n")
		_, err := New(sources.StaffID, path).Fetch(context.Background())
		var parseErr *errors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := New(sources.StaffID, "unused.csv").Fetch(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
