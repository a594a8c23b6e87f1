package inspect

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umd-lib/staffdir"
	"github.com/umd-lib/staffdir/internal/appcontext"
	"github.com/umd-lib/staffdir/pkg/errors"
	"github.com/umd-lib/staffdir/pkg/logging"
	"github.com/umd-lib/staffdir/pkg/mapping"
	"github.com/umd-lib/staffdir/pkg/sources"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	exp, err := staffdir.New(
		staffdir.WithSource(&sources.Static{SourceID: sources.LDAPID, Grid: [][]any{
			{"uid", "givenName", "sn", "mail"},
			{"jdoe", "Jane", "Doe", "jdoe@umd.edu"},
		}}, "uid"),
		staffdir.WithMappingTable(mapping.Table{
			{DestinationField: "Email", Source: "LDAP", SourceField: "mail"},
			{DestinationField: "Phone", Source: "Staff", SourceField: "Phone"},
			{DestinationField: "Display Name", Source: "LDAP", SourceField: "cn"},
		}),
		staffdir.WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)

	cmd := NewCommand(&appcontext.Mock{
		ExporterFunc: func() (*staffdir.Exporter, error) { return exp, nil },
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), err
}

func TestInspect(t *testing.T) {
	out, err := execute(t, "jdoe", "--format", "json")
	require.NoError(t, err)

	var cells []Cell
	require.NoError(t, json.Unmarshal([]byte(out), &cells))
	assert.Equal(t, []Cell{
		{Column: "Email", Value: "jdoe@umd.edu", Origin: "mapping", Rule: "Email <- LDAP.mail"},
		{Column: "Phone", Value: "", Origin: "absent", Rule: "Phone <- Staff.Phone"},
		{Column: "Display Name", Value: "Jane Doe", Origin: "derived", Rule: "Display Name <- LDAP.cn"},
	}, cells)
}

func TestInspectTable(t *testing.T) {
	out, err := execute(t, "jdoe", "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "jdoe@umd.edu")
	assert.Contains(t, out, "absent")
}

func TestInspectErrors(t *testing.T) {
	_, err := execute(t, "nobody", "--format", "json")
	assert.True(t, errors.IsNotFound(err))

	_, err = execute(t)
	assert.Error(t, err, "uid is required")
}
