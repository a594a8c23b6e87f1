package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp creates an App whose logs are discarded.
func newTestApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("LOG_OUTPUT", "discard")
	a, err := New("1.0.0", "abc123", "2026-01-01", "test")
	require.NoError(t, err)
	return a
}

// run executes the root command and returns its stdout.
func run(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := a.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew(t *testing.T) {
	a := newTestApp(t)

	assert.Equal(t, "1.0.0", a.Version())
	assert.Equal(t, "abc123", a.Commit())
	assert.Equal(t, "2026-01-01", a.Date())
	assert.Equal(t, "test", a.BuiltBy())
	assert.NotNil(t, a.Logger())
	assert.NotNil(t, a.Config())
}

func TestVersionCommand(t *testing.T) {
	a := newTestApp(t)

	out, err := run(t, a, "version")
	require.NoError(t, err)
	assert.Equal(t, "staffdir 1.0.0\n", out)

	out, err = run(t, a, "version", "-v", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "commit:   abc123")
}

func TestExportFromFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "staff.csv", "uid,Functional Title,Division\njdoe,Senior Analyst,DSS\n")
	writeFile(t, dir, "ldap.yaml", `
- [uid, givenName, sn, umOfficialTitle, mail]
- [jdoe, Jane, Doe, Librarian III, JDoe@UMD.edu]
- [asmith, Alex, Smith, "", asmith@umd.edu]
`)
	writeFile(t, dir, "mappings.toml", `
[[mappings]]
destination = "Directory ID"
source = "LDAP"
source_field = "uid"

[[mappings]]
destination = "Email"
source = "LDAP"
source_field = "mail"
display_type = "email"

[[mappings]]
destination = "Title"
source = "Staff"
source_field = "Functional Title"
`)
	config := writeFile(t, dir, "staffdir.yaml", `
mappings_file: `+filepath.Join(dir, "mappings.toml")+`
display_types:
  email: lower
sources:
  - id: Staff
    file: `+filepath.Join(dir, "staff.csv")+`
  - id: LDAP
    file: `+filepath.Join(dir, "ldap.yaml")+`
`)

	a := newTestApp(t)
	out, err := run(t, a, "--config", config, "-q", "export")
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"Directory ID,Email,Title",
		"jdoe,jdoe@umd.edu,Senior Analyst (Librarian III)",
		"asmith,asmith@umd.edu,",
		"",
	}, "\n"), out)
}

func TestExportMixedCaseDisplayType(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ldap.csv", "uid,mail\njdoe,jdoe@umd.edu\n")
	writeFile(t, dir, "mappings.toml", `
[[mappings]]
destination = "Directory ID"
source = "LDAP"
source_field = "uid"

[[mappings]]
destination = "Email"
source = "LDAP"
source_field = "mail"
display_type = "Email"
`)
	config := writeFile(t, dir, "staffdir.yaml", `
mappings_file: `+filepath.Join(dir, "mappings.toml")+`
display_types:
  Email: upper
sources:
  - id: LDAP
    file: `+filepath.Join(dir, "ldap.csv")+`
`)

	a := newTestApp(t)
	out, err := run(t, a, "--config", config, "-q", "export")
	require.NoError(t, err)

	assert.Equal(t, "Directory ID,Email\njdoe,JDOE@UMD.EDU\n", out)
}

func TestExportFromSheets(t *testing.T) {
	grids := map[string]string{
		"/v4/spreadsheets/doc/values/Staff":          `{"values": [["uid", "Division"], ["jdoe", "DSS"]]}`,
		"/v4/spreadsheets/doc/values/LDAP":           `{"values": [["uid", "givenName", "sn"], ["jdoe", "Jane", "Doe"]]}`,
		"/v4/spreadsheets/doc/values/Field Mappings": `{"values": [["Destination Field", "Source", "Source Field", "Display Type"], ["Division", "Staff", "Division", ""], ["Display Name", "LDAP", "cn", ""]]}`,
	}
	var (
		mu   sync.Mutex
		keys []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		keys = append(keys, r.URL.Query().Get("key"))
		mu.Unlock()
		body, ok := grids[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	config := writeFile(t, t.TempDir(), "staffdir.yaml", `
spreadsheet_id: doc
google_api_key: secret
sheets_base_url: `+srv.URL+`
`)

	a := newTestApp(t)
	out, err := run(t, a, "--config", config, "-q", "export", "--format", "legacy")
	require.NoError(t, err)

	assert.Equal(t, "DSS,Jane Doe,\n", out)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"secret", "secret", "secret"}, keys)
}

func TestExportFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	config := writeFile(t, t.TempDir(), "staffdir.yaml", `
spreadsheet_id: doc
sheets_base_url: `+srv.URL+`
`)

	a := newTestApp(t)
	_, err := run(t, a, "--config", config, "-q", "export")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch Staff")
}
