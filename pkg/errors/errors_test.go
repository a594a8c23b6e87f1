package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/umd-lib/staffdir/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "person",
			ID:       "jdoe",
		}
		assert.Equal(t, "person with ID jdoe not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("person", "jdoe")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("id", "", "cannot be empty")
		assert.Equal(t, "validation failed for field id: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "bad mapping table"}
		assert.Equal(t, "validation failed: bad mapping table", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestFetchError(t *testing.T) {
	base := errors.New("connection refused")
	err := pkgerrors.NewFetchError("Staff", base)

	assert.Equal(t, "fetch Staff: connection refused", err.Error())
	assert.True(t, pkgerrors.IsFetchFailed(err))
	assert.ErrorIs(t, err, base)

	withMessage := &pkgerrors.FetchError{Source: "LDAP", Message: "no such sheet"}
	assert.Equal(t, "fetch LDAP: no such sheet", withMessage.Error())
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		rateLimited bool
		unavailable bool
	}{
		{name: "rate limited", status: 429, rateLimited: true},
		{name: "server error", status: 503, unavailable: true},
		{name: "forbidden", status: 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &pkgerrors.APIError{Service: "sheets", StatusCode: tt.status, Message: "boom"}
			assert.Contains(t, err.Error(), "sheets")
			assert.Equal(t, tt.rateLimited, pkgerrors.IsRateLimited(err))
			assert.Equal(t, tt.unavailable, errors.Is(err, pkgerrors.ErrServiceUnavailable))
		})
	}

	t.Run("without status", func(t *testing.T) {
		err := &pkgerrors.APIError{Service: "sheets", Message: "boom"}
		assert.Equal(t, "API error from sheets: boom", err.Error())
	})
}

func TestConfigError(t *testing.T) {
	base := errors.New("missing key")
	err := pkgerrors.NewConfigError("sources", "source Staff has no sheet or file", base)

	assert.Equal(t, "configuration error in sources: source Staff has no sheet or file", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestIOError(t *testing.T) {
	base := errors.New("permission denied")
	err := pkgerrors.NewIOError("write", "/tmp/export.csv", base)

	assert.Equal(t, "IO error during write of /tmp/export.csv: permission denied", err.Error())
	assert.Equal(t, base, errors.Unwrap(err))

	noPath := &pkgerrors.IOError{Operation: "read", Message: "eof"}
	assert.Equal(t, "IO error during read: eof", noPath.Error())
}

func TestParseError(t *testing.T) {
	t.Run("with file and line", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "csv", File: "map.csv", Line: 3, Message: "bare quote"}
		assert.Equal(t, "parse error in csv at map.csv:3: bare quote", err.Error())
	})

	t.Run("with file only", func(t *testing.T) {
		err := pkgerrors.NewParseError("yaml", "map.yaml", "bad indent", nil)
		assert.Equal(t, "parse error in yaml file map.yaml: bad indent", err.Error())
	})

	t.Run("without file", func(t *testing.T) {
		err := pkgerrors.NewParseError("json", "", "unexpected EOF", nil)
		assert.Equal(t, "json parse error: unexpected EOF", err.Error())
	})
}

func TestResourceError(t *testing.T) {
	base := errors.New("boom")
	err := pkgerrors.NewResourceError("load", "mappings", "Field Mappings", base)
	assert.Equal(t, "failed to load mappings Field Mappings: boom", err.Error())
	assert.ErrorIs(t, err, base)

	noID := pkgerrors.NewResourceError("render", "export", "", base)
	assert.Equal(t, "failed to render export: boom", noID.Error())
}

func TestWrapHelpers(t *testing.T) {
	base := errors.New("underlying")

	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapValidation("f", nil))
		assert.NoError(t, pkgerrors.WrapIO("read", "p", nil))
		assert.NoError(t, pkgerrors.WrapResource("load", "r", "", nil))
		assert.NoError(t, pkgerrors.WrapParse("csv", "p", nil))
		assert.NoError(t, pkgerrors.WrapFetch("Staff", nil))
	})

	t.Run("typed wrappers", func(t *testing.T) {
		var ioErr *pkgerrors.IOError
		require.ErrorAs(t, pkgerrors.WrapIO("read", "p", base), &ioErr)
		assert.Equal(t, "p", ioErr.Path)

		var parseErr *pkgerrors.ParseError
		require.ErrorAs(t, pkgerrors.WrapParse("csv", "p", base), &parseErr)
		assert.Equal(t, "csv", parseErr.Format)

		assert.True(t, pkgerrors.IsValidationError(pkgerrors.WrapValidation("f", base)))
		assert.True(t, pkgerrors.IsFetchFailed(pkgerrors.WrapFetch("LDAP", base)))
		assert.ErrorIs(t, pkgerrors.WrapResource("load", "r", "", base), base)
	})
}

func TestAs(t *testing.T) {
	err := pkgerrors.WrapResource("load", "config", "", pkgerrors.NewConfigError("config file", ".staffdir", errors.New("bad yaml")))

	var cfgErr *pkgerrors.ConfigError
	require.True(t, pkgerrors.As(err, &cfgErr))
	assert.Equal(t, ".staffdir", cfgErr.Message)

	var notFound *pkgerrors.NotFoundError
	assert.False(t, pkgerrors.As(err, &notFound))
}
