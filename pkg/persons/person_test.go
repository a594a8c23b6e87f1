package persons

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umd-lib/staffdir/pkg/errors"
	"github.com/umd-lib/staffdir/pkg/logging"
	"github.com/umd-lib/staffdir/pkg/sources"
)

func newTestPerson(t *testing.T, opts ...Option) *Person {
	t.Helper()
	p, err := New("jdoe", map[sources.ID]Fields{
		sources.StaffID: {"Functional Title": "", "Phone": "x5-1234"},
		sources.LDAPID:  {"givenName": "Jane", "sn": "Doe"},
	}, opts...)
	require.NoError(t, err)
	return p
}

func TestNewRejectsContractViolations(t *testing.T) {
	t.Run("empty id", func(t *testing.T) {
		p, err := New("", map[sources.ID]Fields{})
		assert.Nil(t, p)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("nil sources", func(t *testing.T) {
		p, err := New("jdoe", nil)
		assert.Nil(t, p)
		var vErr *errors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "sources", vErr.Field)
	})

	t.Run("empty sources are fine", func(t *testing.T) {
		p, err := New("jdoe", map[sources.ID]Fields{})
		require.NoError(t, err)
		assert.Empty(t, p.Sources())
	})

	t.Run("MustNew panics", func(t *testing.T) {
		assert.Panics(t, func() { MustNew("", nil) })
	})
}

func TestGet(t *testing.T) {
	p := newTestPerson(t)

	assert.Equal(t, "Jane", p.Get(sources.LDAPID, "givenName"))
	assert.Equal(t, "", p.Get(sources.StaffID, "Functional Title"))
	assert.Equal(t, "", p.Get(sources.LDAPID, "umDisplayTitle"))
	assert.Equal(t, "", p.Get("Payroll", "salary"))
}

func TestLookupDistinguishesEmptyFromAbsent(t *testing.T) {
	p := newTestPerson(t)

	tests := []struct {
		name   string
		source sources.ID
		field  string
		value  string
		ok     bool
	}{
		{name: "present", source: sources.StaffID, field: "Phone", value: "x5-1234", ok: true},
		{name: "present but empty", source: sources.StaffID, field: "Functional Title", value: "", ok: true},
		{name: "field absent", source: sources.LDAPID, field: "mail", ok: false},
		{name: "source absent", source: "Payroll", field: "salary", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := p.Lookup(tt.source, tt.field)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestObserverReceivesMisses(t *testing.T) {
	c := &Collector{}
	p := newTestPerson(t, WithObserver(c.Observe))

	p.Get(sources.LDAPID, "givenName")
	p.Get(sources.LDAPID, "umOfficialTitle")
	p.Lookup("Payroll", "salary")
	p.Lookup(sources.StaffID, "Functional Title")

	require.Len(t, c.Misses, 2)
	assert.Equal(t, Miss{PersonID: "jdoe", Source: sources.LDAPID, Field: "umOfficialTitle", Reason: FieldMissing}, c.Misses[0])
	assert.Equal(t, SourceMissing, c.Misses[1].Reason)
	assert.Equal(t, 1, c.Count(FieldMissing))
	assert.Equal(t, 1, c.Count(SourceMissing))
}

func TestLogObserver(t *testing.T) {
	logger := logging.NewTestLogger(t)
	p := newTestPerson(t, WithObserver(LogObserver(logger.Logger)))

	p.Get(sources.LDAPID, "umPrimaryCampusRoom")

	logger.AssertCount(t, 1)
	logger.AssertContains(t, `"field":"umPrimaryCampusRoom"`)
	logger.AssertContains(t, `"reason":"field_missing"`)
	logger.AssertContains(t, `"uid":"jdoe"`)
}

func TestFieldsReturnsCopy(t *testing.T) {
	p := newTestPerson(t)

	fields := p.Fields(sources.LDAPID)
	fields["givenName"] = "Changed"

	assert.Equal(t, "Jane", p.Get(sources.LDAPID, "givenName"))
	assert.Nil(t, p.Fields("Payroll"))
}

func TestString(t *testing.T) {
	assert.Equal(t, "Person[id: jdoe]", newTestPerson(t).String())
}
