package export

import (
	"strings"

	"github.com/umd-lib/staffdir/pkg/persons"
	"github.com/umd-lib/staffdir/pkg/sources"
)

// Derived column names.
const (
	TitleColumn       = "Title"
	DisplayNameColumn = "Display Name"
	LocationColumn    = "Location"
)

// librarianPrefix marks official titles that are appended to the working title.
const librarianPrefix = "Librarian"

// Deriver computes a column from fixed business rules. Derived values
// overwrite whatever the mapping table resolved for the same column.
type Deriver struct {
	Column string
	Derive func(p *persons.Person) string
}

// DefaultDerivers returns the Title, Display Name and Location derivers.
func DefaultDerivers() []Deriver {
	return []Deriver{
		{Column: TitleColumn, Derive: Title},
		{Column: DisplayNameColumn, Derive: DisplayName},
		{Column: LocationColumn, Derive: Location},
	}
}

// Title prefers the staff functional title and falls back to the directory
// display title. A directory official title starting with "Librarian" that
// differs from the chosen title is appended in parentheses.
func Title(p *persons.Person) string {
	title := p.Get(sources.StaffID, "Functional Title")
	if title == "" {
		title = p.Get(sources.LDAPID, "umDisplayTitle")
	}
	official := p.Get(sources.LDAPID, "umOfficialTitle")
	if strings.HasPrefix(official, librarianPrefix) && official != title {
		title = title + " (" + official + ")"
	}
	return title
}

// DisplayName joins the directory given name and surname with one space.
// Missing parts render as "".
func DisplayName(p *persons.Person) string {
	return p.Get(sources.LDAPID, "givenName") + " " + p.Get(sources.LDAPID, "sn")
}

// Location joins the directory campus room and building with one space.
func Location(p *persons.Person) string {
	return p.Get(sources.LDAPID, "umPrimaryCampusRoom") + " " + p.Get(sources.LDAPID, "umPrimaryCampusBuilding")
}
