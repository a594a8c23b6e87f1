package export

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/umd-lib/staffdir/pkg/errors"
)

// Transformer formats a resolved value for display.
type Transformer func(string) string

// Transforms binds display types to transformers. A display type with no
// binding is passed through unchanged, so the zero value is the identity.
type Transforms map[string]Transformer

// Apply formats value according to displayType. Display types match
// case-insensitively.
func (t Transforms) Apply(displayType, value string) string {
	f, ok := t[displayType]
	if !ok {
		f, ok = t[strings.ToLower(displayType)]
	}
	if ok && f != nil {
		return f(value)
	}
	return value
}

var builtins = map[string]Transformer{
	"identity": func(s string) string { return s },
	"trim":     strings.TrimSpace,
	"lower":    strings.ToLower,
	"upper":    strings.ToUpper,
	"title": func(s string) string {
		// Casers keep state, so one per call.
		return cases.Title(language.English).String(s)
	},
}

// Builtin returns the named built-in transformer.
func Builtin(name string) (Transformer, bool) {
	f, ok := builtins[strings.ToLower(name)]
	return f, ok
}

// BuiltinNames returns the names of the built-in transformers, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BindTransforms builds Transforms from a display type -> built-in name map,
// as found in configuration.
func BindTransforms(bindings map[string]string) (Transforms, error) {
	t := make(Transforms, len(bindings))
	for displayType, name := range bindings {
		f, ok := Builtin(name)
		if !ok {
			return nil, errors.NewValidationError("display_types."+displayType, name,
				"unknown transform "+name+" (want one of "+strings.Join(BuiltinNames(), ", ")+")")
		}
		t[strings.ToLower(displayType)] = f
	}
	return t, nil
}
