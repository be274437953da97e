package dotenv

import (
	"regexp"
	"strings"
)

// Atom is one fragment of a raw value: literal text or a variable reference.
type Atom interface {
	Resolve(env Environment) string
}

// Literal is text copied unchanged.
type Literal struct {
	Value string
}

// Resolve returns the literal text.
func (l Literal) Resolve(Environment) string {
	return l.Value
}

// Variable is a ${NAME} or ${NAME:-default} reference.
type Variable struct {
	Name    string
	Default *string
}

// Resolve looks the name up in env.
//
//   - set to a value:    that value
//   - set but nil:       ""
//   - missing:           the default, or "" without one
func (v Variable) Resolve(env Environment) string {
	if val, ok := env.Lookup(v.Name); ok {
		if val == nil {
			return ""
		}
		return *val
	}
	if v.Default != nil {
		return *v.Default
	}
	return ""
}

var posixVariable = regexp.MustCompile(`\$\{([^}:]*)(?::-([^}]*))?\}`)

// ParseVariables splits value into atoms covering the whole string.
func ParseVariables(value string) []Atom {
	var atoms []Atom
	cursor := 0
	for _, m := range posixVariable.FindAllStringSubmatchIndex(value, -1) {
		start, end := m[0], m[1]
		if start > cursor {
			atoms = append(atoms, Literal{Value: value[cursor:start]})
		}
		v := Variable{Name: value[m[2]:m[3]]}
		if m[4] >= 0 {
			def := value[m[4]:m[5]]
			v.Default = &def
		}
		atoms = append(atoms, v)
		cursor = end
	}
	if cursor < len(value) {
		atoms = append(atoms, Literal{Value: value[cursor:]})
	}
	return atoms
}

// ResolveAtoms concatenates the resolution of every atom, left to right.
// Substituted text is not scanned again.
func ResolveAtoms(atoms []Atom, env Environment) string {
	var sb strings.Builder
	for _, a := range atoms {
		sb.WriteString(a.Resolve(env))
	}
	return sb.String()
}
