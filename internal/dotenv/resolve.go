package dotenv

import (
	"iter"
)

// ResolveVariables interpolates pairs in order and returns the resolved mapping.
//
// Each value is resolved against a view built from base and the values resolved
// so far (acc). With override, acc shadows base, so a file can see and redefine
// its own keys over the ambient environment. Without override, base shadows acc
// and pre-existing variables always win.
//
// A nil raw value stays nil and is not interpolated.
func ResolveVariables(pairs iter.Seq[Pair], override bool, base Environment) *Values {
	acc := NewValues()

	for p := range pairs {
		if p.Value == nil {
			acc.Set(p.Key, nil)
			continue
		}

		var env Environment
		if override {
			env = over(acc, base)
		} else {
			env = over(base, acc)
		}

		result := ResolveAtoms(ParseVariables(*p.Value), env)
		acc.Set(p.Key, &result)
	}

	return acc
}
