package dotenv

import (
	"os"
)

// Environment is a read-only view of variables visible to interpolation.
// A key may be present with a nil value: declared, but without a value.
type Environment interface {
	Lookup(key string) (*string, bool)
}

// MutableEnvironment is an Environment that resolved values can be written into.
type MutableEnvironment interface {
	Environment
	Setenv(key, value string) error
}

type osEnv struct{}

func (osEnv) Lookup(key string) (*string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil, false
	}
	return &v, true
}

func (osEnv) Setenv(key, value string) error {
	return os.Setenv(key, value)
}

// OSEnv is the process environment.
var OSEnv MutableEnvironment = osEnv{}

// MapEnv is an in-memory environment, mostly for tests and for callers that
// keep configuration away from the process table.
type MapEnv map[string]*string

// Lookup implements Environment.
func (m MapEnv) Lookup(key string) (*string, bool) {
	v, ok := m[key]
	return v, ok
}

// Setenv implements MutableEnvironment.
func (m MapEnv) Setenv(key, value string) error {
	m[key] = &value
	return nil
}

// EnvFromMap builds a MapEnv from plain strings.
func EnvFromMap(values map[string]string) MapEnv {
	env := make(MapEnv, len(values))
	for k, v := range values {
		env[k] = &v
	}
	return env
}

// layered looks keys up in top first and falls back to bottom.
type layered struct {
	top    Environment
	bottom Environment
}

func (l layered) Lookup(key string) (*string, bool) {
	if l.top != nil {
		if v, ok := l.top.Lookup(key); ok {
			return v, true
		}
	}
	if l.bottom != nil {
		return l.bottom.Lookup(key)
	}
	return nil, false
}

// over returns a view where keys in top shadow keys in bottom.
func over(top, bottom Environment) Environment {
	return layered{top: top, bottom: bottom}
}

// Ptr returns a pointer to s.
func Ptr(s string) *string {
	return &s
}
