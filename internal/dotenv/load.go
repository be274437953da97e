package dotenv

import (
	"context"
	"errors"
)

// resolveSource fills in d.Path by searching upwards from the working
// directory when neither a path nor a stream was given.
func resolveSource(d *DotEnv) error {
	if d.Path != "" || d.Stream != nil {
		return nil
	}
	found, err := FindDotenv("", ".env")
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	d.Path = found
	return nil
}

// Load parses the env source and writes its values into target.
//
// Load does not override by default: variables already in the base
// environment win during interpolation and existing target variables are
// kept. Pass WithOverride(true) to change both.
func Load(ctx context.Context, path string, target MutableEnvironment, opts ...Option) (bool, error) {
	opts = append([]Option{WithOverride(false)}, opts...)
	d := New(path, opts...)
	if err := resolveSource(d); err != nil {
		return false, err
	}
	return d.SetAsEnvironmentVariables(ctx, target)
}

// Read returns the resolved content of the env source without touching any
// environment. File values override the base environment by default.
func Read(ctx context.Context, path string, opts ...Option) (*Values, error) {
	d := New(path, opts...)
	if err := resolveSource(d); err != nil {
		return nil, err
	}
	return d.Dict(ctx)
}
