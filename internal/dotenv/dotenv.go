package dotenv

import (
	"EnvKit/internal/logger"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"golang.org/x/text/encoding/htmlindex"
)

var (
	// ErrNotFound is returned when an env file cannot be located.
	ErrNotFound = errors.New("env file not found")
	// ErrUnknownEncoding is returned for an encoding name that cannot be decoded.
	ErrUnknownEncoding = errors.New("unknown encoding")
)

// DotEnv is one env source plus the policy used to resolve it.
type DotEnv struct {
	// Path is read when it names a regular file; otherwise Stream is used.
	Path   string
	Stream io.Reader

	Verbose     bool
	Interpolate bool
	// Override lets file values shadow BaseEnv (and each other) during interpolation.
	Override bool
	// OverrideExisting lets SetAsEnvironmentVariables replace variables that
	// are already set in the target environment.
	OverrideExisting bool
	// Encoding names the source encoding; empty means UTF-8.
	Encoding string
	BaseEnv  Environment

	dict *Values
}

// Option adjusts a DotEnv.
type Option func(*DotEnv)

// WithStream reads from r when Path does not name a file.
func WithStream(r io.Reader) Option {
	return func(d *DotEnv) { d.Stream = r }
}

// WithVerbose logs missing files and keys.
func WithVerbose(v bool) Option {
	return func(d *DotEnv) { d.Verbose = v }
}

// WithInterpolate turns ${VAR} expansion on or off.
func WithInterpolate(v bool) Option {
	return func(d *DotEnv) { d.Interpolate = v }
}

// WithOverride sets both the interpolation precedence and the ambient write guard.
func WithOverride(v bool) Option {
	return func(d *DotEnv) {
		d.Override = v
		d.OverrideExisting = v
	}
}

// WithOverrideExisting sets only the ambient write guard.
func WithOverrideExisting(v bool) Option {
	return func(d *DotEnv) { d.OverrideExisting = v }
}

// WithEncoding decodes the source from the named encoding (e.g. "latin1").
func WithEncoding(name string) Option {
	return func(d *DotEnv) { d.Encoding = name }
}

// WithBaseEnv replaces the process environment as the interpolation base.
func WithBaseEnv(env Environment) Option {
	return func(d *DotEnv) { d.BaseEnv = env }
}

// New returns a DotEnv for path. Interpolation and override are on and the
// base environment is the process environment unless options say otherwise.
func New(path string, opts ...Option) *DotEnv {
	d := &DotEnv{
		Path:             path,
		Interpolate:      true,
		Override:         true,
		OverrideExisting: true,
		BaseEnv:          OSEnv,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func isFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// decoder wraps r so it yields UTF-8 text. Empty and UTF-8 names pass r through.
func decoder(name string) (func(io.Reader) io.Reader, error) {
	if name == "" {
		return func(r io.Reader) io.Reader { return r }, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
	}
	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		return func(r io.Reader) io.Reader { return r }, nil
	}
	return func(r io.Reader) io.Reader { return enc.NewDecoder().Reader(r) }, nil
}

// stream opens the source and tokenizes it.
func (d *DotEnv) stream(ctx context.Context) (*Stream, error) {
	decode, err := decoder(d.Encoding)
	if err != nil {
		return nil, err
	}

	switch {
	case isFile(d.Path):
		f, err := os.Open(d.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return NewStream(decode(f))
	case d.Stream != nil:
		return NewStream(decode(d.Stream))
	default:
		if d.Verbose {
			logger.Info(ctx, "Could not find configuration file '{{_File_}}%s{{|-|}}'.", d.sourceName())
		}
		return ParseString(""), nil
	}
}

// warnInvalid logs a binding the tokenizer could not parse.
func warnInvalid(ctx context.Context, b Binding) {
	if b.Error {
		logger.Warn(ctx, "Could not parse statement starting at line {{_Var_}}%d{{|-|}}.", b.Original.Line)
	}
}

// Parse yields the raw key/value pairs of the source, skipping blank and
// comment lines. Malformed lines are logged and skipped; they never stop the parse.
func (d *DotEnv) Parse(ctx context.Context) (iter.Seq[Pair], error) {
	s, err := d.stream(ctx)
	if err != nil {
		return nil, err
	}
	return func(yield func(Pair) bool) {
		for s.Next() {
			b := s.Binding()
			warnInvalid(ctx, b)
			if !b.HasKey() {
				continue
			}
			if !yield(Pair{Key: *b.Key, Value: b.Value}) {
				return
			}
		}
	}, nil
}

// Dict returns the resolved mapping, parsing the source on first use.
func (d *DotEnv) Dict(ctx context.Context) (*Values, error) {
	if d.dict != nil && d.dict.Len() > 0 {
		return d.dict, nil
	}
	pairs, err := d.Parse(ctx)
	if err != nil {
		return nil, err
	}
	return d.UpdateDict(pairs), nil
}

// UpdateDict merges pairs into the mapping resolved so far and returns it.
//
// With interpolation, the lookup base is BaseEnv combined with the existing
// mapping: the existing mapping wins under Override, BaseEnv wins otherwise.
// Newly resolved values always replace existing ones.
func (d *DotEnv) UpdateDict(pairs iter.Seq[Pair]) *Values {
	target := d.dict
	if target == nil {
		target = NewValues()
	}

	if d.Interpolate {
		var base Environment
		if d.Override {
			base = over(d.dict, d.BaseEnv)
		} else {
			base = over(d.BaseEnv, d.dict)
		}
		target.Merge(ResolveVariables(pairs, d.Override, base))
	} else {
		for p := range pairs {
			target.Set(p.Key, p.Value)
		}
	}

	d.dict = target
	return d.dict
}

// SetAsEnvironmentVariables writes every resolved, non-nil value into target.
// Keys already present in target are left alone unless OverrideExisting is set.
func (d *DotEnv) SetAsEnvironmentVariables(ctx context.Context, target MutableEnvironment) (bool, error) {
	values, err := d.Dict(ctx)
	if err != nil {
		return false, err
	}
	for k, v := range values.All() {
		if _, exists := target.Lookup(k); exists && !d.OverrideExisting {
			logger.Debug(ctx, "Keeping existing variable '{{_Var_}}%s{{|-|}}'.", k)
			continue
		}
		if v == nil {
			continue
		}
		if err := target.Setenv(k, *v); err != nil {
			return false, fmt.Errorf("setting %s: %w", k, err)
		}
	}
	return true, nil
}

// Get returns the resolved value of key and whether the key exists.
func (d *DotEnv) Get(ctx context.Context, key string) (*string, bool, error) {
	values, err := d.Dict(ctx)
	if err != nil {
		return nil, false, err
	}
	if v, ok := values.Get(key); ok {
		return v, true, nil
	}
	if d.Verbose {
		logger.Warn(ctx, "Key '{{_Var_}}%s{{|-|}}' not found in '{{_File_}}%s{{|-|}}'.", key, d.sourceName())
	}
	return nil, false, nil
}

// sourceName describes the source for log messages.
func (d *DotEnv) sourceName() string {
	if d.Path != "" {
		return d.Path
	}
	if d.Stream != nil {
		return "<stream>"
	}
	return ".env"
}
