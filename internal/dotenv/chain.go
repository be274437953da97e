package dotenv

import (
	"context"
	"errors"
	"io"
)

// ErrNoSources is returned when ChainedValues gets no sources or an empty one.
var ErrNoSources = errors.New("filenames and/or stream arguments are required for chained loading; use FindDotenv to auto detect an env file")

// Source is one input of a chained load: a path or a reader.
type Source struct {
	Path   string
	Reader io.Reader
}

// FromPath returns a Source reading the file at path.
func FromPath(path string) Source {
	return Source{Path: path}
}

// FromReader returns a Source reading r.
func FromReader(r io.Reader) Source {
	return Source{Reader: r}
}

func (s Source) empty() bool {
	return s.Path == "" && s.Reader == nil
}

// ChainedValues parses sources left to right and merges them into one mapping.
//
// Every source is resolved with override on: it sees the aggregate of the
// sources before it above the base environment, and its keys replace theirs.
func ChainedValues(ctx context.Context, sources []Source, opts ...Option) (*Values, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	for _, s := range sources {
		if s.empty() {
			return nil, ErrNoSources
		}
	}

	var result *DotEnv
	for _, s := range sources {
		curOpts := append(append([]Option{}, opts...), WithStream(s.Reader), WithOverride(true))
		cur := New(s.Path, curOpts...)
		if result == nil {
			result = cur
		}

		pairs, err := cur.Parse(ctx)
		if err != nil {
			return nil, err
		}
		result.UpdateDict(pairs)
	}

	return result.Dict(ctx)
}
