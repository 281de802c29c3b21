package config

import (
	"errors"
	"iter"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Loader reads CUE files, validated against a schema, on first use.
type Loader struct {
	getRoots func() ([]rootInfo, error)
}

// NewLoader creates a loader over a list of CUE files. Earlier files take
// precedence. Files must be concrete data. An empty schema disables
// schema validation.
func NewLoader(filePaths []string, schemaSrc string) Loader {
	return Loader{
		getRoots: sync.OnceValues(func() (ret []rootInfo, err error) {
			ctx := cuecontext.New()

			var schema cue.Value
			if schemaSrc != "" {
				schema = ctx.CompileString("close({" + schemaSrc + "})")
				if err = schema.Err(); err != nil {
					return
				}
			}

			for _, filePath := range filePaths {
				var content []byte
				content, err = os.ReadFile(filePath)
				if err != nil {
					return
				}

				value := ctx.CompileBytes(content, cue.Filename(filePath))
				if err = value.Err(); err != nil {
					return
				}
				if err = value.Validate(cue.Concrete(true)); err != nil {
					return
				}

				if schema.Exists() {
					if err = schema.Unify(value).Validate(); err != nil {
						return
					}
				}

				ret = append(ret, rootInfo{
					value: value,
					path:  filePath,
				})
			}

			return
		}),
	}
}

type rootInfo struct {
	value cue.Value
	path  string
}

// Err returns the error from loading and validating the files, if any.
func (l Loader) Err() error {
	_, err := l.getRoots()
	return err
}

// IterCueValues iterates over the value at a path in every file that
// defines it.
func (l Loader) IterCueValues(path string) iter.Seq2[*cue.Value, error] {
	return func(yield func(*cue.Value, error) bool) {
		roots, err := l.getRoots()
		if err != nil {
			yield(nil, err)
			return
		}

		cuePath := cue.ParsePath(path)
		for _, info := range roots {
			value := info.value.LookupPath(cuePath)
			if err := value.Err(); err == nil {
				if !yield(&value, nil) {
					break
				}
			}
		}
	}
}

// AssignFirst decodes the first value found at a path into target.
func (l Loader) AssignFirst(path string, target any) error {
	for value, err := range l.IterCueValues(path) {
		if err != nil {
			return err
		}
		return value.Decode(target)
	}

	return ErrValueNotFound
}

// First returns the first value found at a path, or the zero value.
// It panics on a decoding error.
func First[T any](loader Loader, path string) T {
	var value T
	if err := loader.AssignFirst(path, &value); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return value
		}
		panic(err)
	}
	return value
}
