// Package textconv rewrites a text file in lower case next to the original.
package textconv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/iriscope-cli/internal/utils"
)

// Error kinds reported by ConvertError.
const (
	KindNotFound         = "not-found"
	KindPermissionDenied = "permission-denied"
	KindIO               = "io"
)

// OutputPrefix is prepended to the input's base name to form the output name.
const OutputPrefix = "modified_"

// ConvertError reports why a file could not be converted.
type ConvertError struct {
	Kind string
	Path string
	Err  error
}

func (e *ConvertError) Error() string {
	if e == nil {
		return "convert error"
	}
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("file not found: %s", e.Path)
	case KindPermissionDenied:
		return fmt.Sprintf("permission denied: %s", e.Path)
	default:
		return fmt.Sprintf("convert %s: %v", e.Path, e.Err)
	}
}

func (e *ConvertError) Unwrap() error { return e.Err }

func classify(path string, err error) *ConvertError {
	kind := KindIO
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = KindNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = KindPermissionDenied
	}
	return &ConvertError{Kind: kind, Path: path, Err: err}
}

// OutputPath returns where Lowercase writes the converted copy of path.
func OutputPath(path string) string {
	return filepath.Join(filepath.Dir(path), OutputPrefix+filepath.Base(path))
}

// Lowercase reads path, lower-cases its content and writes it to
// OutputPath(path). It returns the path written.
func Lowercase(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", classify(path, err)
	}
	out := OutputPath(path)
	if err := utils.SafeWriteFile(out, []byte(strings.ToLower(string(b)))); err != nil {
		return "", classify(out, err)
	}
	return out, nil
}
