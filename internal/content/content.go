// Package content maps request targets to files under a root directory.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// IndexFile is served for the root target "/".
const IndexFile = "index.html"

// NotFoundMessage is the message sent with every 404.
const NotFoundMessage = "Not Found"

type Kind int

const (
	Found Kind = iota
	NotFound
	Error
)

func (k Kind) String() string {
	switch k {
	case Found:
		return "found"
	case NotFound:
		return "not found"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Result is the outcome of resolving a target. Content is set for Found,
// Description for Error.
type Result struct {
	Kind        Kind
	Name        string
	Content     []byte
	Description string
}

// Resolver reads files from fsys fresh on every call. It holds no other state.
type Resolver struct {
	fsys fs.FS
}

func NewResolver(fsys fs.FS) *Resolver {
	return &Resolver{fsys: fsys}
}

// Resolve reads the file named by target. The query string is ignored and
// the path is cleaned as an absolute path first, so ".." segments never
// climb above the root.
func (r *Resolver) Resolve(target string) Result {
	name := Name(target)

	b, err := fs.ReadFile(r.fsys, name)
	switch {
	case err == nil:
		return Result{Kind: Found, Name: name, Content: b}
	case errors.Is(err, fs.ErrNotExist):
		return Result{Kind: NotFound, Name: name}
	default:
		return Result{Kind: Error, Name: name, Description: describe(err)}
	}
}

// Name converts a request target into a slash separated name relative to
// the root. "/" becomes [IndexFile].
func Name(target string) string {
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		target = target[:i]
	}

	cleaned := path.Clean("/" + target)
	if cleaned == "/" {
		return IndexFile
	}
	return strings.TrimPrefix(cleaned, "/")
}

func describe(err error) string {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return fmt.Sprintf("%s %s: %v", pe.Op, pe.Path, pe.Err)
	}
	return err.Error()
}
