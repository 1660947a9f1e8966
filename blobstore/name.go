package blobstore

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrInvalidName is returned for blob names that could escape a store root
// or that no backend can represent.
var ErrInvalidName = errors.New("blobstore: invalid blob name")

// ValidateName checks that name is a clean, relative, slash-separated path.
// Score catalogs and their per-group blobs always satisfy it.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case strings.HasPrefix(name, "/"):
		return fmt.Errorf("%w: %q is absolute", ErrInvalidName, name)
	case strings.ContainsAny(name, "\\\x00"):
		return fmt.Errorf("%w: %q contains a backslash or NUL", ErrInvalidName, name)
	case path.Clean(name) != name:
		return fmt.Errorf("%w: %q is not clean", ErrInvalidName, name)
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return fmt.Errorf("%w: %q leaves the store root", ErrInvalidName, name)
		}
	}
	return nil
}

// JoinKey joins an object-store root prefix and a blob name.
func JoinKey(prefix, name string) string {
	return path.Join(prefix, name)
}

// TrimKey maps an object key back to a blob name relative to prefix.
func TrimKey(prefix, key string) string {
	name := strings.TrimPrefix(key, strings.TrimSuffix(prefix, "/"))
	return strings.TrimPrefix(name, "/")
}

// ListPrefix is the object-key prefix that lists names starting with prefix.
// A trailing slash on prefix is kept, so "run1/" does not match "run10/".
func ListPrefix(root, prefix string) string {
	full := JoinKey(root, prefix)
	if strings.HasSuffix(prefix, "/") && !strings.HasSuffix(full, "/") {
		full += "/"
	}
	return full
}
