// Package tempdir implements scoped temporary directories. A directory stays
// on disk for as long as at least one owner holds a reference to it and is
// removed recursively, exactly once, when the last reference is released.
package tempdir

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/sftpfeed/internal/common"
	"github.com/google/uuid"
)

// Dir is a handle to a uniquely named local directory. The handle returned
// by New holds one reference; every additional owner must pair Retain with
// Release. There is no way to force removal while references remain.
type Dir struct {
	path string

	mu   sync.Mutex
	refs int
}

// New allocates a fresh, uniquely named directory under the system temp root.
func New() (*Dir, error) {
	path := filepath.Join(os.TempDir(), "sftpfeed-"+uuid.NewString())
	if err := os.Mkdir(path, 0o700); err != nil {
		return nil, fmt.Errorf("%w: create temp dir: %v", common.ErrLocalIO, err)
	}
	return &Dir{path: path, refs: 1}, nil
}

// Path returns the absolute directory path.
func (d *Dir) Path() string {
	return d.path
}

// Retain registers an additional owner.
func (d *Dir) Retain() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.refs <= 0 {
		panic("tempdir: retain after removal")
	}
	d.refs++
}

// Release drops one owner. The last release removes the directory tree.
func (d *Dir) Release() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.refs <= 0 {
		panic("tempdir: release without matching retain")
	}
	d.refs--
	if d.refs > 0 {
		return nil
	}
	if err := os.RemoveAll(d.path); err != nil {
		return fmt.Errorf("%w: remove temp dir: %v", common.ErrLocalIO, err)
	}
	return nil
}
