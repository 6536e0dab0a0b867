// Package session defines the remote server contract used by the ingestion
// engine, together with its SFTP implementation. The engine never talks to
// the wire directly; everything goes through Session so tests can substitute
// an in-memory fake.
package session

import (
	"fmt"
	"path"

	"github.com/dmitrijs2005/sftpfeed/internal/common"
)

// Session is an authenticated handle to a remote file-transfer server.
// Relative names passed to Download, Rename and Remove resolve against the
// working directory set with SetWorkingDir.
//
// Implementations are not required to be safe for concurrent use.
type Session interface {
	// List returns the bare names under folder that match pattern, in the
	// order the server reports them, excluding the "." and ".." entries.
	// An empty pattern matches everything.
	List(folder, pattern string) ([]string, error)

	// SetWorkingDir changes the directory relative names resolve against.
	SetWorkingDir(folder string) error

	// Download copies the named remote file into localDir and returns the
	// resulting local path.
	Download(name, localDir string) (string, error)

	// MakePath creates the remote directory path. An already existing path
	// is not an error.
	MakePath(path string) error

	// Rename moves a remote file.
	Rename(from, to string) error

	// Remove deletes a remote file.
	Remove(name string) error

	Close() error
}

// MatchName reports whether a bare file name matches a glob pattern. An
// empty pattern matches everything; a malformed pattern is a configuration
// error.
func MatchName(pattern, name string) (bool, error) {
	if pattern == "" {
		return true, nil
	}
	ok, err := path.Match(pattern, name)
	if err != nil {
		return false, fmt.Errorf("%w: bad pattern %q: %v", common.ErrConfiguration, pattern, err)
	}
	return ok, nil
}
