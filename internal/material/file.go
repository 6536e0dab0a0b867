// Package material models locally materialized files: downloads and extracted
// archive members. A File is only valid while its backing temporary directory
// is referenced; closing the File releases that reference.
package material

import "github.com/dmitrijs2005/sftpfeed/internal/tempdir"

// File is a local file living inside a scoped temporary directory, tagged
// with the remote (or in-archive) name it came from.
type File struct {
	path       string
	remoteName string
	dir        *tempdir.Dir
}

// NewFile wraps a local path inside dir. Ownership of one directory reference
// passes to the returned File; Close releases it. Multiple Files may share a
// directory, each holding its own reference.
func NewFile(path, remoteName string, dir *tempdir.Dir) *File {
	return &File{path: path, remoteName: remoteName, dir: dir}
}

// Path returns the local path. The path is valid only until Close.
func (f *File) Path() string {
	return f.path
}

// RemoteName returns the name the file had at its source: the remote file
// name for downloads, the internal member path for extracted members.
func (f *File) RemoteName() string {
	return f.remoteName
}

// Close releases the file's reference to its temporary directory. The last
// release removes the directory and everything in it. Close is idempotent.
func (f *File) Close() error {
	if f.dir == nil {
		return nil
	}
	dir := f.dir
	f.dir = nil
	return dir.Release()
}
