package material

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/sftpfeed/internal/common"
	"github.com/dmitrijs2005/sftpfeed/internal/filex"
	"github.com/dmitrijs2005/sftpfeed/internal/tempdir"
)

// Extractor turns one container file into its member files. Zip is the only
// supported format today; other formats plug in behind this interface.
type Extractor interface {
	Extract(f *File) ([]*File, error)
}

// ZipExtractor extracts zip containers. Every non-directory member is written
// into its own fresh temporary directory, preserving the member's internal
// relative path. Directories referenced only by member paths are created as
// needed; directory entries themselves are skipped.
type ZipExtractor struct{}

// Extract materializes all regular-file members of f, in container order.
// Any failure aborts the whole call: no partial list is returned and every
// directory allocated so far is released.
func (ZipExtractor) Extract(f *File) ([]*File, error) {
	r, err := zip.OpenReader(f.Path())
	if err != nil {
		return nil, fmt.Errorf("%w: open container %s: %v", common.ErrArchive, f.Path(), err)
	}
	defer r.Close()

	var members []*File
	fail := func(err error) ([]*File, error) {
		for _, m := range members {
			_ = m.Close()
		}
		return nil, err
	}

	for _, zf := range r.File {
		if zf.FileInfo().IsDir() {
			continue
		}

		dir, err := tempdir.New()
		if err != nil {
			return fail(err)
		}

		dest, err := memberPath(dir.Path(), zf.Name)
		if err != nil {
			_ = dir.Release()
			return fail(err)
		}

		if err := writeMember(zf, dest); err != nil {
			_ = dir.Release()
			return fail(fmt.Errorf("%w: extract member %s: %v", common.ErrArchive, zf.Name, err))
		}

		if err := filex.IsReadable(dest); err != nil {
			_ = dir.Release()
			return fail(fmt.Errorf("%w: extracted member %s not readable: %v", common.ErrArchive, zf.Name, err))
		}

		members = append(members, NewFile(dest, zf.Name, dir))
	}

	return members, nil
}

// Extract decompresses f with the default zip extractor. The file must be a
// zip container; anything else is an archive error.
func (f *File) Extract() ([]*File, error) {
	return ZipExtractor{}.Extract(f)
}

// memberPath resolves a member's destination under root and creates the
// intermediate directories. Member names that escape root are rejected.
func memberPath(root, name string) (string, error) {
	dest := filepath.Join(root, filepath.FromSlash(name))
	if dest != root && !strings.HasPrefix(dest, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: member %q escapes extraction root", common.ErrArchive, name)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o700); err != nil {
		return "", fmt.Errorf("%w: create member dir: %v", common.ErrLocalIO, err)
	}
	return dest, nil
}

func writeMember(zf *zip.File, dest string) error {
	rc, err := zf.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
