// Package source implements the poll, fetch, retire engine. A Source lists a
// remote folder once, caches the matching names, and hands out one locally
// materialized file per Next call, applying the configured disposition to
// each remote original after its local copy is safely on disk.
package source

import (
	"context"
	"fmt"
	"path"

	"github.com/dmitrijs2005/sftpfeed/internal/common"
	"github.com/dmitrijs2005/sftpfeed/internal/filex"
	"github.com/dmitrijs2005/sftpfeed/internal/logging"
	"github.com/dmitrijs2005/sftpfeed/internal/material"
	"github.com/dmitrijs2005/sftpfeed/internal/session"
	"github.com/dmitrijs2005/sftpfeed/internal/tempdir"
)

// DefaultFolder is the remote folder scanned when none is configured.
const DefaultFolder = "/incoming"

// Config holds the source settings.
//
// Fields:
//   - Host: remote server, required.
//   - User / Password: credentials, optional.
//   - Folder: remote folder to scan; defaults to DefaultFolder.
//   - Pattern: glob over bare file names; empty matches everything.
//   - BackupFolder: when set, downloaded originals are moved here. Takes
//     precedence over Delete.
//   - Delete: when true (and no backup folder), downloaded originals are
//     removed; a failed remove is a warning, not an error.
type Config struct {
	Host         string
	User         string
	Password     string
	Folder       string
	Pattern      string
	BackupFolder string
	Delete       bool
}

// DialFunc opens a remote session. Tests substitute an in-memory fake.
type DialFunc func() (session.Session, error)

// Source drives download-then-dispose over one remote session. It is a
// single-pass destructive iterator: each listed name is dispatched at most
// once. Not safe for concurrent use.
type Source struct {
	cfg    Config
	logger logging.Logger
	dial   DialFunc

	sess   session.Session
	queue  []string
	listed bool
}

// Option customizes a Source.
type Option func(*Source)

// WithDial replaces the session dialer.
func WithDial(dial DialFunc) Option {
	return func(s *Source) { s.dial = dial }
}

// New validates cfg and returns a Source. The session is opened lazily on
// first use.
func New(cfg Config, logger logging.Logger, opts ...Option) (*Source, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: host is required", common.ErrConfiguration)
	}
	if cfg.Folder == "" {
		cfg.Folder = DefaultFolder
	}
	if cfg.BackupFolder != "" && cfg.Delete {
		logger.Warn(context.Background(),
			"both backup folder and delete are configured; backup takes precedence",
			"backup_folder", cfg.BackupFolder)
	}

	s := &Source{cfg: cfg, logger: logger}
	s.dial = func() (session.Session, error) {
		return session.Connect(session.Config{
			Host:     cfg.Host,
			User:     cfg.User,
			Password: cfg.Password,
		})
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

func (s *Source) session() (session.Session, error) {
	if s.sess == nil {
		sess, err := s.dial()
		if err != nil {
			return nil, err
		}
		s.sess = sess
	}
	return s.sess, nil
}

// List returns the queue of pending remote names. The server is queried only
// when no cached queue exists; afterwards the live queue is returned until
// Reset. The queue is shared with Next, which consumes it front to back.
func (s *Source) List(ctx context.Context) ([]string, error) {
	if s.listed {
		return s.queue, nil
	}

	sess, err := s.session()
	if err != nil {
		return nil, err
	}

	names, err := sess.List(s.cfg.Folder, s.cfg.Pattern)
	if err != nil {
		return nil, err
	}

	s.queue = names
	s.listed = true
	s.logger.Debug(ctx, "listed remote folder",
		"folder", s.cfg.Folder, "pattern", s.cfg.Pattern, "files", len(names))
	return s.queue, nil
}

// Reset drops the cached queue so the next List (or Next) queries the server
// again.
func (s *Source) Reset() {
	s.queue = nil
	s.listed = false
}

// Next pops the front of the queue and downloads it. Once the queue is
// exhausted it returns (nil, nil); that is the end-of-feed signal, not an
// error. The queue is populated on first use if List was never called.
func (s *Source) Next(ctx context.Context) (*material.File, error) {
	if _, err := s.List(ctx); err != nil {
		return nil, err
	}
	if len(s.queue) == 0 {
		return nil, nil
	}

	name := s.queue[0]
	s.queue = s.queue[1:]
	return s.Download(ctx, "", name)
}

// Download fetches one named file from folder (the configured folder when
// empty) into a fresh scoped temporary directory and applies the disposition
// policy to the remote original. Every failure before the local copy is
// materialized releases the directory again and aborts with no partial
// state.
func (s *Source) Download(ctx context.Context, folder, name string) (*material.File, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: no remote file name given", common.ErrConfiguration)
	}
	if folder == "" {
		folder = s.cfg.Folder
	}

	sess, err := s.session()
	if err != nil {
		return nil, err
	}

	dir, err := tempdir.New()
	if err != nil {
		return nil, err
	}

	if err := sess.SetWorkingDir(folder); err != nil {
		_ = dir.Release()
		return nil, err
	}

	local, err := sess.Download(name, dir.Path())
	if err != nil {
		_ = dir.Release()
		return nil, err
	}

	if err := filex.IsReadable(local); err != nil {
		_ = dir.Release()
		return nil, fmt.Errorf("%w: downloaded %s: %v", common.ErrLocalIO, name, err)
	}

	file := material.NewFile(local, name, dir)

	if err := s.dispose(ctx, sess, name); err != nil {
		_ = file.Close()
		return nil, err
	}

	s.logger.Info(ctx, "downloaded remote file", "name", name, "local", local)
	return file, nil
}

// dispose applies the post-download policy to the remote original. Backup
// failures are fatal; a failed delete is downgraded to a warning because the
// local copy already exists.
func (s *Source) dispose(ctx context.Context, sess session.Session, name string) error {
	switch {
	case s.cfg.BackupFolder != "":
		if err := sess.MakePath(s.cfg.BackupFolder); err != nil {
			return err
		}
		dest := path.Join(s.cfg.BackupFolder, name)
		if err := sess.Rename(name, dest); err != nil {
			return err
		}
		s.logger.Debug(ctx, "backed up remote file", "name", name, "dest", dest)

	case s.cfg.Delete:
		if err := sess.Remove(name); err != nil {
			s.logger.Warn(ctx, "cannot remove remote file", "name", name, "error", err)
			break
		}
		s.logger.Debug(ctx, "removed remote file", "name", name)
	}
	return nil
}

// Close shuts down the remote session if one was opened. Files already
// returned by Next or Download stay valid until they are closed themselves.
func (s *Source) Close() error {
	if s.sess == nil {
		return nil
	}
	err := s.sess.Close()
	s.sess = nil
	return err
}
