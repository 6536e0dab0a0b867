package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/dmitrijs2005/sftpfeed/internal/common"
)

// Config holds the connection parameters for an SFTP session.
//
// HostKeyCallback defaults to ssh.InsecureIgnoreHostKey, which is acceptable
// for feeds inside a trusted network; callers on untrusted networks should
// supply knownhosts-based verification.
type Config struct {
	Host            string // host or host:port; port defaults to 22
	User            string
	Password        string
	Timeout         time.Duration
	HostKeyCallback ssh.HostKeyCallback
}

// SFTPSession implements Session over an SSH connection with the SFTP
// subsystem. The working directory is tracked client-side.
type SFTPSession struct {
	conn   *ssh.Client
	client *sftp.Client
	wd     string
}

// Connect dials the SSH host and opens the SFTP subsystem.
func Connect(cfg Config) (*SFTPSession, error) {
	addr := cfg.Host
	if !strings.Contains(addr, ":") {
		addr += ":22"
	}

	hostKey := cfg.HostKeyCallback
	if hostKey == nil {
		hostKey = ssh.InsecureIgnoreHostKey() //nolint:gosec
	}

	sshCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.Password)},
		HostKeyCallback: hostKey,
		Timeout:         cfg.Timeout,
	}

	conn, err := ssh.Dial("tcp", addr, sshCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", common.ErrConnection, addr, err)
	}

	client, err := sftp.NewClient(conn)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open sftp subsystem: %v", common.ErrConnection, err)
	}

	return &SFTPSession{conn: conn, client: client, wd: "/"}, nil
}

func (s *SFTPSession) resolve(name string) string {
	if path.IsAbs(name) {
		return name
	}
	return path.Join(s.wd, name)
}

func (s *SFTPSession) List(folder, pattern string) ([]string, error) {
	entries, err := s.client.ReadDir(s.resolve(folder))
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", common.ErrTransfer, folder, err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if name == "." || name == ".." {
			continue
		}
		ok, err := MatchName(pattern, name)
		if err != nil {
			return nil, err
		}
		if ok {
			names = append(names, name)
		}
	}
	return names, nil
}

func (s *SFTPSession) SetWorkingDir(folder string) error {
	target := s.resolve(folder)
	fi, err := s.client.Stat(target)
	if err != nil {
		return fmt.Errorf("%w: chdir %s: %v", common.ErrTransfer, folder, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: chdir %s: not a directory", common.ErrTransfer, folder)
	}
	s.wd = target
	return nil
}

func (s *SFTPSession) Download(name, localDir string) (string, error) {
	remote := s.resolve(name)

	rf, err := s.client.Open(remote)
	if err != nil {
		return "", fmt.Errorf("%w: get %s: %v", common.ErrTransfer, remote, err)
	}
	defer rf.Close()

	local := filepath.Join(localDir, path.Base(name))
	out, err := os.OpenFile(local, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %v", common.ErrLocalIO, local, err)
	}

	if _, err := io.Copy(out, rf); err != nil {
		_ = out.Close()
		_ = os.Remove(local)
		return "", fmt.Errorf("%w: get %s: %v", common.ErrTransfer, remote, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("%w: close %s: %v", common.ErrLocalIO, local, err)
	}

	return local, nil
}

func (s *SFTPSession) MakePath(p string) error {
	if err := s.client.MkdirAll(s.resolve(p)); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", common.ErrTransfer, p, err)
	}
	return nil
}

func (s *SFTPSession) Rename(from, to string) error {
	if err := s.client.Rename(s.resolve(from), s.resolve(to)); err != nil {
		return fmt.Errorf("%w: rename %s to %s: %v", common.ErrTransfer, from, to, err)
	}
	return nil
}

func (s *SFTPSession) Remove(name string) error {
	if err := s.client.Remove(s.resolve(name)); err != nil {
		return fmt.Errorf("%w: remove %s: %v", common.ErrTransfer, name, err)
	}
	return nil
}

func (s *SFTPSession) Close() error {
	return errors.Join(s.client.Close(), s.conn.Close())
}
