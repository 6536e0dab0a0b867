// Package ledger records each ingested file for audit and reconciliation.
package ledger

import (
	"context"
	"time"

	"github.com/dmitrijs2005/sftpfeed/internal/filex"
)

// Entry statuses.
const (
	StatusIngested  = "ingested"
	StatusDelivered = "delivered"
)

// Entry is one ingested file: the downloaded original or an extracted
// archive member.
type Entry struct {
	RemoteName string
	Size       int64
	SHA256     string
	Status     string
	IngestedAt time.Time
}

// Recorder persists ledger entries.
type Recorder interface {
	Record(ctx context.Context, e *Entry) error
	Close() error
}

// Noop is used when no ledger DSN is configured.
type Noop struct{}

func (Noop) Record(ctx context.Context, e *Entry) error { return nil }
func (Noop) Close() error                               { return nil }

// FromFile builds an Entry for the local file at path, computing size and
// checksum. The status starts as ingested.
func FromFile(path, remoteName string) (*Entry, error) {
	size, err := filex.Size(path)
	if err != nil {
		return nil, err
	}
	sum, err := filex.Checksum(path)
	if err != nil {
		return nil, err
	}
	return &Entry{
		RemoteName: remoteName,
		Size:       size,
		SHA256:     sum,
		Status:     StatusIngested,
		IngestedAt: time.Now().UTC(),
	}, nil
}
