// Package common defines the sentinel errors shared across the ingestion
// pipeline. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Configuration errors (missing host, missing file name).
	ErrConfiguration = errors.New("configuration error")

	// Session open / authentication failures.
	ErrConnection = errors.New("connection error")

	// Remote operation failures (listing, chdir, get, rename, remove).
	ErrTransfer = errors.New("transfer error")

	// Local filesystem failures (temp directory creation, readability).
	ErrLocalIO = errors.New("local io error")

	// Container open/parse failures and member extraction failures.
	ErrArchive = errors.New("archive error")
)
