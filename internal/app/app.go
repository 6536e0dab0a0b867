// Package app wires the ingestion pipeline together and drives the poll,
// fetch, process, retire loop. All resilience (connect retries, cycle
// restarts) lives here; the engine underneath never retries on its own.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/sftpfeed/internal/common"
	"github.com/dmitrijs2005/sftpfeed/internal/config"
	"github.com/dmitrijs2005/sftpfeed/internal/ledger"
	"github.com/dmitrijs2005/sftpfeed/internal/logging"
	"github.com/dmitrijs2005/sftpfeed/internal/material"
	"github.com/dmitrijs2005/sftpfeed/internal/sink"
	"github.com/dmitrijs2005/sftpfeed/internal/source"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	source   *source.Source
	sink     *sink.S3Sink // nil when delivery is disabled
	recorder ledger.Recorder
}

func NewApp(cfg *config.Config) (*App, error) {

	s := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(s)

	src, err := source.New(source.Config{
		Host:         cfg.Host,
		User:         cfg.User,
		Password:     cfg.Password,
		Folder:       cfg.Folder,
		Pattern:      cfg.Pattern,
		BackupFolder: cfg.BackupFolder,
		Delete:       cfg.Delete,
	}, logger)
	if err != nil {
		return nil, err
	}

	var snk *sink.S3Sink
	if cfg.S3Bucket != "" {
		snk, err = sink.NewS3Sink(context.Background(), sink.Config{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			Prefix:       cfg.S3Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("sink init error: %w", err)
		}
	}

	var rec ledger.Recorder = ledger.Noop{}
	if cfg.LedgerDSN != "" {
		rec, err = ledger.NewPostgresRecorder(cfg.LedgerDSN)
		if err != nil {
			return nil, fmt.Errorf("ledger init error: %w", err)
		}
	}

	return &App{config: cfg, logger: logger, source: src, sink: snk, recorder: rec}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run drives polling cycles until the context is canceled. With a zero poll
// interval it runs a single cycle and returns (one-shot batch mode).
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	app.logger.Info(ctx, "starting ingestion",
		"host", app.config.Host, "folder", app.config.Folder, "pattern", app.config.Pattern)

	defer app.close(ctx)

	if app.config.PollInterval <= 0 {
		return app.runCycle(ctx)
	}

	ticker := time.NewTicker(app.config.PollInterval)
	defer ticker.Stop()

	for {
		if err := app.runCycle(ctx); err != nil {
			app.logger.Error(ctx, "cycle failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// runCycle drains one listing. Connection-level failures are retried with
// exponential backoff; everything else aborts the cycle.
func (app *App) runCycle(ctx context.Context) error {
	app.source.Reset()

	backoff := retry.WithMaxRetries(3, retry.NewExponential(time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, err := app.source.List(ctx)
		if errors.Is(err, common.ErrConnection) {
			_ = app.source.Close()
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return err
	}

	for {
		f, err := app.source.Next(ctx)
		if err != nil {
			return err
		}
		if f == nil {
			return nil
		}
		if err := app.process(ctx, f); err != nil {
			return err
		}
	}
}

// process delivers and records one downloaded file and, when extraction is
// enabled, its archive members.
func (app *App) process(ctx context.Context, f *material.File) error {
	files := []*material.File{f}

	if app.config.Extract {
		members, merr := f.Extract()
		if merr != nil {
			_ = f.Close()
			return merr
		}
		files = append(files, members...)
	}

	defer func() {
		for _, mf := range files {
			_ = mf.Close()
		}
	}()

	for _, mf := range files {
		entry, err := ledger.FromFile(mf.Path(), mf.RemoteName())
		if err != nil {
			return err
		}

		if app.sink != nil {
			key := app.sink.KeyFor(mf.RemoteName(), time.Now().UTC())
			if err := app.sink.Put(ctx, key, mf.Path()); err != nil {
				return err
			}
			entry.Status = ledger.StatusDelivered
			app.logger.Info(ctx, "delivered file", "name", mf.RemoteName(), "key", key)
		}

		if err := app.recorder.Record(ctx, entry); err != nil {
			return err
		}
	}

	return nil
}

func (app *App) close(ctx context.Context) {
	if err := app.source.Close(); err != nil {
		app.logger.Error(ctx, "closing source", "error", err)
	}
	if err := app.recorder.Close(); err != nil {
		app.logger.Error(ctx, "closing ledger", "error", err)
	}
}
