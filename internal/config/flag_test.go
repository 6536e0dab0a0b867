package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseFlags_OverridesConfig(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin",
		"-a", "feeds.example.org:2222",
		"-u", "feed",
		"-w", "secret",
		"-f", "/drop",
		"-m", "*.zip",
		"-b", "processed",
		"-d",
		"-x",
		"-i", "300",
		"-B", "ingest",
		"-D", "postgres://localhost/sftpfeed",
	}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "feeds.example.org:2222", cfg.Host)
	assert.Equal(t, "feed", cfg.User)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, "/drop", cfg.Folder)
	assert.Equal(t, "*.zip", cfg.Pattern)
	assert.Equal(t, "processed", cfg.BackupFolder)
	assert.True(t, cfg.Delete)
	assert.True(t, cfg.Extract)
	assert.Equal(t, 5*time.Minute, cfg.PollInterval)
	assert.Equal(t, "ingest", cfg.S3Bucket)
	assert.Equal(t, "postgres://localhost/sftpfeed", cfg.LedgerDSN)
}

func Test_parseFlags_UnknownFlagsIgnored(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-z", "ignored", "-a", "feeds.example.org"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "feeds.example.org", cfg.Host)
	assert.Equal(t, "/incoming", cfg.Folder)
}
