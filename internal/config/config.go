// Package config handles configuration for the sftpfeed binary, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the ingestion pipeline.
//
// Fields:
//   - Host / User / Password: SFTP connection parameters. Host is required.
//   - Folder: remote folder to poll.
//   - Pattern: glob over bare file names; "*" matches everything.
//   - BackupFolder: remote folder downloaded originals are moved to; empty
//     disables backup. Takes precedence over Delete.
//   - Delete: remove remote originals after download.
//   - Extract: treat downloaded files as zip containers and extract them.
//   - PollInterval: delay between polling cycles; zero means run one cycle
//     and exit.
//   - S3Bucket / S3Region / S3BaseEndpoint / S3AccessKey / S3SecretKey /
//     S3Prefix: delivery sink settings; empty bucket disables delivery.
//   - LedgerDSN: PostgreSQL DSN for the ingest ledger; empty disables it.
type Config struct {
	Host         string
	User         string
	Password     string
	Folder       string
	Pattern      string
	BackupFolder string
	Delete       bool
	Extract      bool
	PollInterval time.Duration

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
	S3Prefix       string

	LedgerDSN string
}

// LoadDefaults populates Config with the policy defaults.
func (c *Config) LoadDefaults() {
	c.Folder = "/incoming"
	c.Pattern = "*"
	c.PollInterval = 0
	c.S3Region = "us-east-1"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
