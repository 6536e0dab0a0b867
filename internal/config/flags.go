package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/sftpfeed/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   remote host (host or host:port)
//	-u string   remote user
//	-w string   remote password
//	-f string   remote folder to poll
//	-m string   selection pattern (glob over bare file names)
//	-b string   remote backup folder (empty disables backup)
//	-d          delete remote originals after download
//	-x          extract downloaded zip containers
//	-i int      poll interval, seconds (0 = single cycle)
//	-B string   S3 bucket for delivery (empty disables)
//	-G string   S3 region
//	-E string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-K string   S3 access key
//	-S string   S3 secret key
//	-P string   S3 key prefix
//	-D string   PostgreSQL DSN for the ingest ledger (empty disables)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-u", "-w", "-f", "-m", "-b", "-d", "-x", "-i",
		"-B", "-G", "-E", "-K", "-S", "-P", "-D",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Host, "a", config.Host, "remote host")
	fs.StringVar(&config.User, "u", config.User, "remote user")
	fs.StringVar(&config.Password, "w", config.Password, "remote password")
	fs.StringVar(&config.Folder, "f", config.Folder, "remote folder")
	fs.StringVar(&config.Pattern, "m", config.Pattern, "selection pattern")
	fs.StringVar(&config.BackupFolder, "b", config.BackupFolder, "remote backup folder")
	fs.BoolVar(&config.Delete, "d", config.Delete, "delete remote originals")
	fs.BoolVar(&config.Extract, "x", config.Extract, "extract downloaded archives")

	pollInterval := fs.Int("i", int(config.PollInterval.Seconds()), "poll interval (in seconds)")

	fs.StringVar(&config.S3Bucket, "B", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "G", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "E", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3AccessKey, "K", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "S", config.S3SecretKey, "S3 secret key")
	fs.StringVar(&config.S3Prefix, "P", config.S3Prefix, "S3 key prefix")
	fs.StringVar(&config.LedgerDSN, "D", config.LedgerDSN, "ledger database DSN")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.PollInterval = time.Duration(*pollInterval) * time.Second
}
