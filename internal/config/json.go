package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/sftpfeed/internal/flagx"
	"github.com/dmitrijs2005/sftpfeed/internal/timex"
)

// JsonConfig is the DTO used for reading JSON configuration files. Interval
// fields use timex.Duration, which accepts both "30s"-style strings and
// integer nanoseconds. Booleans are pointers so that an absent key can be
// told apart from an explicit false.
type JsonConfig struct {
	Host         string         `json:"host"`
	User         string         `json:"user"`
	Password     string         `json:"password"`
	Folder       string         `json:"folder"`
	Pattern      string         `json:"pattern"`
	BackupFolder string         `json:"backup_folder"`
	Delete       *bool          `json:"delete"`
	Extract      *bool          `json:"extract"`
	PollInterval timex.Duration `json:"poll_interval"`

	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
	S3AccessKey    string `json:"s3_access_key"`
	S3SecretKey    string `json:"s3_secret_key"`
	S3Prefix       string `json:"s3_prefix"`

	LedgerDSN string `json:"ledger_dsn"`
}

// parseJson overlays configuration from the JSON file named by the -c or
// -config flags onto config. Keys absent from the file leave the current
// values untouched. If no config flag is given, nothing is loaded; an
// unreadable or invalid file panics, matching the flag-parsing behavior.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlay := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	overlay(&config.Host, c.Host)
	overlay(&config.User, c.User)
	overlay(&config.Password, c.Password)
	overlay(&config.Folder, c.Folder)
	overlay(&config.Pattern, c.Pattern)
	overlay(&config.BackupFolder, c.BackupFolder)
	overlay(&config.S3Bucket, c.S3Bucket)
	overlay(&config.S3Region, c.S3Region)
	overlay(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	overlay(&config.S3AccessKey, c.S3AccessKey)
	overlay(&config.S3SecretKey, c.S3SecretKey)
	overlay(&config.S3Prefix, c.S3Prefix)
	overlay(&config.LedgerDSN, c.LedgerDSN)

	if c.Delete != nil {
		config.Delete = *c.Delete
	}
	if c.Extract != nil {
		config.Extract = *c.Extract
	}
	if c.PollInterval.Duration > 0 {
		config.PollInterval = c.PollInterval.Duration
	}
}
