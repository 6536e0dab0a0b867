package sink

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyFor(t *testing.T) {
	now := time.Date(2026, time.March, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		prefix     string
		remoteName string
		want       string
	}{
		{"bare name", "", "a.zip", "2026/03/07/a.zip"},
		{"with prefix", "feeds", "a.zip", "feeds/2026/03/07/a.zip"},
		{"member path collapses to base name", "", "data/nested/b.csv", "2026/03/07/b.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &S3Sink{cfg: Config{Prefix: tt.prefix}}
			assert.Equal(t, tt.want, s.KeyFor(tt.remoteName, now))
		})
	}
}
