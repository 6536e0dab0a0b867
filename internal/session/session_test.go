package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/sftpfeed/internal/common"
)

func TestMatchName(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		file    string
		want    bool
		wantErr bool
	}{
		{"empty pattern matches everything", "", "anything.bin", true, false},
		{"glob match", "*.zip", "feed.zip", true, false},
		{"glob mismatch", "*.zip", "feed.txt", false, false},
		{"question mark", "feed?.zip", "feed1.zip", true, false},
		{"exact name", "feed.zip", "feed.zip", true, false},
		{"malformed pattern", "[", "feed.zip", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatchName(tt.pattern, tt.file)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, common.ErrConfiguration))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSFTPSession_Resolve(t *testing.T) {
	s := &SFTPSession{wd: "/incoming"}

	assert.Equal(t, "/incoming/a.zip", s.resolve("a.zip"))
	assert.Equal(t, "/incoming/backup/a.zip", s.resolve("backup/a.zip"))
	assert.Equal(t, "/elsewhere/a.zip", s.resolve("/elsewhere/a.zip"))
}

func TestConnect_UnreachableHostIsConnectionError(t *testing.T) {
	_, err := Connect(Config{
		Host:    "127.0.0.1:1",
		User:    "feed",
		Timeout: 500 * time.Millisecond,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConnection))
}
