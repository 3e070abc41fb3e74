package ynab

import (
	"os"
	"os/user"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCredentials(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadCredentials(t *testing.T) {
	path := writeCredentials(t, `{"prefix":"Bearer","key":"abc"}`)

	header, err := loadCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", header)
}

func TestLoadCredentialsMissingFile(t *testing.T) {
	_, err := loadCredentials(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unable to open credentials file")
}

func TestLoadCredentialsMalformedJSON(t *testing.T) {
	path := writeCredentials(t, `{"prefix": "Bearer"`)

	_, err := loadCredentials(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unable to parse credentials file "+path)
}

func TestLoadCredentialsMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
		missing string
	}{
		{"no prefix", `{"key":"abc"}`, "prefix"},
		{"no key", `{"prefix":"Bearer"}`, "key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCredentials(t, tt.content)

			_, err := loadCredentials(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "Expected key '"+tt.missing+"' not found in credentials file "+path)
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, expandHome("~"))
	assert.Equal(t, filepath.Join(home, ".ynab.json"), expandHome("~/.ynab.json"))
	assert.Equal(t, "/etc/ynab.json", expandHome("/etc/ynab.json"))
	assert.Equal(t, "relative.json", expandHome("relative.json"))
}

func TestExpandHomeNamedUser(t *testing.T) {
	u, err := user.Current()
	require.NoError(t, err)
	require.NotEmpty(t, u.Username)

	assert.Equal(t, filepath.Join(u.HomeDir, "creds.json"), expandHome("~"+u.Username+"/creds.json"))

	// Unknown users are left for the file open to report
	assert.Equal(t, "~nosuchuser/creds.json", expandHome("~nosuchuser/creds.json"))
}
