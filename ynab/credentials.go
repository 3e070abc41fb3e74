package ynab

import (
	"encoding/json"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

type credentials struct {
	Prefix *string `json:"prefix"`
	Key    *string `json:"key"`
}

// loadCredentials reads the JSON credentials file and returns the value for
// the Authorization header, "<prefix> <key>".
func loadCredentials(path string) (string, error) {
	raw, err := os.ReadFile(expandHome(path))
	if err != nil {
		return "", errorf("Unable to open credentials file:\n%v", err)
	}

	var creds credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return "", errorf("Unable to parse credentials file %s", path)
	}
	if creds.Prefix == nil {
		return "", errorf("Expected key 'prefix' not found in credentials file %s", path)
	}
	if creds.Key == nil {
		return "", errorf("Expected key 'key' not found in credentials file %s", path)
	}

	return *creds.Prefix + " " + *creds.Key, nil
}

// expandHome resolves "~", "~/..." and "~user/..." prefixes. On failure it
// returns the path unchanged and lets the file open report the problem.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	name, rest := path[1:], ""
	if i := strings.IndexByte(name, '/'); i >= 0 {
		name, rest = name[:i], name[i:]
	}

	if name == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, rest)
	}

	u, err := user.Lookup(name)
	if err != nil {
		return path
	}
	return filepath.Join(u.HomeDir, rest)
}
