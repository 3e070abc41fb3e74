package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig(t *testing.T) {
	content := `
config:
  budget_name: "Household"
  credentials_path: "~/.config/ynab/credentials.json"
openai:
  key: "sk-test"
categoryBypass:
  - "SPOTIFY":
      category: "Subscriptions"
  - "VENMO":
      category: ""
      skip: true
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg := InitConfig(path)

	assert.Equal(t, "Household", cfg.AppConfig.BudgetName)
	assert.Equal(t, "~/.config/ynab/credentials.json", cfg.AppConfig.CredentialsPath)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)

	require.Len(t, cfg.CategoryBypassResponse, 2)
	assert.Equal(t, "Subscriptions", cfg.CategoryBypassResponse[0]["SPOTIFY"].Category)
	assert.True(t, cfg.CategoryBypassResponse[1]["VENMO"].Skip)
}

func TestInitConfigMissingFile(t *testing.T) {
	cfg := InitConfig(filepath.Join(t.TempDir(), "missing.yml"))

	assert.Empty(t, cfg.AppConfig.BudgetName)
	assert.Empty(t, cfg.CategoryBypassResponse)
}
