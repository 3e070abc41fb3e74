package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/helpcomp/ynab-category-exporter/config"
	"github.com/helpcomp/ynab-category-exporter/ynab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategorizerFixtures(t *testing.T) (*ynab.Client, *config.MasterConfig) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/budgets", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"data": {"budgets": [{"id": "B1", "name": "My Budget"}]}}`)
	})
	mux.HandleFunc("/budgets/B1/categories", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"data": {"category_groups": [
			{"id": "G1", "name": "Monthly", "categories": [
				{"id": "C1", "name": "Subscriptions", "hidden": false},
				{"id": "C2", "name": "Groceries", "hidden": false}
			]}
		]}}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	credsPath := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(credsPath, []byte(`{"prefix":"Bearer","key":"abc"}`), 0600))

	yc, err := ynab.New(srv.Client(), credsPath, srv.URL, "My Budget")
	require.NoError(t, err)

	cfg := &config.MasterConfig{
		CategoryBypassResponse: []map[string]config.CategoryInfo{
			{"SPOTIFY": {Category: "Subscriptions"}},
			{"VENMO": {Skip: true}},
		},
	}
	return yc, cfg
}

func TestSuggestCategoryBypassRule(t *testing.T) {
	yc, cfg := newCategorizerFixtures(t)

	suggested := SuggestCategory(yc, cfg, nil, "SPOTIFY P1A2B3C4")
	assert.Equal(t, "Subscriptions", suggested.Name)
	assert.Equal(t, "C1", suggested.CategoryID)
	assert.False(t, suggested.Skip)
}

func TestSuggestCategorySkipRule(t *testing.T) {
	yc, cfg := newCategorizerFixtures(t)

	suggested := SuggestCategory(yc, cfg, nil, "VENMO PAYMENT 123")
	assert.True(t, suggested.Skip)
}

func TestSuggestCategoryDefaults(t *testing.T) {
	yc, cfg := newCategorizerFixtures(t)

	// Empty description
	suggested := SuggestCategory(yc, cfg, nil, "")
	assert.Equal(t, defaultCategoryName, suggested.Name)

	// No bypass match and no OpenAI key configured
	suggested = SuggestCategory(yc, cfg, nil, "SOME SHOP 42")
	assert.Equal(t, defaultCategoryName, suggested.Name)
	assert.Empty(t, suggested.CategoryID)
}

func TestCategorizeHandlerMissingDescription(t *testing.T) {
	yc, cfg := newCategorizerFixtures(t)
	handler := categorizeHandler(yc, cfg, nil)

	req := httptest.NewRequest(http.MethodGet, "/categorize", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategorizeHandler(t *testing.T) {
	yc, cfg := newCategorizerFixtures(t)
	handler := categorizeHandler(yc, cfg, nil)

	req := httptest.NewRequest(http.MethodGet, "/categorize?description=SPOTIFY+P1A2B3C4", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Subscriptions"`)
}
