// Package ynab makes requests to the YNAB (You Need A Budget) API
package ynab

import (
	"fmt"
	"net/http"
	"sync"
)

// DefaultBaseURL is the production YNAB API endpoint.
const DefaultBaseURL = "https://api.youneedabudget.com/v1"

var (
	APICalls  float64 = 0
	APIErrors float64 = 0
)

// Error is the single error kind returned by the client. Every failure
// (credentials, transport, non-2xx response, missing budget) carries only a
// human-readable message, never a structured code.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

func errorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

type Client struct {
	client     *http.Client
	authHeader string
	baseURL    string
	budgetID   string

	mu          sync.RWMutex // Protects the category snapshot
	groups      []CategoryGroup
	categoryIDs map[string]string
}

// New builds a fully initialized client: it loads the credentials file,
// resolves the named budget, fetches its category groups, and cleans out
// hidden categories and the groups they empty. Any failure aborts
// construction; a partially initialized client is never returned.
//
// The category snapshot may be read while a Refresh is in flight; the
// snapshot accessors and Refresh synchronize on the client's mutex.
func New(httpClient *http.Client, credentialsPath, baseURL, budgetName string) (*Client, error) {
	header, err := loadCredentials(credentialsPath)
	if err != nil {
		return nil, err
	}

	c := &Client{
		client:     httpClient,
		authHeader: header,
		baseURL:    baseURL,
	}

	if err := c.resolveBudgetID(budgetName); err != nil {
		return nil, err
	}
	if err := c.Refresh(); err != nil {
		return nil, err
	}

	return c, nil
}

// Refresh re-fetches the budget's category groups and rebuilds the cleaned
// snapshot. On failure the previous snapshot is kept.
func (c *Client) Refresh() error {
	raw, err := c.fetchCategoryGroups()
	if err != nil {
		return err
	}

	groups := dropEmptyGroups(stripHiddenCategories(raw))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.groups = groups
	c.categoryIDs = buildCategoryIndex(groups)
	return nil
}

// BudgetID returns the id of the resolved budget.
func (c *Client) BudgetID() string { return c.budgetID }

// CategoryGroups returns the cleaned category groups: no hidden categories,
// no empty groups, server order preserved.
func (c *Client) CategoryGroups() []CategoryGroup {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.groups
}

// CategoryIDs maps visible category names to ids. When two categories share a
// name the later one in server order wins.
func (c *Client) CategoryIDs() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.categoryIDs
}
