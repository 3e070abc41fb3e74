package ynab

import (
	"strings"

	"github.com/forPelevin/gomoji"
	"github.com/shopspring/decimal"
)

type categoriesResponse struct {
	Data struct {
		CategoryGroups []CategoryGroup `json:"category_groups"`
	} `json:"data"`
}

type CategoryGroup struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Hidden     bool       `json:"hidden"`
	Deleted    bool       `json:"deleted"`
	Categories []Category `json:"categories"`
}

type Category struct {
	ID              string          `json:"id"`
	CategoryGroupID string          `json:"category_group_id"`
	Name            string          `json:"name"`
	Hidden          bool            `json:"hidden"`
	Note            string          `json:"note"`
	Budgeted        decimal.Decimal `json:"budgeted"` // Milliunits (amount * 1000)
	Activity        decimal.Decimal `json:"activity"`
	Balance         decimal.Decimal `json:"balance"`
	Deleted         bool            `json:"deleted"`
}

var milliunitsPerUnit = decimal.NewFromInt(1000)

// BudgetedAmount returns the budgeted milliunits as a currency amount.
func (c Category) BudgetedAmount() decimal.Decimal { return c.Budgeted.Div(milliunitsPerUnit) }

// ActivityAmount returns the activity milliunits as a currency amount.
func (c Category) ActivityAmount() decimal.Decimal { return c.Activity.Div(milliunitsPerUnit) }

// BalanceAmount returns the balance milliunits as a currency amount.
func (c Category) BalanceAmount() decimal.Decimal { return c.Balance.Div(milliunitsPerUnit) }

func (c *Client) fetchCategoryGroups() ([]CategoryGroup, error) {
	var categories categoriesResponse
	if err := c.getJSON("/budgets/"+c.budgetID+"/categories", &categories); err != nil {
		return nil, err
	}
	return categories.Data.CategoryGroups, nil
}

// stripHiddenCategories returns the groups with hidden categories removed,
// relative order preserved. The input is not modified.
func stripHiddenCategories(groups []CategoryGroup) []CategoryGroup {
	out := make([]CategoryGroup, 0, len(groups))
	for _, g := range groups {
		var visible []Category
		for _, cat := range g.Categories {
			if cat.Hidden {
				continue
			}
			visible = append(visible, cat)
		}
		g.Categories = visible
		out = append(out, g)
	}
	return out
}

// dropEmptyGroups returns only the groups that still have at least one
// category. Emptiness is the only validity rule.
func dropEmptyGroups(groups []CategoryGroup) []CategoryGroup {
	out := make([]CategoryGroup, 0, len(groups))
	for _, g := range groups {
		if len(g.Categories) == 0 {
			continue
		}
		out = append(out, g)
	}
	return out
}

// buildCategoryIndex maps category names to ids, iterating groups then
// categories in server order. A duplicate name overwrites the earlier entry.
func buildCategoryIndex(groups []CategoryGroup) map[string]string {
	index := make(map[string]string)
	for _, g := range groups {
		for _, cat := range g.Categories {
			index[cat.Name] = cat.ID
		}
	}
	return index
}

// CategoryID looks up a visible category id by name. An exact match is tried
// first, then a comparison with emojis and leading spaces removed, since YNAB
// category names commonly carry emoji prefixes.
func (c *Client) CategoryID(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if id, ok := c.categoryIDs[name]; ok {
		return id, true
	}

	want := normalizeCategoryName(name)
	for _, g := range c.groups {
		for _, cat := range g.Categories {
			if normalizeCategoryName(cat.Name) == want {
				return cat.ID, true
			}
		}
	}
	return "", false
}

func normalizeCategoryName(name string) string {
	return strings.TrimLeft(gomoji.RemoveEmojis(name), " ")
}
