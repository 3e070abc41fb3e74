package ynab

type budgetsResponse struct {
	Data struct {
		Budgets []Budget `json:"budgets"`
	} `json:"data"`
}

type Budget struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	LastModifiedOn string `json:"last_modified_on"`
	FirstMonth     string `json:"first_month"`
	LastMonth      string `json:"last_month"`
}

// resolveBudgetID finds the budget with the given display name and stores its
// id. First exact match wins; budget names are expected to be unique.
func (c *Client) resolveBudgetID(name string) error {
	var budgets budgetsResponse
	if err := c.getJSON("/budgets", &budgets); err != nil {
		return err
	}

	for _, b := range budgets.Data.Budgets {
		if b.Name == name {
			c.budgetID = b.ID
			return nil
		}
	}

	return errorf("Budget '%s' not found", name)
}
