package main

// Shared constants
const defaultCategoryName = "(uncategorized)"

// OpenAIResponse represents the JSON response from OpenAI API
type OpenAIResponse struct {
	Category string `json:"Category"`
}

// SuggestedCategory holds the category suggestion for a transaction description
type SuggestedCategory struct {
	Name       string
	CategoryID string
	Skip       bool
}
