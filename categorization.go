package main

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/helpcomp/ynab-category-exporter/config"
	"github.com/helpcomp/ynab-category-exporter/prom"
	"github.com/helpcomp/ynab-category-exporter/ynab"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// SuggestCategory picks a budget category for a transaction description.
// Bypass rules from the YAML config are checked first, then OpenAI is asked
// to choose from the budget's visible categories. Without an API key the
// default suggestion is returned.
func SuggestCategory(yc *ynab.Client, c *config.MasterConfig, oai *openai.Client, description string) SuggestedCategory {
	var suggested = SuggestedCategory{
		Name:       defaultCategoryName,
		CategoryID: "",
		Skip:       false,
	}

	if description == "" {
		return suggested
	}

	// Loop through the visible category names
	var sbCategories strings.Builder
	var names []string
	for _, group := range yc.CategoryGroups() {
		for _, cat := range group.Categories {
			names = append(names, cat.Name)
		}
	}
	sbCategories.WriteString(strings.Join(names, ", "))

	if len(names) == 0 {
		log.Warn().Msg("No categories available for AI categorization")
		return suggested
	}

	// Check to see if it's a bypassed description
	for _, catBypasses := range c.CategoryBypassResponse {
		for key, bypassResp := range catBypasses {
			if strings.Contains(description, key) {
				if bypassResp.Skip {
					suggested.Skip = true
					return suggested
				}
				suggested.Name = bypassResp.Category
				suggested.CategoryID, _ = yc.CategoryID(bypassResp.Category)
				return suggested
			}
		}
	}

	// If no OpenAI API Key was provided, return default
	if cli.OpenAIAPIKey == "" && (cli.AzureAIAPIKey == "" || cli.AzureEndpoint == "") {
		log.Info().Msgf("No OpenAI API Key provided, using default")
		return suggested
	}

	var prompt strings.Builder
	prompt.WriteString("I want to categorize transactions on my budget. Given the following transaction: ")
	prompt.WriteString(description)
	prompt.WriteString("\n\n\"Category\" is the budget category this transaction would fall under, chosen from the following list: ")
	prompt.WriteString(sbCategories.String())
	prompt.WriteString("\nChoose the best category that fits this transaction. Choose only one category. Please respond only in JSON, do not respond in anything other than JSON, No English unless in JSON format.")

	var modifiedResp string
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	prom.OpenAICalls++

	// GPT3Dot5TurboInstruct
	if cli.OpenAIModel == openai.GPT3Dot5TurboInstruct {
		req := openai.CompletionRequest{
			Model:     cli.OpenAIModel,
			Prompt:    prompt.String(),
			MaxTokens: 256,
		}
		resp, err := oai.CreateCompletion(ctx, req)
		if err != nil {
			log.Error().Err(err).Msgf("Error with ChatGPT/OpenAI : %v", err)
			return suggested
		}

		prom.OaiUsage = resp.Usage
		modifiedResp = resp.Choices[0].Text
	} else {
		resp, err := oai.CreateChatCompletion(
			ctx,
			openai.ChatCompletionRequest{
				Model: cli.OpenAIModel,
				Messages: []openai.ChatCompletionMessage{
					{
						Role:    openai.ChatMessageRoleAssistant,
						Content: prompt.String(),
					},
				},
			},
		)

		if err != nil {
			log.Error().Err(err).Msgf("Error with ChatGPT/OpenAI chat request")
			return suggested
		}

		if len(resp.Choices) != 1 {
			log.Error().Msgf("Unexpected number of choices %v", resp.Choices)
			return suggested
		}

		prom.OaiUsage = resp.Usage
		modifiedResp = resp.Choices[0].Message.Content
	}

	// Some ChatGPT models send us ```JSON {}``` instead of just JSON, so we have to parse it.
	if strings.Contains(modifiedResp, "```") {
		modifiedResp = strings.TrimPrefix(modifiedResp, "```json")
		modifiedResp = strings.TrimPrefix(modifiedResp, "```")
		modifiedResp = strings.TrimSuffix(modifiedResp, "```")
		modifiedResp = strings.TrimSpace(modifiedResp)
	}

	// Try to unmarshal the response into the rsp (OpenAIResponse)
	var rsp OpenAIResponse
	err := json.Unmarshal([]byte(modifiedResp), &rsp)
	if err != nil {
		log.Warn().Err(err).Msgf("ChatGPT responded with invalid JSON response.")
		return suggested
	}

	// Unmarshal was successful, ChatGPT returned a valid response
	id, ok := yc.CategoryID(rsp.Category)
	if !ok {
		log.Warn().Msgf("ChatGPT suggested unknown category (%s)", rsp.Category)
		return suggested
	}

	log.Info().Msgf("🤖 [ChatGPT] Successfully found Category (%s) for transaction.", rsp.Category)
	suggested.Name = rsp.Category
	suggested.CategoryID = id
	return suggested
}
