// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// anthropicAPIBase is the Anthropic Messages API endpoint. Declared as a
// var so tests can substitute an httptest server.
var anthropicAPIBase = "https://api.anthropic.com/v1/messages"

// WebSearchCollector finds posts on platforms without structured APIs
// (Medium, Substack, personal blogs) by asking Claude with the web search
// tool to gather them and return a JSON array.
type WebSearchCollector struct {
	Client *http.Client
	APIKey string
	Model  string
}

// Name returns the source identifier.
func (c *WebSearchCollector) Name() string { return "web" }

const webSearchSystem = `You are a research assistant collecting recent posts about LLM tokenization.
You must search the web and return results as a JSON array.
Return ONLY valid JSON, no markdown backticks, no preamble, no explanation.
If you find no results, return an empty array: []`

// Collect prompts the model to search the web for posts inside the
// lookback window and parses its JSON reply into records.
func (c *WebSearchCollector) Collect(ctx context.Context, keywords []string, cfg types.CollectConfig) ([]types.Record, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("no API key configured")
	}

	text, err := c.callWithSearch(ctx, webSearchPrompt(keywords, cfg))
	if err != nil {
		return nil, err
	}

	items, err := parseWebSearchItems(text)
	if err != nil {
		return nil, fmt.Errorf("parsing web search results: %w", err)
	}

	var records []types.Record
	for _, item := range items {
		if item.Title == "" || item.URL == "" {
			continue
		}
		rec := types.Record{
			Title:     item.Title,
			Abstract:  clip(item.Summary, abstractClip),
			URL:       item.URL,
			Published: item.Published,
			Source:    types.SourceWeb,
		}
		if item.Author != "" {
			rec.Authors = []string{item.Author}
		}
		records = append(records, rec)
	}
	return records, nil
}

// webSearchPrompt builds the user prompt with the collection window and
// the platforms to cover.
func webSearchPrompt(keywords []string, cfg types.CollectConfig) string {
	if len(keywords) > 5 {
		keywords = keywords[:5]
	}
	cutoff := cutoffDate(cfg).Format("2006-01-02")
	today := time.Now().Format("2006-01-02")

	return fmt.Sprintf(`Search for recent blog posts, articles, and discussions about LLM tokenization
published between %s and %s.

Search these platforms specifically:
1. Medium articles about tokenization, BPE, tokenizers in LLMs
2. Substack posts about tokenization research
3. emergentmind.com for trending tokenization papers
4. Twitter/X threads about tokenization research
5. Any other notable blog posts about tokenization

Keywords to search for: %s

For each result found, extract:
- title: the post/article title
- author: author name
- url: the URL
- summary: 1-2 sentence description
- published: publication date (YYYY-MM-DD format, approximate if needed)
- platform: which platform (medium, substack, emergentmind, twitter, blog)

Return results as a JSON array of objects with those fields.
Return ONLY the JSON array, nothing else. No markdown formatting.
Example: [{"title": "...", "author": "...", "url": "...", "summary": "...", "published": "...", "platform": "..."}]`,
		cutoff, today, strings.Join(keywords, ", "))
}

// webSearchRequest is the request body for the Messages API with the web
// search tool enabled.
type webSearchRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []webSearchMessage `json:"messages"`
	Tools     []webSearchTool    `json:"tools"`
}

type webSearchMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type webSearchTool struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type webSearchResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// webSearchItem is one result object in the model's JSON reply.
type webSearchItem struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	URL       string `json:"url"`
	Summary   string `json:"summary"`
	Published string `json:"published"`
	Platform  string `json:"platform"`
}

// callWithSearch sends the prompt and concatenates the text blocks from
// the reply. Tool-use blocks are skipped; only the final text matters.
func (c *WebSearchCollector) callWithSearch(ctx context.Context, prompt string) (string, error) {
	reqBody := webSearchRequest{
		Model:     c.Model,
		MaxTokens: 4000,
		System:    webSearchSystem,
		Messages:  []webSearchMessage{{Role: "user", Content: prompt}},
		Tools:     []webSearchTool{{Type: "web_search_20250305", Name: "web_search"}},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicAPIBase, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Claude API returned %d: %s", resp.StatusCode, string(body))
	}

	var wr webSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return "", fmt.Errorf("decoding Claude response: %w", err)
	}

	var texts []string
	for _, block := range wr.Content {
		if block.Type == "text" {
			texts = append(texts, block.Text)
		}
	}
	return strings.Join(texts, "\n"), nil
}

// parseWebSearchItems unmarshals the model's reply, tolerating a markdown
// code fence around the JSON array.
func parseWebSearchItems(text string) ([]webSearchItem, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		if _, rest, ok := strings.Cut(text, "\n"); ok {
			text = rest
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	var items []webSearchItem
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, err
	}
	return items, nil
}
