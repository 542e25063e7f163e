// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "digest-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// KeywordsConfig holds the keyword lists that drive collection and scoring.
// Order does not affect scores, only the hit counts do.
type KeywordsConfig struct {
	// Primary terms identify on-topic work (e.g. "tokenization", "BPE").
	Primary []string `json:"primary" yaml:"primary" mapstructure:"primary"`

	// Secondary terms add context weight (e.g. "language model", "LLM").
	Secondary []string `json:"secondary" yaml:"secondary" mapstructure:"secondary"`
}

// CollectConfig holds settings for the collection stage.
type CollectConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// LookbackDays is the collection window; older items are skipped.
	LookbackDays int `json:"lookback_days" yaml:"lookback_days" mapstructure:"lookback_days"`

	// MaxPerSource caps results per collector query (default 50).
	MaxPerSource int `json:"max_per_source" yaml:"max_per_source" mapstructure:"max_per_source"`

	// ArxivCategories restricts the arXiv query (e.g. "cs.CL", "cs.LG").
	ArxivCategories []string `json:"arxiv_categories" yaml:"arxiv_categories" mapstructure:"arxiv_categories"`

	// HuggingFaceRSS is the Hugging Face blog feed URL.
	HuggingFaceRSS string `json:"huggingface_rss" yaml:"huggingface_rss" mapstructure:"huggingface_rss"`

	// ScholarAlertFeeds lists Google Scholar alert RSS URLs.
	ScholarAlertFeeds []string `json:"scholar_alert_feeds" yaml:"scholar_alert_feeds" mapstructure:"scholar_alert_feeds"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty" mapstructure:"semantic_scholar_api_key"`

	// InterSourceDelay is the delay between launches of collector requests
	// to different sources (default 1s).
	InterSourceDelay time.Duration `json:"inter_source_delay" yaml:"inter_source_delay" mapstructure:"inter_source_delay"`
}

// SelectionConfig holds settings for the ranking and selection stage.
type SelectionConfig struct {
	// MaxItems is the size of the ranked candidate pool handed to
	// categorization (default 20).
	MaxItems int `json:"max_items" yaml:"max_items" mapstructure:"max_items"`

	// MinRelevance drops records scoring below it (default 0.15).
	MinRelevance float64 `json:"min_relevance" yaml:"min_relevance" mapstructure:"min_relevance"`
}

// AIConfig holds shared settings for stages that call the Anthropic API.
type AIConfig struct {
	// Model is the model identifier (e.g. "claude-sonnet-4-20250514").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// SummaryConfig holds settings for the summarization stage.
type SummaryConfig struct {
	AIConfig `yaml:",inline" mapstructure:",squash"`

	// MaxTokensSummary caps each per-record summary (default 150).
	MaxTokensSummary int `json:"max_tokens_summary" yaml:"max_tokens_summary" mapstructure:"max_tokens_summary"`

	// MaxTokensEditorial caps the issue editorial (default 300).
	MaxTokensEditorial int `json:"max_tokens_editorial" yaml:"max_tokens_editorial" mapstructure:"max_tokens_editorial"`

	// WebSearchModel is the model used by the web search collector,
	// usually a cheaper one with a separate rate limit.
	WebSearchModel string `json:"web_search_model,omitempty" yaml:"web_search_model,omitempty" mapstructure:"web_search_model"`
}

// OutputConfig holds settings for issue rendering and archival.
type OutputConfig struct {
	// OutputDir is the directory for rendered issues (e.g. "output/issues/").
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// ArchiveDir is the base directory for the issue archive database.
	ArchiveDir string `json:"archive_dir" yaml:"archive_dir" mapstructure:"archive_dir"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Keywords  KeywordsConfig  `json:"keywords" yaml:"keywords" mapstructure:"keywords"`
	Collect   CollectConfig   `json:"collect" yaml:"collect" mapstructure:"collect"`
	Selection SelectionConfig `json:"selection" yaml:"selection" mapstructure:"selection"`
	Summary   SummaryConfig   `json:"summary" yaml:"summary" mapstructure:"summary"`
	Output    OutputConfig    `json:"output" yaml:"output" mapstructure:"output"`
}
