package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubwatch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SourceConfig holds settings for the remote publication source client.
type SourceConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates against the remote bibliographic API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// InstToken is an optional institutional token some API plans require.
	InstToken string `json:"inst_token,omitempty" yaml:"inst_token,omitempty"`

	// RateLimit is the maximum request rate in requests per second
	// (default 5, matching the remote API's published quota).
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"`

	// PageSize is the number of IDs requested per search page (default 25).
	PageSize int `json:"page_size" yaml:"page_size"`

	// MaxRetries bounds 429 retries per request (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// StoreConfig holds settings for the SQLite record store.
type StoreConfig struct {
	// Path is the SQLite database file (e.g. "pubwatch.db").
	Path string `json:"path" yaml:"path"`
}

// IngestConfig holds the batch-job parameters for one ingestion run.
type IngestConfig struct {
	// DateLimit is the date floor (YYYY-MM-DD): publications published on
	// or before it are rejected.
	DateLimit string `json:"date_limit" yaml:"date_limit"`

	// Count caps the number of accepted publications per run. Negative
	// (the default) means unbounded: drain the whole pending queue.
	Count int `json:"count" yaml:"count"`

	// AuthorLimit caps how many author terms are kept per publication.
	AuthorLimit int `json:"author_limit" yaml:"author_limit"`

	// CollaborationLimit is the author-count threshold above which a
	// publication is classified as a collaboration.
	CollaborationLimit int `json:"collaboration_limit" yaml:"collaboration_limit"`

	// CachePath is the meta-cache file (e.g. "pubwatch-cache.json").
	CachePath string `json:"cache_path" yaml:"cache_path"`

	// Topics is the known topic vocabulary; publication categories are
	// intersected with it to produce topic tags.
	Topics []string `json:"topics" yaml:"topics"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Source SourceConfig `json:"source" yaml:"source"`
	Store  StoreConfig  `json:"store" yaml:"store"`
	Ingest IngestConfig `json:"ingest" yaml:"ingest"`
}
