package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv        = "POST_DRAFTER_CONFIG"
	logLevelEnv          = "POST_DRAFTER_LOG_LEVEL"
	generatorAPIKeyEnv   = "ANTHROPIC_API_KEY"
	generatorModelEnv    = "ANTHROPIC_MODEL"
	repositoryEnv        = "GITHUB_REPOSITORY"
	issueNumberEnv       = "ISSUE_NUMBER"
	consumerKeyEnv       = "X_API_KEY"
	consumerSecretEnv    = "X_API_SECRET"
	accessTokenEnv       = "X_ACCESS_TOKEN"
	accessTokenSecretEnv = "X_ACCESS_TOKEN_SECRET"
)

// MissingError identifies a required setting that was not provided.
type MissingError struct {
	Field string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("config: %s is required", e.Field)
}

// Config holds high-level settings required across the application.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Generator GeneratorConfig `yaml:"generator"`
	Tracker   TrackerConfig   `yaml:"tracker"`
	Publish   PublishConfig   `yaml:"publish"`
	Feedback  FeedbackConfig  `yaml:"feedback"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Archive   ArchiveConfig   `yaml:"archive"`
}

// LoggingConfig controls console log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// GeneratorConfig describes the text-generation service.
type GeneratorConfig struct {
	Endpoint   string `yaml:"endpoint"`
	Model      string `yaml:"model"`
	APIKey     string `yaml:"apiKey"`
	APIVersion string `yaml:"apiVersion"`
	MaxTokens  int    `yaml:"maxTokens"`
}

// TrackerConfig identifies the issue tracker repository and, for feedback
// and publish runs, the target issue.
type TrackerConfig struct {
	Repository  string `yaml:"repository"`
	IssueNumber int    `yaml:"issueNumber"`
}

// PublishConfig carries the signed-request credential 4-tuple and API base.
type PublishConfig struct {
	BaseURL           string `yaml:"baseUrl"`
	ConsumerKey       string `yaml:"consumerKey"`
	ConsumerSecret    string `yaml:"consumerSecret"`
	AccessToken       string `yaml:"accessToken"`
	AccessTokenSecret string `yaml:"accessTokenSecret"`
}

// FeedbackConfig locates the persisted feedback log.
type FeedbackConfig struct {
	LogPath string `yaml:"logPath"`
}

// ArtifactsConfig names the files downstream steps consume after a publish
// run: the permalink on success, the error message on failure.
type ArtifactsConfig struct {
	URLPath   string `yaml:"urlPath"`
	ErrorPath string `yaml:"errorPath"`
}

// ArchiveConfig locates the published-post archive; empty path disables it.
type ArchiveConfig struct {
	Path string `yaml:"path"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// ValidateDraft checks the settings the drafting pipeline needs.
func (c Config) ValidateDraft() error {
	if c.Generator.APIKey == "" {
		return &MissingError{Field: generatorAPIKeyEnv}
	}
	if c.Tracker.Repository == "" {
		return &MissingError{Field: repositoryEnv}
	}
	return nil
}

// ValidateFeedback checks the settings a feedback run needs.
func (c Config) ValidateFeedback() error {
	if c.Tracker.Repository == "" {
		return &MissingError{Field: repositoryEnv}
	}
	if c.Tracker.IssueNumber <= 0 {
		return &MissingError{Field: issueNumberEnv}
	}
	return nil
}

// ValidatePublish checks the settings a publish run needs.
func (c Config) ValidatePublish() error {
	if c.Tracker.Repository == "" {
		return &MissingError{Field: repositoryEnv}
	}
	if c.Tracker.IssueNumber <= 0 {
		return &MissingError{Field: issueNumberEnv}
	}
	return c.ValidateCheck()
}

// ValidateCheck checks the publish credential 4-tuple.
func (c Config) ValidateCheck() error {
	switch {
	case c.Publish.ConsumerKey == "":
		return &MissingError{Field: consumerKeyEnv}
	case c.Publish.ConsumerSecret == "":
		return &MissingError{Field: consumerSecretEnv}
	case c.Publish.AccessToken == "":
		return &MissingError{Field: accessTokenEnv}
	case c.Publish.AccessTokenSecret == "":
		return &MissingError{Field: accessTokenSecretEnv}
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(generatorAPIKeyEnv); v != "" {
		c.Generator.APIKey = v
	}
	if v := os.Getenv(generatorModelEnv); v != "" {
		c.Generator.Model = v
	}

	if v := os.Getenv(repositoryEnv); v != "" {
		c.Tracker.Repository = v
	}
	if v := os.Getenv(issueNumberEnv); v != "" {
		if n, err := strconv.Atoi(v); err != nil {
			log.Printf("config: invalid %s %q: %v", issueNumberEnv, v, err)
		} else {
			c.Tracker.IssueNumber = n
		}
	}

	if v := os.Getenv(consumerKeyEnv); v != "" {
		c.Publish.ConsumerKey = v
	}
	if v := os.Getenv(consumerSecretEnv); v != "" {
		c.Publish.ConsumerSecret = v
	}
	if v := os.Getenv(accessTokenEnv); v != "" {
		c.Publish.AccessToken = v
	}
	if v := os.Getenv(accessTokenSecretEnv); v != "" {
		c.Publish.AccessTokenSecret = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Generator.Endpoint != "" {
		base.Generator.Endpoint = override.Generator.Endpoint
	}
	if override.Generator.Model != "" {
		base.Generator.Model = override.Generator.Model
	}
	if override.Generator.APIKey != "" {
		base.Generator.APIKey = override.Generator.APIKey
	}
	if override.Generator.APIVersion != "" {
		base.Generator.APIVersion = override.Generator.APIVersion
	}
	if override.Generator.MaxTokens > 0 {
		base.Generator.MaxTokens = override.Generator.MaxTokens
	}

	if override.Tracker.Repository != "" {
		base.Tracker.Repository = override.Tracker.Repository
	}
	if override.Tracker.IssueNumber > 0 {
		base.Tracker.IssueNumber = override.Tracker.IssueNumber
	}

	if override.Publish.BaseURL != "" {
		base.Publish.BaseURL = override.Publish.BaseURL
	}
	if override.Publish.ConsumerKey != "" {
		base.Publish.ConsumerKey = override.Publish.ConsumerKey
	}
	if override.Publish.ConsumerSecret != "" {
		base.Publish.ConsumerSecret = override.Publish.ConsumerSecret
	}
	if override.Publish.AccessToken != "" {
		base.Publish.AccessToken = override.Publish.AccessToken
	}
	if override.Publish.AccessTokenSecret != "" {
		base.Publish.AccessTokenSecret = override.Publish.AccessTokenSecret
	}

	if override.Feedback.LogPath != "" {
		base.Feedback.LogPath = override.Feedback.LogPath
	}

	if override.Artifacts.URLPath != "" {
		base.Artifacts.URLPath = override.Artifacts.URLPath
	}
	if override.Artifacts.ErrorPath != "" {
		base.Artifacts.ErrorPath = override.Artifacts.ErrorPath
	}

	if override.Archive.Path != "" {
		base.Archive.Path = override.Archive.Path
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Generator: GeneratorConfig{
			Endpoint:   "https://api.anthropic.com",
			Model:      "claude-sonnet-4-20250514",
			APIVersion: "2023-06-01",
			MaxTokens:  1024,
		},
		Publish: PublishConfig{
			BaseURL: "https://api.twitter.com/2",
		},
		Feedback: FeedbackConfig{LogPath: "knowledge/feedback-log.json"},
		Artifacts: ArtifactsConfig{
			URLPath:   "tweet_url.txt",
			ErrorPath: "error.txt",
		},
	}
}
