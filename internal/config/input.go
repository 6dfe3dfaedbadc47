package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/finseva/finseva/internal/calculation"
	"github.com/finseva/finseva/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv and EnvStatus
const (
	EnvAddr         = "FINSEVA_ADDR"
	EnvLogLevel     = "LOG_LEVEL"
	EnvRedisAddr    = "REDIS_ADDR"
	EnvRedisPass    = "REDIS_PASSWORD"
	EnvJWTSecret    = "JWT_SECRET"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvNewsFeedURL  = "TAX_NEWS_FEED_URL"
)

// DefaultNewsFeedURL is the Times of India business RSS feed
const DefaultNewsFeedURL = "https://timesofindia.indiatimes.com/rssfeeds/-2128936835.cms"

// ServerConfig controls the HTTP listener
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// LogConfig selects the log level
type LogConfig struct {
	Level string `yaml:"level"`
}

// RedisConfig points at the profile store. An empty Addr selects the in-memory store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// AuthConfig holds the shared secret used to verify bearer tokens
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

// AssistantConfig configures the chat backend and document retrieval
type AssistantConfig struct {
	APIKey         string          `yaml:"api_key"`
	Model          string          `yaml:"model"`
	EmbeddingModel string          `yaml:"embedding_model"`
	MatchThreshold decimal.Decimal `yaml:"match_threshold"`
	MatchCount     int             `yaml:"match_count"`
}

// NewsConfig configures the tax news feed
type NewsConfig struct {
	FeedURL string `yaml:"feed_url"`
	Limit   int    `yaml:"limit"`
}

// AppConfig is the top-level configuration file
type AppConfig struct {
	Server    ServerConfig     `yaml:"server"`
	Log       LogConfig        `yaml:"log"`
	Redis     RedisConfig      `yaml:"redis"`
	Auth      AuthConfig       `yaml:"auth"`
	Assistant AssistantConfig  `yaml:"assistant"`
	News      NewsConfig       `yaml:"news"`
	TaxRules  *domain.TaxRules `yaml:"tax_rules,omitempty"`
}

// Default returns the configuration used when no file is given
func Default() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Log: LogConfig{Level: "info"},
		Assistant: AssistantConfig{
			Model:          "gemini-2.0-flash",
			EmbeddingModel: "text-embedding-004",
			MatchThreshold: decimal.NewFromFloat(0.5),
			MatchCount:     5,
		},
		News: NewsConfig{FeedURL: DefaultNewsFeedURL, Limit: 8},
	}
}

// Rules returns the configured tax rules, or the built-in table
func (c *AppConfig) Rules() domain.TaxRules {
	if c.TaxRules == nil {
		return calculation.DefaultTaxRules()
	}
	return *c.TaxRules
}

// ApplyEnv overrides file values with environment variables
func (c *AppConfig) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := getenv(EnvRedisAddr); v != "" {
		c.Redis.Addr = v
	}
	if v := getenv(EnvRedisPass); v != "" {
		c.Redis.Password = v
	}
	if v := getenv(EnvJWTSecret); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := getenv(EnvGeminiAPIKey); v != "" {
		c.Assistant.APIKey = v
	}
	if v := getenv(EnvNewsFeedURL); v != "" {
		c.News.FeedURL = v
	}
}

// EnvStatus reports which integrations are configured in the environment.
// Values are never exposed, only their presence.
func EnvStatus(getenv func(string) string) map[string]bool {
	keys := []string{EnvRedisAddr, EnvJWTSecret, EnvGeminiAPIKey, EnvNewsFeedURL}
	status := make(map[string]bool, len(keys))
	for _, key := range keys {
		status[key] = strings.TrimSpace(getenv(key)) != ""
	}
	return status
}

// InputParser handles parsing of configuration and tax rule files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads the application configuration from a YAML file.
// Missing keys keep their Default() values.
func (ip *InputParser) LoadFromFile(filename string) (*AppConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return config, nil
}

// Parse decodes and validates configuration bytes
func (ip *InputParser) Parse(data []byte) (*AppConfig, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *AppConfig) error {
	if config.Server.Addr == "" {
		return fmt.Errorf("server address is required")
	}
	if config.Server.ReadTimeout < 0 || config.Server.WriteTimeout < 0 || config.Server.IdleTimeout < 0 {
		return fmt.Errorf("server timeouts cannot be negative")
	}
	if config.Redis.DB < 0 {
		return fmt.Errorf("redis db cannot be negative")
	}
	if err := ip.validateAssistant(&config.Assistant); err != nil {
		return fmt.Errorf("assistant validation failed: %w", err)
	}
	if config.News.Limit < 0 {
		return fmt.Errorf("news limit cannot be negative")
	}
	if config.TaxRules != nil {
		if err := ValidateTaxRules(*config.TaxRules); err != nil {
			return fmt.Errorf("tax rules validation failed: %w", err)
		}
	}
	return nil
}

func (ip *InputParser) validateAssistant(a *AssistantConfig) error {
	if a.MatchThreshold.LessThan(decimal.NewFromInt(-1)) || a.MatchThreshold.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("match threshold must be between -1 and 1")
	}
	if a.MatchCount <= 0 {
		return fmt.Errorf("match count must be positive")
	}
	return nil
}

// LoadTaxRules loads a standalone tax rules file
func (ip *InputParser) LoadTaxRules(filename string) (domain.TaxRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.TaxRules{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var rules domain.TaxRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return domain.TaxRules{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ValidateTaxRules(rules); err != nil {
		return domain.TaxRules{}, fmt.Errorf("tax rules validation failed: %w", err)
	}
	return rules, nil
}

// ValidateTaxRules checks that the slab table is a usable progressive schedule
func ValidateTaxRules(rules domain.TaxRules) error {
	if len(rules.Slabs) == 0 {
		return fmt.Errorf("at least one slab is required")
	}

	one := decimal.NewFromInt(1)
	previous := decimal.Zero
	for i, slab := range rules.Slabs {
		label := "slab " + strconv.Itoa(i+1)
		if slab.Rate.IsNegative() || slab.Rate.GreaterThan(one) {
			return fmt.Errorf("%s: rate must be between 0 and 1", label)
		}
		if slab.Unbounded() {
			if i != len(rules.Slabs)-1 {
				return fmt.Errorf("%s: only the last slab may be unbounded", label)
			}
			continue
		}
		if !slab.UpTo.GreaterThan(previous) {
			return fmt.Errorf("%s: upper limit %s must exceed %s", label, slab.UpTo.String(), previous.String())
		}
		previous = *slab.UpTo
	}

	if !rules.Slabs[len(rules.Slabs)-1].Unbounded() {
		return fmt.Errorf("the last slab must be unbounded")
	}
	if rules.CessRate.IsNegative() {
		return fmt.Errorf("cess rate cannot be negative")
	}
	if rules.NewRegimeStandardDeduction.IsNegative() {
		return fmt.Errorf("new regime standard deduction cannot be negative")
	}
	return nil
}
