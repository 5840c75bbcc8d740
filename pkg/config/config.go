package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/recallkit"
	ConfigFileName    = "recallkit.yml"

	DefaultDataDir        = "/app/data/progress"
	DefaultBuildDir       = "static/web/build"
	DefaultAPIBase        = "http://localhost:8502/api"
	DefaultMaxUploadBytes = 10 << 20
	DefaultReviewLimit    = 20
)

// RecallKitConfig holds all RecallKit configuration settings
type RecallKitConfig struct {
	// DataDir is where per-profile progress documents are stored
	DataDir string `yaml:"data_dir" json:"data_dir"`

	// BuildDir is where converted topic sets (JSON/TSV) are written
	BuildDir string `yaml:"build_dir" json:"build_dir"`

	// APIToken, when set, is required as a bearer token on mutating requests
	APIToken string `yaml:"api_token" json:"api_token"`

	// APIBase is the API URL the study page talks to
	APIBase string `yaml:"api_base" json:"api_base"`

	// CORSOrigins lists allowed origins; empty means any origin
	CORSOrigins []string `yaml:"cors_origins" json:"cors_origins"`

	// DatabaseURL switches progress storage to PostgreSQL
	DatabaseURL string `yaml:"database_url" json:"database_url"`

	// MaxUploadBytes caps the size of a Markdown upload request
	MaxUploadBytes int64 `yaml:"max_upload_bytes" json:"max_upload_bytes"`

	// ReviewLimit is the default number of due cards returned per request
	ReviewLimit int `yaml:"review_limit" json:"review_limit"`

	// BoxIntervals are the Leitner review intervals of boxes one to four
	BoxIntervals []string `yaml:"box_intervals" json:"box_intervals"`

	sources        map[string]string
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

func newDefault() *RecallKitConfig {
	return &RecallKitConfig{
		DataDir:        DefaultDataDir,
		BuildDir:       DefaultBuildDir,
		APIBase:        DefaultAPIBase,
		CORSOrigins:    []string{},
		MaxUploadBytes: DefaultMaxUploadBytes,
		ReviewLimit:    DefaultReviewLimit,
		BoxIntervals:   []string{"0s", "24h", "72h", "168h"},
		sources:        make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*RecallKitConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("RECALLKIT_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig RecallKitConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"data_dir", "build_dir", "api_token", "api_base", "cors_origins",
		"database_url", "max_upload_bytes", "review_limit", "box_intervals",
	}
}

func (c *RecallKitConfig) applyFileConfig(file *RecallKitConfig) {
	if file.DataDir != "" {
		c.DataDir = file.DataDir
		c.sources["data_dir"] = "file"
	}
	if file.BuildDir != "" {
		c.BuildDir = file.BuildDir
		c.sources["build_dir"] = "file"
	}
	if file.APIToken != "" {
		c.APIToken = strings.TrimSpace(file.APIToken)
		c.sources["api_token"] = "file"
	}
	if file.APIBase != "" {
		c.APIBase = file.APIBase
		c.sources["api_base"] = "file"
	}
	if len(file.CORSOrigins) > 0 {
		c.CORSOrigins = file.CORSOrigins
		c.sources["cors_origins"] = "file"
	}
	if file.DatabaseURL != "" {
		c.DatabaseURL = file.DatabaseURL
		c.sources["database_url"] = "file"
	}
	if file.MaxUploadBytes != 0 {
		c.MaxUploadBytes = file.MaxUploadBytes
		c.sources["max_upload_bytes"] = "file"
	}
	if file.ReviewLimit != 0 {
		c.ReviewLimit = file.ReviewLimit
		c.sources["review_limit"] = "file"
	}
	if len(file.BoxIntervals) > 0 {
		c.BoxIntervals = file.BoxIntervals
		c.sources["box_intervals"] = "file"
	}
}

func (c *RecallKitConfig) applyEnvConfig() {
	if val := os.Getenv("RECALLKIT_DATA_DIR"); val != "" {
		c.DataDir = val
		c.sources["data_dir"] = "environment"
	}
	if val := os.Getenv("RECALLKIT_BUILD_DIR"); val != "" {
		c.BuildDir = val
		c.sources["build_dir"] = "environment"
	}
	if val := strings.TrimSpace(os.Getenv("RECALLKIT_API_TOKEN")); val != "" {
		c.APIToken = val
		c.sources["api_token"] = "environment"
	}
	if val := os.Getenv("RECALLKIT_API_BASE"); val != "" {
		c.APIBase = val
		c.sources["api_base"] = "environment"
	}
	if val := os.Getenv("RECALLKIT_CORS_ORIGINS"); strings.TrimSpace(val) != "" {
		c.CORSOrigins = splitAndTrim(val)
		c.sources["cors_origins"] = "environment"
	}
	if val := os.Getenv("RECALLKIT_DATABASE_URL"); val != "" {
		c.DatabaseURL = val
		c.sources["database_url"] = "environment"
	}
	if val := os.Getenv("RECALLKIT_MAX_UPLOAD_BYTES"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.MaxUploadBytes = i
			c.sources["max_upload_bytes"] = "environment"
		}
	}
	if val := os.Getenv("RECALLKIT_REVIEW_LIMIT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ReviewLimit = i
			c.sources["review_limit"] = "environment"
		}
	}
	if val := os.Getenv("RECALLKIT_BOX_INTERVALS"); val != "" {
		c.BoxIntervals = splitAndTrim(val)
		c.sources["box_intervals"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *RecallKitConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *RecallKitConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// AuthEnabled reports whether mutating requests need a bearer token
func (c *RecallKitConfig) AuthEnabled() bool {
	return c.APIToken != ""
}

// AllowedOrigins returns the CORS allow list, "*" when none is configured
func (c *RecallKitConfig) AllowedOrigins() []string {
	if len(c.CORSOrigins) == 0 {
		return []string{"*"}
	}
	return c.CORSOrigins
}

// Intervals parses the Leitner box intervals
func (c *RecallKitConfig) Intervals() ([4]time.Duration, error) {
	var out [4]time.Duration
	if len(c.BoxIntervals) != len(out) {
		return out, fmt.Errorf("box_intervals needs %d values, got %d", len(out), len(c.BoxIntervals))
	}
	for i, s := range c.BoxIntervals {
		d, err := time.ParseDuration(s)
		if err != nil {
			return out, fmt.Errorf("invalid box_intervals value %q: %w", s, err)
		}
		if d < 0 {
			return out, fmt.Errorf("invalid box_intervals value %q: must not be negative", s)
		}
		out[i] = d
	}
	return out, nil
}

// Validate validates the configuration
func (c *RecallKitConfig) Validate() error {
	if c.DataDir == "" && c.DatabaseURL == "" {
		return fmt.Errorf("data_dir or database_url must be set")
	}
	if c.BuildDir == "" {
		return fmt.Errorf("build_dir must be set")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("invalid max_upload_bytes value: %d", c.MaxUploadBytes)
	}
	if c.ReviewLimit < 0 {
		return fmt.Errorf("invalid review_limit value: %d", c.ReviewLimit)
	}
	for _, origin := range c.CORSOrigins {
		if origin == "*" {
			continue
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid cors_origins value: %s", origin)
		}
	}
	if _, err := c.Intervals(); err != nil {
		return err
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources.
// The API token is masked.
func (c *RecallKitConfig) Attributes() []Attribute {
	token := ""
	if c.APIToken != "" {
		token = "********"
	}
	return []Attribute{
		{Name: "data_dir", Value: c.DataDir, Source: c.Source("data_dir")},
		{Name: "build_dir", Value: c.BuildDir, Source: c.Source("build_dir")},
		{Name: "api_token", Value: token, Source: c.Source("api_token")},
		{Name: "api_base", Value: c.APIBase, Source: c.Source("api_base")},
		{Name: "cors_origins", Value: strings.Join(c.CORSOrigins, ","), Source: c.Source("cors_origins")},
		{Name: "database_url", Value: redactURL(c.DatabaseURL), Source: c.Source("database_url")},
		{Name: "max_upload_bytes", Value: strconv.FormatInt(c.MaxUploadBytes, 10), Source: c.Source("max_upload_bytes")},
		{Name: "review_limit", Value: strconv.Itoa(c.ReviewLimit), Source: c.Source("review_limit")},
		{Name: "box_intervals", Value: strings.Join(c.BoxIntervals, ","), Source: c.Source("box_intervals")},
	}
}

// FormatText returns a text representation of the configuration
func (c *RecallKitConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *RecallKitConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "(invalid)"
	}
	return u.Redacted()
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
