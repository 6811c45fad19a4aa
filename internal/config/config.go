// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/docchat/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete docchat configuration.
type Config struct {
	// Storage selects where conversations and preferences are persisted.
	Storage StorageConfig `toml:"storage" json:"storage"`

	// Responder selects what answers user messages.
	Responder ResponderConfig `toml:"responder" json:"responder"`

	// Ollama is used when responder.kind = "ollama".
	Ollama OllamaConfig `toml:"ollama" json:"ollama"`

	// Server configures "docchat serve".
	Server ServerConfig `toml:"server" json:"server"`

	// UI configures terminal rendering.
	UI UIConfig `toml:"ui" json:"ui"`

	// Log configures structured logging.
	Log LogConfig `toml:"log" json:"log"`
}

// StorageConfig contains persistence settings.
type StorageConfig struct {
	// Backend is one of "file", "sqlite", "memory".
	Backend string `toml:"backend" json:"backend"`
	// Dir holds one JSON file per slot key for the file backend.
	Dir string `toml:"dir" json:"dir"`
	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string `toml:"sqlite_path" json:"sqlite_path"`
	// MaxConversations caps the saved collection.
	MaxConversations int `toml:"max_conversations" json:"max_conversations"`
}

// ResponderConfig contains reply generation settings.
type ResponderConfig struct {
	// Kind is one of "mock", "backend", "ollama".
	Kind string `toml:"kind" json:"kind"`
	// BackendURL is the base URL of the RAG backend (/chat, /adk-chat).
	BackendURL string `toml:"backend_url" json:"backend_url"`
	// AuthToken is sent as a bearer token to the backend.
	AuthToken string `toml:"auth_token" json:"auth_token"`
	// TimeoutSecs bounds one backend request.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// RatePerSec limits outgoing backend requests (0 = unlimited).
	RatePerSec float64 `toml:"rate_per_sec" json:"rate_per_sec"`
	// MockLatencyMs is the fixed delay of the mock responder.
	MockLatencyMs int `toml:"mock_latency_ms" json:"mock_latency_ms"`
	// Mode is the initial chat mode: "chat" or "agent".
	Mode string `toml:"mode" json:"mode"`
	// DataSource is the initial data source for agent mode.
	DataSource string `toml:"data_source" json:"data_source"`
}

// OllamaConfig contains local Ollama settings.
type OllamaConfig struct {
	URL   string `toml:"url" json:"url"`
	Model string `toml:"model" json:"model"`
}

// ServerConfig contains HTTP API settings.
type ServerConfig struct {
	Addr string `toml:"addr" json:"addr"`
	// APIToken, when set, is required as a bearer token on /api routes.
	APIToken string `toml:"api_token" json:"api_token"`
	// CORSOrigins is a comma-separated list of allowed browser origins.
	CORSOrigins string `toml:"cors_origins" json:"cors_origins"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Theme is one of "auto", "dark", "light", "plain".
	Theme string `toml:"theme" json:"theme"`
	// WordWrap is the markdown wrap width in columns.
	WordWrap int `toml:"word_wrap" json:"word_wrap"`
	// HistoryHintMs is how long the loading-from-history flag stays set.
	HistoryHintMs int `toml:"history_hint_ms" json:"history_hint_ms"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `toml:"level" json:"level"`
	// Format is "console" or "json".
	Format string `toml:"format" json:"format"`
	// File appends logs to a file instead of stderr when set.
	File string `toml:"file" json:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:          "file",
			Dir:              "~/.docchat/data",
			SQLitePath:       "~/.docchat/docchat.db",
			MaxConversations: 20,
		},
		Responder: ResponderConfig{
			Kind:          "mock",
			BackendURL:    "http://localhost:8002",
			TimeoutSecs:   60,
			RatePerSec:    2,
			MockLatencyMs: 1000,
			Mode:          "chat",
		},
		Ollama: OllamaConfig{
			URL:   "http://127.0.0.1:11434",
			Model: "qwen2.5:7b",
		},
		Server: ServerConfig{
			Addr:        "127.0.0.1:8790",
			CORSOrigins: "http://localhost:3000,http://127.0.0.1:3000",
		},
		UI: UIConfig{
			Theme:         "auto",
			WordWrap:      80,
			HistoryHintMs: 100,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the docchat configuration directory.
// DOCCHAT_HOME overrides the default ~/.docchat.
func ConfigDir() (string, error) {
	if dir := os.Getenv("DOCCHAT_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".docchat"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ".env")
// into the process environment. Missing files are ignored; variables
// already set in the environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// Load loads configuration from the default locations.
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			return LoadFromPath(tomlPath)
		}
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			return LoadFromPath(jsonPath)
		}
	}

	cfg := Default()
	return cfg, cfg.finish()
}

// LoadFromPath loads configuration from a specific file path.
// Files ending in .json are decoded as JSON, everything else as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) finish() error {
	c.ApplyEnvOverrides()
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// SECURITY: the file holds the backend token, so it is written 0600.
func SaveTOML(cfg *Config, path string) error {
	var sb strings.Builder
	sb.WriteString("# docchat configuration file\n")
	sb.WriteString("# Generated by docchat - edit with care\n")
	sb.WriteString("\n")

	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

func oneOf(field, value string, allowed ...string) *ValidationError {
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("invalid value '%s', must be one of: %s", value, strings.Join(allowed, ", ")),
	}
}

func validURL(field, raw string) *ValidationError {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ValidationError{Field: field, Message: fmt.Sprintf("invalid URL '%s'", raw)}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Field: field, Message: fmt.Sprintf("unsupported scheme '%s', must be http or https", u.Scheme)}
	}
	return nil
}

// Validate validates the configuration and returns ValidateErrors when
// anything is wrong.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(e *ValidationError) {
		if e != nil {
			errs = append(errs, *e)
		}
	}

	add(oneOf("storage.backend", c.Storage.Backend, "file", "sqlite", "memory"))
	if c.Storage.MaxConversations < 1 || c.Storage.MaxConversations > 1000 {
		errs = append(errs, ValidationError{
			Field:   "storage.max_conversations",
			Message: fmt.Sprintf("must be between 1 and 1000, got %d", c.Storage.MaxConversations),
		})
	}

	add(oneOf("responder.kind", c.Responder.Kind, "mock", "backend", "ollama"))
	add(oneOf("responder.mode", c.Responder.Mode, "chat", "agent"))
	if strings.EqualFold(c.Responder.Kind, "backend") {
		add(validURL("responder.backend_url", c.Responder.BackendURL))
	}
	if c.Responder.TimeoutSecs < 1 {
		errs = append(errs, ValidationError{Field: "responder.timeout_secs", Message: "must be positive"})
	}
	if c.Responder.RatePerSec < 0 {
		errs = append(errs, ValidationError{Field: "responder.rate_per_sec", Message: "must not be negative"})
	}
	if c.Responder.MockLatencyMs < 0 {
		errs = append(errs, ValidationError{Field: "responder.mock_latency_ms", Message: "must not be negative"})
	}

	if strings.EqualFold(c.Responder.Kind, "ollama") {
		add(validURL("ollama.url", c.Ollama.URL))
	}

	add(oneOf("ui.theme", c.UI.Theme, "auto", "dark", "light", "plain"))
	if c.UI.WordWrap < 20 {
		errs = append(errs, ValidationError{Field: "ui.word_wrap", Message: fmt.Sprintf("must be at least 20, got %d", c.UI.WordWrap)})
	}
	if c.UI.HistoryHintMs < 0 {
		errs = append(errs, ValidationError{Field: "ui.history_hint_ms", Message: "must not be negative"})
	}

	add(oneOf("log.level", c.Log.Level, "trace", "debug", "info", "warn", "error", "disabled"))
	add(oneOf("log.format", c.Log.Format, "console", "json"))

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero-value fields from Default.
func (c *Config) SetDefaults() {
	d := Default()

	if c.Storage.Backend == "" {
		c.Storage.Backend = d.Storage.Backend
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = d.Storage.Dir
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = d.Storage.SQLitePath
	}
	if c.Storage.MaxConversations == 0 {
		c.Storage.MaxConversations = d.Storage.MaxConversations
	}

	if c.Responder.Kind == "" {
		c.Responder.Kind = d.Responder.Kind
	}
	if c.Responder.BackendURL == "" {
		c.Responder.BackendURL = d.Responder.BackendURL
	}
	if c.Responder.TimeoutSecs == 0 {
		c.Responder.TimeoutSecs = d.Responder.TimeoutSecs
	}
	if c.Responder.Mode == "" {
		c.Responder.Mode = d.Responder.Mode
	}

	if c.Ollama.URL == "" {
		c.Ollama.URL = d.Ollama.URL
	}
	if c.Ollama.Model == "" {
		c.Ollama.Model = d.Ollama.Model
	}

	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}

	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.WordWrap == 0 {
		c.UI.WordWrap = d.UI.WordWrap
	}

	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

// ApplyEnvOverrides applies DOCCHAT_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	overrides := []struct {
		env    string
		target *string
	}{
		{"DOCCHAT_STORAGE_BACKEND", &c.Storage.Backend},
		{"DOCCHAT_DATA_DIR", &c.Storage.Dir},
		{"DOCCHAT_SQLITE_PATH", &c.Storage.SQLitePath},
		{"DOCCHAT_RESPONDER", &c.Responder.Kind},
		{"DOCCHAT_BACKEND_URL", &c.Responder.BackendURL},
		{"DOCCHAT_AUTH_TOKEN", &c.Responder.AuthToken},
		{"DOCCHAT_MODE", &c.Responder.Mode},
		{"DOCCHAT_DATA_SOURCE", &c.Responder.DataSource},
		{"DOCCHAT_OLLAMA_URL", &c.Ollama.URL},
		{"DOCCHAT_OLLAMA_MODEL", &c.Ollama.Model},
		{"DOCCHAT_ADDR", &c.Server.Addr},
		{"DOCCHAT_API_TOKEN", &c.Server.APIToken},
		{"DOCCHAT_THEME", &c.UI.Theme},
		{"DOCCHAT_LOG_LEVEL", &c.Log.Level},
		{"DOCCHAT_LOG_FORMAT", &c.Log.Format},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}

	if v := os.Getenv("DOCCHAT_MOCK_LATENCY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.Responder.MockLatencyMs = ms
		}
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "ui.theme").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "ui.theme").
// String values are converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("'%s' is a section, not a value", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			lower := strings.ToLower(strVal)
			field.SetBool(lower == "1" || lower == "true" || lower == "yes")
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns all configuration keys in dot notation, sorted.
func GetAllKeys() []string {
	var keys []string
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		section := t.Field(i)
		prefix := section.Tag.Get("toml")
		for j := 0; j < section.Type.NumField(); j++ {
			keys = append(keys, prefix+"."+section.Type.Field(j).Tag.Get("toml"))
		}
	}
	sort.Strings(keys)
	return keys
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// Clone returns a copy of the configuration. All fields are values.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns a JSON representation with secrets redacted.
func (c *Config) String() string {
	safe := c.Clone()
	if safe.Responder.AuthToken != "" {
		safe.Responder.AuthToken = "[REDACTED]"
	}
	if safe.Server.APIToken != "" {
		safe.Server.APIToken = "[REDACTED]"
	}
	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}

// DataDir returns the storage directory with "~" expanded.
func (c *Config) DataDir() string {
	return util.ExpandHome(c.Storage.Dir)
}

// DatabasePath returns the sqlite path with "~" expanded.
func (c *Config) DatabasePath() string {
	return util.ExpandHome(c.Storage.SQLitePath)
}

// HistoryFile returns the REPL history path inside the config directory.
func HistoryFile() string {
	dir, err := ConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "chat_history")
}
