package utils

import (
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config provides a thread-safe key/value view over the process environment
// with defaults and type conversion
type Config struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewConfig creates a new Config instance with the provided key-value pairs
func NewConfig(values map[string]string) *Config {
	config := &Config{
		values: make(map[string]string),
	}

	maps.Copy(config.values, values)

	return config
}

// NewConfigFromEnv creates a new Config instance by loading environment variables
// from the specified .env files
func NewConfigFromEnv(files ...string) *Config {
	envMap := LoadEnv(files...)
	return NewConfig(envMap)
}

// lookup returns a value and whether the key is present
func (c *Config) lookup(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, exists := c.values[key]
	return value, exists
}

// Get retrieves a configuration value by key
// Returns empty string if key doesn't exist
func (c *Config) Get(key string) string {
	value, _ := c.lookup(key)
	return value
}

// GetWithDefault retrieves a configuration value by key with a fallback default
// The default is also used when the value is empty
func (c *Config) GetWithDefault(key, defaultValue string) string {
	if value, exists := c.lookup(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// GetList splits a comma separated value, dropping blank entries
func (c *Config) GetList(key string, defaultValue []string) []string {
	value, exists := c.lookup(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetBool retrieves a configuration value as a boolean
// Returns false if key doesn't exist or cannot be parsed as boolean
func (c *Config) GetBool(key string) bool {
	return parseBool(c.Get(key))
}

// GetBoolWithDefault retrieves a configuration value as a boolean with a fallback default
func (c *Config) GetBoolWithDefault(key string, defaultValue bool) bool {
	value, exists := c.lookup(key)
	if !exists {
		return defaultValue
	}
	return parseBool(value)
}

// GetInt retrieves a configuration value as an integer
// Returns 0 if key doesn't exist or cannot be parsed as integer
func (c *Config) GetInt(key string) int {
	return c.GetIntWithDefault(key, 0)
}

// GetIntWithDefault retrieves a configuration value as an integer with a fallback default
// The default is also used when the value is empty or malformed
func (c *Config) GetIntWithDefault(key string, defaultValue int) int {
	value, exists := c.lookup(key)
	if !exists {
		return defaultValue
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetFloatWithDefault retrieves a configuration value as a float with a fallback default
func (c *Config) GetFloatWithDefault(key string, defaultValue float64) float64 {
	value, exists := c.lookup(key)
	if !exists {
		return defaultValue
	}

	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetDurationWithDefault retrieves a duration. Both Go durations ("2500ms") and plain
// numbers of seconds ("2.5") are accepted.
func (c *Config) GetDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value, exists := c.lookup(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	value = strings.TrimSpace(value)

	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		return time.Duration(seconds * float64(time.Second))
	}
	return defaultValue
}

// Set modifies a configuration value
func (c *Config) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

// Has checks if a configuration key exists
func (c *Config) Has(key string) bool {
	_, exists := c.lookup(key)
	return exists
}

// Keys returns all configuration keys, sorted
func (c *Config) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Sorted(maps.Keys(c.values))
}

// parseBool accepts strconv booleans plus common switch words
func parseBool(value string) bool {
	if value == "" {
		return false
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		switch strings.ToLower(value) {
		case "yes", "on", "enabled":
			return true
		default:
			return false
		}
	}
	return parsed
}
