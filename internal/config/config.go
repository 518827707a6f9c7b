// Package config holds viper defaults and typed accessors for settings
// shared across commands.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// APIKeyLength is the length of a Steam Web API key.
const APIKeyLength = 32

// SetDefaults registers default values for all configuration keys.
func SetDefaults() {
	viper.SetDefault("steam.country", "FR")
	viper.SetDefault("cache.dir", "cache")
	viper.SetDefault("report.targetratio", 25.0)
	viper.SetDefault("fetch.retries", 1)
	viper.SetDefault("fetch.backoff", "1s")
	viper.SetDefault("fetch.pacingthreshold", 200)
	viper.SetDefault("fetch.pacinginterval", "2s")
	viper.SetDefault("fx.currency", "EUR")
	viper.SetDefault("fx.ratesurl", "https://api.frankfurter.dev/v1/latest")
}

// APIKey returns the configured Steam API key, empty if unset.
func APIKey() string {
	return viper.GetString("steam.apikey")
}

// SetAPIKey stores the API key and persists the config file.
func SetAPIKey(key string) error {
	if err := ValidateAPIKey(key); err != nil {
		return err
	}
	viper.Set("steam.apikey", key)
	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to persist API key: %w", err)
	}
	return nil
}

// ValidateAPIKey checks that the key has the expected shape.
func ValidateAPIKey(key string) error {
	if len(key) != APIKeyLength {
		return fmt.Errorf("invalid API key: expected %d characters, got %d", APIKeyLength, len(key))
	}
	return nil
}

// Country returns the store country code used for price lookups.
func Country() string {
	return viper.GetString("steam.country")
}

// CacheDir returns the root directory of the per-account cache.
func CacheDir() string {
	return viper.GetString("cache.dir")
}

// TargetRatio returns the desired minutes-per-currency-unit baseline.
func TargetRatio() float64 {
	return viper.GetFloat64("report.targetratio")
}

// FetchRetries returns how many times a nil store response is retried.
func FetchRetries() int {
	return viper.GetInt("fetch.retries")
}

// FetchBackoff returns the pause before retrying a nil store response.
func FetchBackoff() time.Duration {
	return viper.GetDuration("fetch.backoff")
}

// PacingThreshold returns the library size above which fetches are paced.
func PacingThreshold() int {
	return viper.GetInt("fetch.pacingthreshold")
}

// PacingInterval returns the minimum wall-clock duration per item when pacing.
func PacingInterval() time.Duration {
	return viper.GetDuration("fetch.pacinginterval")
}

// TargetCurrency returns the currency code prices are converted to.
func TargetCurrency() string {
	return viper.GetString("fx.currency")
}

// RatesURL returns the exchange rates endpoint.
func RatesURL() string {
	return viper.GetString("fx.ratesurl")
}
