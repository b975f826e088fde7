/**
 * @description
 * This file handles the configuration management for the loan-proxy-service.
 * It uses the Viper library to read settings from environment variables or a .env file.
 *
 * @dependencies
 * - github.com/spf13/viper: For configuration management.
 */
package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// defaultAllowedOrigins mirrors the origins the browser front-end is served
// from: local dev servers plus the GitHub Pages deployment.
const defaultAllowedOrigins = "http://localhost:5500,http://127.0.0.1:5500,http://localhost:8080,http://127.0.0.1:8080,https://joliveros1977.github.io"

// Config stores all configuration for the application.
type Config struct {
	MambuAPIKey      string `mapstructure:"MAMBU_API_KEY"`
	MambuBaseURL     string `mapstructure:"MAMBU_BASE_URL"`
	DepositAccountID string `mapstructure:"MAMBU_DEPOSIT_ACCOUNT_ID"`
	ServerPort       string `mapstructure:"SERVER_PORT"`
	AllowedOrigins   string `mapstructure:"ALLOWED_ORIGINS"`
}

// LoadConfig reads configuration from file or environment variables and
// fails fast when a required Mambu setting is absent.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("SERVER_PORT", "3000")
	viper.SetDefault("MAMBU_BASE_URL", "https://mbujesse.sandbox.mambu.com/api")
	viper.SetDefault("ALLOWED_ORIGINS", defaultAllowedOrigins)

	// Bind envs explicitly so containers pick them up reliably
	_ = viper.BindEnv("MAMBU_API_KEY")
	_ = viper.BindEnv("MAMBU_BASE_URL")
	_ = viper.BindEnv("MAMBU_DEPOSIT_ACCOUNT_ID")
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("ALLOWED_ORIGINS")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: Error reading config file: %s", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.MambuAPIKey == "" {
		return nil, fmt.Errorf("MAMBU_API_KEY is not set")
	}
	if config.DepositAccountID == "" {
		return nil, fmt.Errorf("MAMBU_DEPOSIT_ACCOUNT_ID is not set")
	}

	return &config, nil
}

// Origins returns the allowed CORS origins as a slice.
func (c *Config) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
