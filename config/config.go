package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/FACorreiaa/wagewatch/internal/types"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Handlers struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Server struct {
		HTTPPort       string        `mapstructure:"HTTPPort"`
		Timeout        time.Duration `mapstructure:"HTTPTimeout"`
		AllowedOrigins []string      `mapstructure:"allowedOrigins"`
	} `mapstructure:"server"`
	Upstream struct {
		BaseURL string        `mapstructure:"baseURL"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"upstream"`
	Advisor struct {
		// Provider is "remote" (advisory chat service), "gemini" or "fallback".
		Provider  string `mapstructure:"provider"`
		Model     string `mapstructure:"model"`
		APIKeyEnv string `mapstructure:"apiKeyEnv"`
	} `mapstructure:"advisor"`
	Cache struct {
		ConversionTTL time.Duration `mapstructure:"conversionTTL"`
		SessionTTL    time.Duration `mapstructure:"sessionTTL"`
		PrefillTTL    time.Duration `mapstructure:"prefillTTL"`
	} `mapstructure:"cache"`
	CostOfLiving struct {
		// Locations replaces the built-in table when non-empty.
		Locations []types.LocationProfile `mapstructure:"locations"`
	} `mapstructure:"costOfLiving"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// WAGEWATCH_UPSTREAM_BASEURL overrides upstream.baseURL, and so on.
	v.SetEnvPrefix("wagewatch")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return config, nil
}
