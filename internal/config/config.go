package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr    string `mapstructure:"http_addr"`
	DatabaseURL string `mapstructure:"database_url"`

	StripeAPIKey  string `mapstructure:"stripe_api_key"`
	StripeAPIBase string `mapstructure:"stripe_api_base"`

	// SupportedCurrency is the single settlement currency accepted by the
	// pricing sagas. Any other currency code is rejected before orchestration.
	SupportedCurrency string `mapstructure:"supported_currency"`

	// PricingHistoryLimit bounds how many history entries reads return.
	PricingHistoryLimit int `mapstructure:"pricing_history_limit"`

	// ProductNameFallback is a format string receiving the talent id. It is
	// used as the gateway product display name when the talent row carries no
	// usable stage name (legacy rows migrated without a product reference).
	ProductNameFallback string `mapstructure:"product_name_fallback"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("database_url", "")
	v.SetDefault("stripe_api_key", "")
	v.SetDefault("stripe_api_base", "https://api.stripe.com")
	v.SetDefault("supported_currency", "EUR")
	v.SetDefault("pricing_history_limit", 10)
	v.SetDefault("product_name_fallback", "Talent %s")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
