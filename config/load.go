package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppConfig holds the main runtime configuration. Decimal-valued
// fields arrive as YAML strings and are parsed exactly; malformed
// values fail the load naming the field.
type AppConfig struct {
	Env     string        `yaml:"env"`
	Market  MarketConfig  `yaml:"market"`
	Risk    RiskConfig    `yaml:"risk"`
	Feed    FeedConfig    `yaml:"feed"`
	Venue   VenueConfig   `yaml:"venue"`
	Store   StoreConfig   `yaml:"store"`
	Metrics MetricsConfig `yaml:"metrics"`
	Alert   AlertConfig   `yaml:"alert"`
	Logging LoggingConfig `yaml:"logging"`
}

// MarketConfig identifies the quoted market and its venue grid.
type MarketConfig struct {
	ID           string `yaml:"id"`
	SubaccountID string `yaml:"subaccountId"`
	FeeRecipient string `yaml:"feeRecipient"`
	TickSize     string `yaml:"tickSize"`
	StepSize     string `yaml:"stepSize"`
	MinQuantity  string `yaml:"minQuantity"`
	MinNotional  string `yaml:"minNotional"`
}

// RiskConfig mirrors the engine parameters as configured: tolerances
// and distances in basis points, the rest as plain fractions.
type RiskConfig struct {
	Leverage               string `yaml:"leverage"`
	OrderDensity           int    `yaml:"orderDensity"`
	MaxMarketDataDelayMs   int    `yaml:"maxMarketDataDelayMs"`
	ReservationParam       string `yaml:"reservationParam"`
	SpreadParam            string `yaml:"spreadParam"`
	ActiveCapital          string `yaml:"activeCapital"`
	HeadChangeToleranceBps string `yaml:"headChangeToleranceBps"`
	TailDistanceFromMidBps string `yaml:"tailDistanceFromMidBps"`
	MinTailDistanceBps     string `yaml:"minTailDistanceBps"`
}

// FeedConfig points at the market data stream.
type FeedConfig struct {
	URL string `yaml:"url"`
	// VolatilityWindow sizes the local estimator used when the stream
	// carries no volatility field.
	VolatilityWindow int `yaml:"volatilityWindow"`
	PingIntervalMs   int `yaml:"pingIntervalMs"`
	ReadTimeoutMs    int `yaml:"readTimeoutMs"`
}

// VenueConfig selects and throttles the execution venue.
type VenueConfig struct {
	// Mode is "paper" or "live".
	Mode        string  `yaml:"mode"`
	Endpoint    string  `yaml:"endpoint"`
	SubmitRate  float64 `yaml:"submitRate"`
	SubmitBurst int     `yaml:"submitBurst"`
	// PaperDeposit funds the paper subaccount. Empty means 10000.
	PaperDeposit string `yaml:"paperDeposit"`
}

// StoreConfig enables Postgres persistence of risk parameters.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	DSN     string `yaml:"dsn"`
}

type MetricsConfig struct {
	ListenAddr string `yaml:"listenAddr"`
}

// AlertConfig tunes operator notifications. Alerts always reach the
// process log; a webhook is added when the URL is set.
type AlertConfig struct {
	WebhookURL      string `yaml:"webhookUrl"`
	ThrottleSeconds int    `yaml:"throttleSeconds"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	OutputFile string `yaml:"outputFile"`
	MaxSizeMB  int    `yaml:"maxSizeMb"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

// Load reads YAML config from path and validates it.
func Load(path string) (AppConfig, error) {
	var cfg AppConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadWithEnvOverrides loads config then overrides deploy-specific
// fields from env vars if present.
func LoadWithEnvOverrides(path string) (AppConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if v := os.Getenv("MAKER_FEED_URL"); v != "" {
		cfg.Feed.URL = v
	}
	if v := os.Getenv("MAKER_STORE_DSN"); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv("MAKER_ALERT_WEBHOOK"); v != "" {
		cfg.Alert.WebhookURL = v
	}
	if v := os.Getenv("MAKER_SUBACCOUNT_ID"); v != "" {
		cfg.Market.SubaccountID = v
	}
	if v := os.Getenv("MAKER_FEE_RECIPIENT"); v != "" {
		cfg.Market.FeeRecipient = v
	}
	return cfg, Validate(cfg)
}
