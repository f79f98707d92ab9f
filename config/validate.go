package config

// ErrInvalid reports a config field that failed validation.
type ErrInvalid string

func (e ErrInvalid) Error() string { return string(e) }

// Validate ensures required fields are present and every numeric
// section converts cleanly. A config that passed Validate will not
// fail again at wiring time.
func Validate(cfg AppConfig) error {
	if cfg.Env == "" {
		return ErrInvalid("env is required")
	}
	if cfg.Market.ID == "" {
		return ErrInvalid("market.id is required")
	}
	if cfg.Market.SubaccountID == "" {
		return ErrInvalid("market.subaccountId is required")
	}
	if cfg.Market.FeeRecipient == "" {
		return ErrInvalid("market.feeRecipient is required")
	}
	switch cfg.Venue.Mode {
	case "paper":
	case "live":
		if cfg.Venue.Endpoint == "" {
			return ErrInvalid("venue.endpoint is required in live mode")
		}
	default:
		return ErrInvalid("venue.mode must be paper or live")
	}
	if cfg.Venue.SubmitRate < 0 || cfg.Venue.SubmitBurst < 0 {
		return ErrInvalid("venue.submitRate/submitBurst must be >= 0")
	}
	if _, err := parseOptionalDecimal("venue.paperDeposit", cfg.Venue.PaperDeposit); err != nil {
		return err
	}
	if cfg.Feed.URL == "" && cfg.Venue.Mode == "live" {
		return ErrInvalid("feed.url is required in live mode")
	}
	if cfg.Store.Enabled && cfg.Store.DSN == "" {
		return ErrInvalid("store.dsn is required when store.enabled")
	}
	if _, err := cfg.RiskParams(); err != nil {
		return err
	}
	if _, err := cfg.Constraints(); err != nil {
		return err
	}
	return nil
}
