package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration: the selected strategy and
// the I/O collaborators (exchange endpoint, email transport, database,
// metrics listener).
type Config struct {
	Strategy   string `yaml:"strategy"`
	Instrument string `yaml:"instrument"`
	Email      struct {
		SMTPServer string `yaml:"smtp_server"`
		SMTPPort   int    `yaml:"smtp_port"`
		Sender     string `yaml:"sender"`
		Password   string `yaml:"password"`
		Receiver   string `yaml:"receiver"`
	} `yaml:"email"`
	DataSource struct {
		BaseURL    string `yaml:"base_url"`
		KlineLimit int    `yaml:"kline_limit"`
	} `yaml:"data_source"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Metrics struct {
		Listen string `yaml:"listen"` // empty disables the /metrics listener
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TRADING_STRATEGY"); v != "" {
		cfg.Strategy = v
	}
	if v := os.Getenv("INST_ID"); v != "" {
		cfg.Instrument = v
	}
	if v := os.Getenv("SMTP_SERVER"); v != "" {
		cfg.Email.SMTPServer = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Email.SMTPPort = port
		}
	}
	if v := os.Getenv("SENDER_EMAIL"); v != "" {
		cfg.Email.Sender = v
	}
	if v := os.Getenv("SENDER_PASSWORD"); v != "" {
		cfg.Email.Password = v
	}
	if v := os.Getenv("RECEIVER_EMAIL"); v != "" {
		cfg.Email.Receiver = v
	}
	if v := os.Getenv("OKX_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("METRICS_LISTEN"); v != "" {
		cfg.Metrics.Listen = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Instrument == "" {
		cfg.Instrument = "ETH-USDT-SWAP"
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.DataSource.KlineLimit == 0 {
		cfg.DataSource.KlineLimit = 100
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/tradepulse.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Strategy == "" {
		return fmt.Errorf("strategy is required (set TRADING_STRATEGY)")
	}
	if c.Instrument == "" {
		return fmt.Errorf("instrument is required")
	}
	if c.Email.Sender != "" {
		if c.Email.SMTPServer == "" {
			return fmt.Errorf("email.smtp_server is required when email.sender is set")
		}
		if c.Email.Receiver == "" {
			return fmt.Errorf("email.receiver is required when email.sender is set")
		}
	}
	if c.DataSource.KlineLimit <= 0 {
		return fmt.Errorf("data_source.kline_limit must be positive")
	}
	return nil
}
