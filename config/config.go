package config

import (
	// Local Packages
	errors "momo-ledger/errors"
)

var DefaultConfig = []byte(`
application: "momo-ledger"

logger:
  level: "debug"

is_prod_mode: false

mongo:
  uri: "mongodb://localhost:27017"
  database: "momoledger"

redis:
  uri: "localhost:6379"
  password: ""
  signal_channel: "tx:refresh"

kafka:
  brokers:
    - "localhost:9092"
  consume: true
  topic: "tx-changes"
  records_per_poll: 100
  consumer_name: "momo-ledger"

cache:
  general_cap: 50
  send_cap: 20
  airtime_cap: 10

sync:
  poll_interval: "30s"

session:
  user_id: ""
  authenticated: false
  admin: false

ledger:
  date_fallback_label: "Today"
`)

type Config struct {
	Application string  `koanf:"application"`
	Logger      Logger  `koanf:"logger"`
	IsProdMode  bool    `koanf:"is_prod_mode"`
	Mongo       Mongo   `koanf:"mongo"`
	Redis       Redis   `koanf:"redis"`
	Kafka       Kafka   `koanf:"kafka"`
	Cache       Cache   `koanf:"cache"`
	Sync        Sync    `koanf:"sync"`
	Session     Session `koanf:"session"`
	Ledger      Ledger  `koanf:"ledger"`
}

type Logger struct {
	Level string `koanf:"level"`
}

type Mongo struct {
	URI      string `koanf:"uri"`
	Database string `koanf:"database"`
}

type Redis struct {
	URI           string `koanf:"uri"`
	Password      string `koanf:"password"`
	SignalChannel string `koanf:"signal_channel"`
}

type Kafka struct {
	Brokers        []string `koanf:"brokers"`
	Consume        bool     `koanf:"consume"`
	Topic          string   `koanf:"topic"`
	RecordsPerPoll int      `koanf:"records_per_poll"`
	ConsumerName   string   `koanf:"consumer_name"`
}

type Cache struct {
	GeneralCap int `koanf:"general_cap"`
	SendCap    int `koanf:"send_cap"`
	AirtimeCap int `koanf:"airtime_cap"`
}

type Sync struct {
	PollInterval string `koanf:"poll_interval"`
}

type Session struct {
	UserID        string `koanf:"user_id"`
	Authenticated bool   `koanf:"authenticated"`
	Admin         bool   `koanf:"admin"`
}

type Ledger struct {
	DateFallbackLabel string `koanf:"date_fallback_label"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	ve := errors.ValidationErrs()

	if c.Application == "" {
		ve.Add("application", "cannot be empty")
	}
	if c.Logger.Level == "" {
		ve.Add("logger.level", "cannot be empty")
	}
	if c.Mongo.URI == "" {
		ve.Add("mongo.uri", "cannot be empty")
	}
	if c.Mongo.Database == "" {
		ve.Add("mongo.database", "cannot be empty")
	}
	if c.Redis.URI == "" {
		ve.Add("redis.uri", "cannot be empty")
	}
	if c.Redis.SignalChannel == "" {
		ve.Add("redis.signal_channel", "cannot be empty")
	}
	if c.Kafka.Consume && len(c.Kafka.Brokers) == 0 {
		ve.Add("kafka.brokers", "cannot be empty")
	}
	if c.Cache.GeneralCap <= 0 {
		ve.Add("cache.general_cap", "must be positive")
	}
	if c.Cache.SendCap <= 0 {
		ve.Add("cache.send_cap", "must be positive")
	}
	if c.Cache.AirtimeCap <= 0 {
		ve.Add("cache.airtime_cap", "must be positive")
	}
	if c.Sync.PollInterval == "" {
		ve.Add("sync.poll_interval", "cannot be empty")
	}
	if c.Session.Authenticated && c.Session.UserID == "" {
		ve.Add("session.user_id", "cannot be empty for an authenticated session")
	}

	return ve.Err()
}
