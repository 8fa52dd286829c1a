package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "UTC"

	configPathEnv     = "SEO_SCORER_CONFIG"
	logLevelEnv       = "LOG_LEVEL"
	databaseDSNEnv    = "DATABASE_DSN"
	redisAddrEnv      = "REDIS_ADDR"
	redisPasswordEnv  = "REDIS_PASSWORD"
	internalDomainEnv = "SEO_INTERNAL_DOMAIN"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Database DatabaseConfig `yaml:"database"`
	Events   EventsConfig   `yaml:"events"`
	Retrain  RetrainConfig  `yaml:"retrain"`
	Analyzer AnalyzerConfig `yaml:"analyzer"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DatabaseConfig describes Postgres connection details.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// EventsConfig wires the Redis event channel.
type EventsConfig struct {
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	ChannelPrefix string `yaml:"channelPrefix"`
}

// RetrainConfig defines when weight relearning runs.
type RetrainConfig struct {
	CronExpression   string         `yaml:"cronExpression"`
	Timezone         string         `yaml:"timezone"`
	RankingThreshold float64        `yaml:"rankingThreshold"`
	location         *time.Location `yaml:"-"`
}

// Location resolves the retrain timezone string to a time.Location.
func (r RetrainConfig) Location() *time.Location {
	if r.location != nil {
		return r.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// AnalyzerConfig tunes link classification for the feature extractor.
type AnalyzerConfig struct {
	InternalDomain string `yaml:"internalDomain"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(redisAddrEnv); v != "" {
		c.Events.RedisAddr = v
	}

	if v := os.Getenv(redisPasswordEnv); v != "" {
		c.Events.RedisPassword = v
	}

	if v := os.Getenv(internalDomainEnv); v != "" {
		c.Analyzer.InternalDomain = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Retrain.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Retrain.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Events.RedisAddr != "" {
		base.Events.RedisAddr = override.Events.RedisAddr
	}
	if override.Events.RedisPassword != "" {
		base.Events.RedisPassword = override.Events.RedisPassword
	}
	if override.Events.ChannelPrefix != "" {
		base.Events.ChannelPrefix = override.Events.ChannelPrefix
	}

	if override.Retrain.CronExpression != "" {
		base.Retrain.CronExpression = override.Retrain.CronExpression
	}
	if override.Retrain.Timezone != "" {
		base.Retrain.Timezone = override.Retrain.Timezone
	}
	if override.Retrain.RankingThreshold > 0 {
		base.Retrain.RankingThreshold = override.Retrain.RankingThreshold
	}

	if override.Analyzer.InternalDomain != "" {
		base.Analyzer.InternalDomain = override.Analyzer.InternalDomain
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging:  LoggingConfig{Level: "info"},
		Database: DatabaseConfig{DSN: ""},
		Events: EventsConfig{
			RedisAddr:     "localhost:6379",
			ChannelPrefix: "",
		},
		Retrain: RetrainConfig{
			CronExpression:   "0 4 * * *",
			Timezone:         defaultTimezone,
			RankingThreshold: 10,
			location:         tz,
		},
		Analyzer: AnalyzerConfig{InternalDomain: ""},
	}
}
