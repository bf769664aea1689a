package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hetulpatel/mydata/internal/logging"
)

const (
	DefaultPath        = "data/mydata.db"
	DefaultDriver      = "duckdb"
	DefaultTable       = "data"
	DefaultSchema      = "main"
	DefaultPoints      = 20
	DefaultSampleLimit = 10
	DefaultKafkaTopic  = "mydata.generations"
	DefaultReportTTL   = 240 * time.Hour
	DefaultReportKey   = "mydata_report"
)

// Config is the environment-derived settings shared by the commands. With no
// variables set it reproduces the hardcoded defaults.
type Config struct {
	Path        string
	Driver      string
	Schema      string
	Table       string
	Points      int
	SampleLimit int
	Seed        int64
	Seeded      bool

	KafkaBrokers []string
	KafkaTopic   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	ReportTTL     time.Duration
	ReportPrefix  string
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() Config {
	cfg := Config{
		Path:          envString("MYDATA_PATH", DefaultPath),
		Driver:        strings.ToLower(envString("MYDATA_DRIVER", DefaultDriver)),
		Schema:        envString("MYDATA_SCHEMA", DefaultSchema),
		Table:         envString("MYDATA_TABLE", DefaultTable),
		Points:        envInt("MYDATA_POINTS", DefaultPoints),
		SampleLimit:   envInt("MYDATA_SAMPLE_LIMIT", DefaultSampleLimit),
		KafkaBrokers:  splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:    envString("MYDATA_KAFKA_TOPIC", DefaultKafkaTopic),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),
		ReportTTL:     time.Duration(envInt("MYDATA_REPORT_TTL_HOURS", int(DefaultReportTTL/time.Hour))) * time.Hour,
		ReportPrefix:  envString("MYDATA_REPORT_PREFIX", DefaultReportKey),
	}
	if raw := os.Getenv("MYDATA_SEED"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			logging.Errorf("[config] ignoring MYDATA_SEED=%q, run is unseeded: %v", raw, err)
		} else {
			cfg.Seed, cfg.Seeded = seed, true
		}
	}
	if cfg.Points <= 0 {
		cfg.Points = DefaultPoints
	}
	if cfg.SampleLimit <= 0 {
		cfg.SampleLimit = DefaultSampleLimit
	}
	return cfg
}

// KafkaEnabled reports whether generation reports should be published.
func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// RedisEnabled reports whether the report cache is configured.
func (c Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func envString(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func envInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
