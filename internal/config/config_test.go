package config

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hetulpatel/mydata/internal/logging"
)

var envKeys = []string{
	"MYDATA_PATH", "MYDATA_DRIVER", "MYDATA_SCHEMA", "MYDATA_TABLE", "MYDATA_POINTS",
	"MYDATA_SAMPLE_LIMIT", "MYDATA_SEED", "KAFKA_BROKERS", "MYDATA_KAFKA_TOPIC",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "MYDATA_REPORT_TTL_HOURS", "MYDATA_REPORT_PREFIX",
}

func clearEnv(t *testing.T) {
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	cfg := FromEnv()
	require.Equal(t, "data/mydata.db", cfg.Path)
	require.Equal(t, "duckdb", cfg.Driver)
	require.Equal(t, "main", cfg.Schema)
	require.Equal(t, "data", cfg.Table)
	require.Equal(t, 20, cfg.Points)
	require.Equal(t, 10, cfg.SampleLimit)
	require.False(t, cfg.Seeded)
	require.False(t, cfg.KafkaEnabled())
	require.False(t, cfg.RedisEnabled())
	require.Equal(t, 240*time.Hour, cfg.ReportTTL)
}

func TestOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MYDATA_DRIVER", "SQLite")
	t.Setenv("MYDATA_SEED", "99")
	t.Setenv("MYDATA_POINTS", "-3")
	t.Setenv("KAFKA_BROKERS", " a:9092, ,b:9092")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("MYDATA_REPORT_TTL_HOURS", "2")

	cfg := FromEnv()
	require.Equal(t, "sqlite", cfg.Driver)
	require.True(t, cfg.Seeded)
	require.EqualValues(t, 99, cfg.Seed)
	require.Equal(t, DefaultPoints, cfg.Points)
	require.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	require.True(t, cfg.KafkaEnabled())
	require.True(t, cfg.RedisEnabled())
	require.Equal(t, 2*time.Hour, cfg.ReportTTL)
}

func TestInvalidSeedIsLogged(t *testing.T) {
	clearEnv(t)
	t.Setenv("MYDATA_SEED", "abc")

	var buf bytes.Buffer
	logging.SetOutput(&buf)
	t.Cleanup(func() { logging.SetOutput(os.Stderr) })

	require.False(t, FromEnv().Seeded)
	require.Contains(t, buf.String(), `ignoring MYDATA_SEED="abc"`)
}
