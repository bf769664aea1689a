// Package sinks wires the optional report destinations (Kafka, Redis) shared
// by the generate, inspect and pipeline commands.
package sinks

import (
	"context"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/hetulpatel/mydata/internal/cache"
	"github.com/hetulpatel/mydata/internal/config"
	"github.com/hetulpatel/mydata/internal/generator"
	"github.com/hetulpatel/mydata/internal/inspector"
	"github.com/hetulpatel/mydata/internal/kafka"
	"github.com/hetulpatel/mydata/internal/logging"
)

const DefaultBrokerWait = 10 * time.Second

type Sinks struct {
	writer  *kafkago.Writer
	reports cache.ReportCache
}

// Open connects the sinks enabled in cfg. An unreachable broker disables
// publication rather than failing the command.
func Open(ctx context.Context, cfg config.Config, brokerWait time.Duration) (*Sinks, error) {
	s := &Sinks{}
	if cfg.KafkaEnabled() {
		s.writer = openWriter(ctx, cfg, brokerWait)
	}
	if cfg.RedisEnabled() {
		reports, err := cache.NewRedisReportCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.ReportTTL, cfg.ReportPrefix)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.reports = reports
	}
	return s, nil
}

func openWriter(ctx context.Context, cfg config.Config, wait time.Duration) *kafkago.Writer {
	if wait <= 0 {
		wait = DefaultBrokerWait
	}
	waitCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	if err := kafka.WaitForBroker(waitCtx, cfg.KafkaBrokers); err != nil {
		logging.Errorf("[sinks] wait for broker: %v; report publication disabled", err)
		return nil
	}
	if err := kafka.EnsureTopic(waitCtx, cfg.KafkaBrokers, cfg.KafkaTopic); err != nil {
		logging.Errorf("[sinks] ensure topic %s: %v", cfg.KafkaTopic, err)
	}
	return kafka.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
}

// Publishing reports whether generation reports will be sent to Kafka.
func (s *Sinks) Publishing() bool {
	return s != nil && s.writer != nil
}

// Caching reports whether the Redis report cache is configured.
func (s *Sinks) Caching() bool {
	return s != nil && s.reports != nil
}

func (s *Sinks) GeneratorOptions() []generator.Option {
	var opts []generator.Option
	if s.Publishing() {
		opts = append(opts, generator.WithPublisher(s.writer))
	}
	if s.Caching() {
		opts = append(opts, generator.WithReportCache(s.reports))
	}
	return opts
}

func (s *Sinks) InspectorOptions() []inspector.Option {
	var opts []inspector.Option
	if s.Caching() {
		opts = append(opts, inspector.WithReportCache(s.reports))
	}
	return opts
}

func (s *Sinks) Close() {
	if s == nil {
		return
	}
	if s.writer != nil {
		if err := s.writer.Close(); err != nil {
			logging.Errorf("[sinks] close kafka writer: %v", err)
		}
	}
	if s.reports != nil {
		if err := s.reports.Close(); err != nil {
			logging.Errorf("[sinks] close report cache: %v", err)
		}
	}
}
