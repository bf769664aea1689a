package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/hetulpatel/mydata/internal/report"
)

// MessageWriter is the subset of *kafka.Writer used here.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// ReportMessage encodes a generation report keyed by its run id.
func ReportMessage(r *report.Report) (kafka.Message, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal report %s: %w", r.RunID, err)
	}
	return kafka.Message{Key: []byte(r.RunID), Value: payload}, nil
}

// PublishReport writes r to the topic. A nil writer or report is a no-op.
func PublishReport(ctx context.Context, writer MessageWriter, r *report.Report) error {
	if writer == nil || r == nil {
		return nil
	}
	msg, err := ReportMessage(r)
	if err != nil {
		return err
	}
	return writer.WriteMessages(ctx, msg)
}
