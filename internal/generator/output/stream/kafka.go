package stream

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"

	"github.com/genxdata/genxdata/internal/generator/frame"
	"github.com/genxdata/genxdata/internal/generator/models"
	"github.com/genxdata/genxdata/internal/generator/output"
)

// KafkaWriter type publishes batches to a Kafka topic, keyed by batch
// index so replays stay ordered per partition.
type KafkaWriter struct {
	cfg    *models.KafkaConfig
	writer *kafka.Writer

	summary output.Summary
}

var _ output.Writer = (*KafkaWriter)(nil)

func NewKafkaWriter(cfg *models.KafkaConfig) (*KafkaWriter, error) {
	if cfg == nil {
		return nil, errors.New("kafka config is required")
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Topic:    cfg.Topic,
		Balancer: &kafka.Hash{},
	}

	return &KafkaWriter{cfg: cfg, writer: writer, summary: output.Summary{Type: "kafka"}}, nil
}

func (w *KafkaWriter) Write(f *frame.Frame, meta *output.BatchMeta) (*output.WriteResult, error) {
	body, err := marshalEnvelope(f, meta)
	if err != nil {
		return nil, err
	}

	key := []byte(w.cfg.ClientID)
	if meta != nil {
		key = []byte(strconv.Itoa(meta.BatchIndex))
	}

	err = w.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   key,
		Value: body,
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to publish batch to topic %q", w.cfg.Topic)
	}

	res := &output.WriteResult{Rows: f.Len(), Destination: w.cfg.Topic}
	w.summary.Add(res)

	return res, nil
}

func (w *KafkaWriter) Finalize() (*output.Summary, error) {
	if err := w.writer.Close(); err != nil {
		return nil, errors.New(err.Error())
	}

	return &w.summary, nil
}
