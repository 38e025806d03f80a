// Package stream implements broker-backed sinks that deliver generated
// batches as JSON messages.
package stream

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/genxdata/genxdata/internal/generator/frame"
	"github.com/genxdata/genxdata/internal/generator/models"
	"github.com/genxdata/genxdata/internal/generator/output"
)

// envelope is the message body published per batch.
type envelope struct {
	Meta *output.BatchMeta `json:"meta"`
	Rows []map[string]any  `json:"rows"`
}

func marshalEnvelope(f *frame.Frame, meta *output.BatchMeta) ([]byte, error) {
	rows := make([]map[string]any, f.Len())
	for i := 0; i < f.Len(); i++ {
		rows[i] = f.Row(i)
	}

	body, err := json.Marshal(envelope{Meta: meta, Rows: rows})
	if err != nil {
		return nil, errors.New(err.Error())
	}

	return body, nil
}

// NewWriter builds the broker sink matching the stream config. The
// config layer guarantees exactly one broker section is set.
func NewWriter(cfg *models.StreamConfig) (output.Writer, error) {
	switch {
	case cfg.AMQP != nil:
		return NewAMQPWriter(cfg.AMQP)
	case cfg.Kafka != nil:
		return NewKafkaWriter(cfg.Kafka)
	default:
		return nil, errors.New("stream config has no broker section")
	}
}
