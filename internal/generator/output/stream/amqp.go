package stream

import (
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/genxdata/genxdata/internal/generator/frame"
	"github.com/genxdata/genxdata/internal/generator/models"
	"github.com/genxdata/genxdata/internal/generator/output"
)

// AMQPWriter type publishes batches to a RabbitMQ queue. The connection
// is opened lazily on the first write so validation-only runs never
// dial the broker.
type AMQPWriter struct {
	cfg *models.AMQPConfig

	conn    *amqp.Connection
	channel *amqp.Channel
	summary output.Summary
}

var _ output.Writer = (*AMQPWriter)(nil)

func NewAMQPWriter(cfg *models.AMQPConfig) (*AMQPWriter, error) {
	if cfg == nil {
		return nil, errors.New("amqp config is required")
	}

	return &AMQPWriter{cfg: cfg, summary: output.Summary{Type: "amqp"}}, nil
}

func (w *AMQPWriter) connect() error {
	conn, err := amqp.Dial(w.cfg.URL)
	if err != nil {
		return errors.WithMessagef(err, "failed to connect to amqp broker %q", w.cfg.URL)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()

		return errors.WithMessage(err, "failed to open amqp channel")
	}

	_, err = channel.QueueDeclare(w.cfg.Queue, w.cfg.Durable, false, false, false, nil)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()

		return errors.WithMessagef(err, "failed to declare queue %q", w.cfg.Queue)
	}

	w.conn = conn
	w.channel = channel

	return nil
}

func (w *AMQPWriter) Write(f *frame.Frame, meta *output.BatchMeta) (*output.WriteResult, error) {
	if w.channel == nil {
		if err := w.connect(); err != nil {
			return nil, err
		}
	}

	body, err := marshalEnvelope(f, meta)
	if err != nil {
		return nil, err
	}

	err = w.channel.Publish(w.cfg.Exchange, w.cfg.RoutingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to publish batch to queue %q", w.cfg.Queue)
	}

	res := &output.WriteResult{Rows: f.Len(), Destination: w.cfg.Queue}
	w.summary.Add(res)

	return res, nil
}

func (w *AMQPWriter) Finalize() (*output.Summary, error) {
	if w.channel != nil {
		if err := w.channel.Close(); err != nil {
			return nil, errors.New(err.Error())
		}
	}

	if w.conn != nil {
		if err := w.conn.Close(); err != nil {
			return nil, errors.New(err.Error())
		}
	}

	return &w.summary, nil
}
