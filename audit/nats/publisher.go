package nats

import (
	"context"
	"encoding/json"
	"github.com/nats-io/go-nats-streaming"
	"github.com/osstotalsoft/asanarelay/audit"
	"github.com/osstotalsoft/asanarelay/log"
	"github.com/pkg/errors"
	"github.com/satori/go.uuid"
	"go.uber.org/zap"
)

//DefaultTopic is used when no topic is configured
const DefaultTopic = "asanarelay.requests"

type Config struct {
	NatsURL  string `mapstructure:"nats_url"`
	Cluster  string `mapstructure:"cluster"`
	ClientID string `mapstructure:"client_id"`
	Topic    string `mapstructure:"topic"`
}

//Enabled reports whether an audit sink is configured
func (c Config) Enabled() bool {
	return c.NatsURL != ""
}

//conn is the subset of stan.Conn used by the publisher
type conn interface {
	PublishAsync(subject string, data []byte, ah stan.AckHandler) (string, error)
	Close() error
}

type Publisher struct {
	conn          conn
	topic         string
	loggerFactory log.Factory
}

//NewPublisher connects to the nats streaming cluster.
//The client id gets a random suffix so replicas do not collide.
func NewPublisher(config Config, loggerFactory log.Factory) (*Publisher, error) {
	nc, err := stan.Connect(config.Cluster, config.ClientID+"-"+uuid.NewV4().String(), stan.NatsURL(config.NatsURL))
	if err != nil {
		return nil, errors.Wrapf(err, "connect to nats streaming at %s", config.NatsURL)
	}
	return newPublisher(nc, config.Topic, loggerFactory), nil
}

func newPublisher(c conn, topic string, loggerFactory log.Factory) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{conn: c, topic: topic, loggerFactory: loggerFactory}
}

//Publish sends the event without waiting for the ack; ack failures are only logged
func (p *Publisher) Publish(ctx context.Context, event audit.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal audit event")
	}

	logger := p.loggerFactory(ctx)
	_, err = p.conn.PublishAsync(p.topic, data, func(guid string, ackErr error) {
		if ackErr != nil {
			logger.Warn("audit event not acknowledged", zap.String("guid", guid), zap.Error(ackErr))
		}
	})
	if err != nil {
		return errors.Wrapf(err, "publish audit event to %s", p.topic)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.conn.Close()
}
