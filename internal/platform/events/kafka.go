package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"villagevisits/internal/platform/logger"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Config configures the Kafka publisher
type Config struct {
	Brokers  []string
	Topic    string
	ClientID string
	Linger   time.Duration
}

// Kafka produces events with franz-go
type Kafka struct {
	cl    *kgo.Client
	topic string
	log   logger.Logger
	obs   Observer
}

// NewKafka builds a producer client; it connects lazily on first produce
func NewKafka(cfg Config, log logger.Logger, obs Observer) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("events: no brokers configured")
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, errors.New("events: topic is required")
	}
	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.RecordRetries(5),
		kgo.ProduceRequestTimeout(10 * time.Second),
	}
	if cfg.ClientID != "" {
		opts = append(opts, kgo.ClientID(cfg.ClientID))
	}
	if cfg.Linger > 0 {
		opts = append(opts, kgo.ProducerLinger(cfg.Linger))
	}
	cl, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, err
	}
	return &Kafka{cl: cl, topic: cfg.Topic, log: log, obs: obs}, nil
}

// record builds the kafka record for e
func record(topic string, e Event) (*kgo.Record, error) {
	b, err := e.Encode()
	if err != nil {
		return nil, err
	}
	r := &kgo.Record{
		Topic: topic,
		Value: b,
		Headers: []kgo.RecordHeader{
			{Key: "type", Value: []byte(e.Type)},
		},
	}
	if e.VillageID != "" {
		r.Key = []byte(e.VillageID)
	}
	return r, nil
}

// Publish implements Publisher
// the request context only contributes its values, cancellation is dropped
func (k *Kafka) Publish(ctx context.Context, e Event) {
	r, err := record(k.topic, e)
	if err != nil {
		k.done(e, err)
		return
	}
	k.cl.Produce(context.WithoutCancel(ctx), r, func(_ *kgo.Record, err error) {
		k.done(e, err)
	})
}

func (k *Kafka) done(e Event, err error) {
	if k.obs != nil {
		k.obs.IncEvent(string(e.Type), err == nil)
	}
	if err != nil {
		k.log.Warn().Err(err).Str("event", string(e.Type)).Str("event_id", e.ID).Msg("event publish failed")
		return
	}
	k.log.Debug().Str("event", string(e.Type)).Str("event_id", e.ID).Msg("event published")
}

// Close flushes buffered records then closes the client
func (k *Kafka) Close(ctx context.Context) error {
	err := k.cl.Flush(ctx)
	k.cl.Close()
	return err
}
