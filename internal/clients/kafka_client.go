package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/sentidesk/config"
	"github.com/spacesedan/sentidesk/internal/models"
)

// KafkaPublisher sends escalation events to the human support queue.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
	done     chan struct{}
}

func NewKafkaPublisher(cfg config.KafkaConfig) (*KafkaPublisher, error) {
	slog.Info("[KafkaClient] Connecting to Kafka", slog.String("broker", cfg.Broker))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":   cfg.Broker,
		"security.protocol":   "PLAINTEXT",
		"api.version.request": "true",
		"enable.idempotence":  true,
		"acks":                "all",
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	kp := &KafkaPublisher{producer: p, topic: cfg.EscalationTopic, done: make(chan struct{})}
	go kp.watchDeliveries()

	slog.Info("[KafkaClient] Kafka Producer initialized", slog.String("topic", kp.topic))
	return kp, nil
}

func (kp *KafkaPublisher) watchDeliveries() {
	defer close(kp.done)
	for e := range kp.producer.Events() {
		m, ok := e.(*kafka.Message)
		if !ok {
			continue
		}
		if m.TopicPartition.Error != nil {
			slog.Error("[KafkaClient] Escalation delivery failed",
				slog.String("key", string(m.Key)),
				slog.String("error", m.TopicPartition.Error.Error()))
		}
	}
}

// PublishEscalation implements support.Publisher. Events are keyed by session
// so one conversation's escalations stay ordered.
func (kp *KafkaPublisher) PublishEscalation(_ context.Context, event models.EscalationEvent) error {
	msg, err := EscalationMessage(kp.topic, event)
	if err != nil {
		return err
	}

	for i := 0; i < 3; i++ {
		err = kp.producer.Produce(msg, nil)
		if err == nil {
			break
		}
		slog.Warn("[KafkaClient] Failed to produce message, retrying...",
			slog.Int("attempt", i+1))
	}
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to produce escalation: %w", err)
	}

	slog.Info("[KafkaClient] Published escalation",
		slog.String("topic", kp.topic),
		slog.String("session_id", event.SessionID))
	return nil
}

func EscalationMessage(topic string, event models.EscalationEvent) (*kafka.Message, error) {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal escalation: %w", err)
	}

	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.SessionID),
		Value:          jsonData,
	}, nil
}

func (kp *KafkaPublisher) Close() {
	slog.Info("[KafkaClient] Flushing Kafka producer before shutdown...")
	if remaining := kp.producer.Flush(5000); remaining > 0 {
		slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	kp.producer.Close()
	<-kp.done
	slog.Info("[KafkaClient] Kafka producer shut down")
}
