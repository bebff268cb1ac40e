package kafka

import (
	"Vitrine/internal/api/config"
	"Vitrine/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	interactionConsumer sarama.ConsumerGroup
	interactionHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	eventSvc service.EventService,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	interactionConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaInteractionConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	interactionHandler := NewInteractionHandler(eventSvc)

	return &ConsumerManager{
		interactionConsumer: interactionConsumer,
		interactionHandler:  interactionHandler,
	}, nil
}

// Start 启动所有消费者
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaInteractionConsumer.Topic
		log.Info("Interaction consumer started", "topic", topic)
		for {
			if err := m.interactionConsumer.Consume(ctx, []string{topic}, m.interactionHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.interactionConsumer.Close(); err != nil {
		log.Error("Failed to close interaction consumer", "err", err)
	}

	return nil
}
