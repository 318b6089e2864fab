package service

import (
	"context"
	"encoding/json"

	"store-assistant-be/internal/constant"
	"store-assistant-be/internal/dto"
	"store-assistant-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService records order lifecycle events to the audit log.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewConsumerService(pubSub *gochannel.GoChannel, logger logger.ILogger) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: constant.OrderCancelledTopic,
		logger:    logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.OrderCancelledMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal order event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads must not requeue forever
		return
	}

	cs.logger.Info("audit", "order cancelled", map[string]interface{}{
		"order_id":       payload.OrderID,
		"customer_email": payload.CustomerEmail,
		"occurred_at":    payload.OccurredAt,
	})
	msg.Ack()
}
