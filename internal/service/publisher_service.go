package service

import (
	"context"
	"encoding/json"
	"time"

	"store-assistant-be/internal/constant"
	"store-assistant-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	PublishOrderCancelled(ctx context.Context, email, orderID string) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: constant.OrderCancelledTopic,
		pubSub:    pubSub,
	}
}

func (ps *publisherService) PublishOrderCancelled(ctx context.Context, email, orderID string) error {
	payload, err := json.Marshal(dto.OrderCancelledMessage{
		OrderID:       orderID,
		CustomerEmail: email,
		OccurredAt:    time.Now(),
	})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	return ps.pubSub.Publish(ps.topicName, msg)
}
