package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"foodhub/cart-svc/internal/domain"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

var _ MessageReader = (*kafka.Reader)(nil)

// RedemptionConsumer counts coupon redemptions from order_placed events.
type RedemptionConsumer struct {
	Reader   MessageReader
	Recorder RedemptionRecorder
	Log      logrus.FieldLogger
}

func NewRedemptionConsumer(reader MessageReader, recorder RedemptionRecorder, log logrus.FieldLogger) *RedemptionConsumer {
	return &RedemptionConsumer{
		Reader:   reader,
		Recorder: recorder,
		Log:      log,
	}
}

// Start reads until ctx is cancelled or the reader is closed.
func (c *RedemptionConsumer) Start(ctx context.Context) {
	c.Log.Info("starting redemption consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				c.Log.Info("redemption consumer stopped")
				return
			}
			c.Log.WithError(err).Error("read message failed")
			continue
		}

		var event domain.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.Log.WithError(err).WithField("offset", message.Offset).Error("decode event failed")
			continue
		}
		c.Process(ctx, event)
	}
}

func (c *RedemptionConsumer) Process(ctx context.Context, event domain.Event) {
	if event.Type != domain.EventOrderPlaced || event.CouponCode == "" {
		return
	}
	entry := c.Log.WithFields(logrus.Fields{
		"order_id":    event.OrderID,
		"coupon_code": event.CouponCode,
	})

	if err := c.Recorder.RecordRedemption(ctx, event.CouponCode); err != nil {
		entry.WithError(err).Error("record redemption failed")
		return
	}
	entry.Info("redemption recorded")
}

// DirectPublisher hands events to a consumer in the same process. It stands
// in for Kafka when no broker is configured.
type DirectPublisher struct {
	Consumer *RedemptionConsumer
}

var _ EventPublisher = DirectPublisher{}

func (p DirectPublisher) Publish(ctx context.Context, event domain.Event) error {
	p.Consumer.Process(ctx, event)
	return nil
}
