package kafka

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/newsfx/trader/feed"
	"github.com/newsfx/trader/logger"
)

// Consumer reads news messages from a Kafka topic via a consumer group and
// hands them to a feed.Handler. Messages that fail to decode are marked and
// skipped; handler errors are logged but do not stop consumption.
type Consumer struct {
	client sarama.ConsumerGroup
	topic  string
	log    logger.Logger
	ready  chan bool
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewConsumer(brokers []string, groupID, topic string, log logger.Logger) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetNewest
	config.Version = sarama.V2_8_0_0

	client, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		client: client,
		topic:  topic,
		log:    log,
		ready:  make(chan bool),
	}, nil
}

// Run consumes until ctx is canceled. It blocks until the consumer group
// session is established, then returns; consumption continues in the
// background until Close.
func (c *Consumer) Run(ctx context.Context, h feed.Handler) error {
	ctx, c.cancel = context.WithCancel(ctx)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			handler := &groupHandler{consumer: c, handle: h, ready: c.ready}

			if err := c.client.Consume(ctx, []string{c.topic}, handler); err != nil {
				c.log.Error("kafka consume", zap.Error(err))
			}

			if ctx.Err() != nil {
				return
			}

			c.ready = make(chan bool)
		}
	}()

	<-c.ready
	c.log.Info("kafka consumer ready", zap.String("topic", c.topic))
	return nil
}

// Close stops the consumer gracefully.
func (c *Consumer) Close() error {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	return c.client.Close()
}

type groupHandler struct {
	consumer *Consumer
	handle   feed.Handler
	ready    chan bool
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	close(h.ready)
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}

			var msg feed.Message
			if err := json.Unmarshal(message.Value, &msg); err != nil {
				h.consumer.log.Warn("unmarshal news message", zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			if err := h.handle(session.Context(), msg); err != nil {
				h.consumer.log.Error("handle news message",
					zap.String("key", msg.Key()), zap.Error(err))
			}

			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}
