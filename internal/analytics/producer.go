package analytics

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer publishes activity events through a buffered inbox so emitting
// never blocks the checkout flow. A nil *Producer is a valid no-op sink,
// used when no brokers are configured.
type Producer struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}
}

func NewProducer(brokers []string, buf int) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        TopicActivity,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
	}
}

func (p *Producer) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				close(p.inbox)
				for m := range p.inbox {
					_ = p.w.WriteMessages(context.Background(), m)
				}
				_ = p.w.Close()
				close(p.closeCh)
				return
			case m, ok := <-p.inbox:
				if !ok {
					_ = p.w.Close()
					close(p.closeCh)
					return
				}
				_ = p.w.WriteMessages(context.Background(), m)
			}
		}
	}()
}

// Emit wraps the payload in a versioned envelope and queues it.
func (p *Producer) Emit(eventType, producer, partitionID string, payload any) {
	if p == nil {
		return
	}
	ev := NewEnvelope(eventType, producer, payload)
	p.inbox <- kafka.Message{
		Key:   PartitionKey(partitionID),
		Value: MustMarshal(ev),
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(eventType)},
			{Key: "x-event-version", Value: []byte("1")},
		},
	}
}

// Close the inbox so the loop flushes what is left and exits.
func (p *Producer) Close() {
	if p == nil {
		return
	}
	close(p.inbox)
}

func (p *Producer) WaitClosed() {
	if p == nil {
		return
	}
	<-p.closeCh
}
