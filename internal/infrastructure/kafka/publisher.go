// Package kafka publica los eventos de pago confirmados en un tópico de Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/Tienda-api/internal/application/payment"
)

var _ payment.EventPublisher = (*Publisher)(nil)

const publishTimeout = 5 * time.Second

// Publisher escribe CompletedEvent como JSON con key = EventID.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher crea el writer para topic sobre brokers.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}}
}

// PublishPaymentCompleted escribe el evento de forma síncrona.
func (p *Publisher) PublishPaymentCompleted(ctx context.Context, ev payment.CompletedEvent) error {
	msg, err := message(ev)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: publicar %s: %w", ev.EventID, err)
	}
	return nil
}

// Close cierra el writer y vacía los mensajes pendientes.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func message(ev payment.CompletedEvent) (kafka.Message, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka: serializar evento: %w", err)
	}
	return kafka.Message{Key: []byte(ev.EventID), Value: data, Time: ev.OccurredAt}, nil
}
