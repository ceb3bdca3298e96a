package events

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"
)

// Publisher fans store mutations out to a topic exchange so other services
// can react to course and quiz activity. A nil *Publisher is valid and drops
// every event, for deployments without a broker.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *log.Logger
}

func NewPublisher(amqpURL, exchange string, logger *log.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, channel: ch, exchange: exchange, logger: logger}, nil
}

// Publish is best-effort: failures are logged and never surfaced to the
// caller, so a broker outage cannot fail a store operation.
func (p *Publisher) Publish(eventType string, payload interface{}) {
	if p == nil {
		return
	}

	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Printf("[EVENT ERROR] marshal %s: %v", eventType, err)
		return
	}

	err = p.channel.Publish(
		p.exchange,
		eventType,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		p.logger.Printf("[EVENT ERROR] publish %s: %v", eventType, err)
		return
	}
	p.logger.Printf("[EVENT] %s", eventType)
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.channel.Close()
	p.conn.Close()
}
