package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher hands confirmation events to the broker. Delivery is
// best-effort: a failed publish is logged and reported, and the caller is
// free to ignore it — a booking never fails because its confirmation could
// not be sent.
type Publisher interface {
	PublishReservationConfirmed(ctx context.Context, event ReservationConfirmedEvent) error
}

type amqpPublisher struct {
	url string
	log *zap.Logger
}

func NewAMQPPublisher(url string, log *zap.Logger) Publisher {
	return &amqpPublisher{
		url: url,
		log: log.With(zap.String("component", "notify-publisher")),
	}
}

func (p *amqpPublisher) PublishReservationConfirmed(ctx context.Context, event ReservationConfirmedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Error("Failed to dial broker", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Error("Failed to open channel", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive
	// broker restarts.
	if _, err := ch.QueueDeclare(
		reservationQueueName, // name
		true,                 // durable
		false,                // autoDelete
		false,                // exclusive
		false,                // noWait
		nil,                  // args
	); err != nil {
		p.log.Error("Failed to declare queue", zap.Error(err))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("Failed to marshal event", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                   // default exchange
		reservationQueueName, // routing key = queue name
		false,                // mandatory
		false,                // immediate
		pub,
	); err != nil {
		p.log.Error("Failed to publish event", zap.Error(err))
		return err
	}

	p.log.Info("Reservation confirmation published",
		zap.String("confirmation_code", event.ConfirmationCode),
		zap.Int("seat_count", len(event.Seats)),
	)
	return nil
}

// NopPublisher drops every event; used when AMQP is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishReservationConfirmed(context.Context, ReservationConfirmedEvent) error {
	return nil
}
