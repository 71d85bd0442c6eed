package notify

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// StartReservationConsumer connects to the broker, declares the durable
// confirmation queue and consumes it. Each event is appended to a ticket log
// and rendered as a QR PNG of its confirmation code under outDir. The
// function runs a reconnect loop with exponential backoff and never returns;
// run it in its own goroutine.
func StartReservationConsumer(url, outDir string, log *zap.Logger) {
	log = log.With(zap.String("component", "notify-consumer"))

	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Error("Failed to create ticket output dir", zap.Error(err))
		return
	}

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn("Failed to dial broker, retrying",
				zap.Error(err),
				zap.Duration("backoff", backoff),
			)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, outDir, log); err != nil {
			log.Warn("Consume loop ended, reconnecting", zap.Error(err))
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, outDir string, log *zap.Logger) error {
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warn("Failed to set QoS", zap.Error(err))
	}

	if _, err := ch.QueueDeclare(reservationQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(reservationQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body, outDir); err != nil {
			log.Error("Failed to handle confirmation", zap.Error(err))
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}

	return fmt.Errorf("delivery channel closed")
}

func handleMessage(body []byte, outDir string) error {
	var event ReservationConfirmedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}

	line := fmt.Sprintf("%s | %s | %s | hall %s | seats %s | %s\n",
		event.ReservedAt.UTC().Format(time.RFC3339),
		event.ConfirmationCode,
		event.MovieTitle,
		event.HallName,
		strings.Join(event.Seats, ","),
		event.StartTime.UTC().Format(time.RFC3339),
	)

	ticketLog := filepath.Join(outDir, "tickets.log")
	f, err := os.OpenFile(ticketLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open ticket log: %w", err)
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return fmt.Errorf("append ticket log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close ticket log: %w", err)
	}

	qrPath := filepath.Join(outDir, event.ConfirmationCode+".png")
	if err := qrcode.WriteFile(event.ConfirmationCode, qrcode.Medium, 256, qrPath); err != nil {
		return fmt.Errorf("write qr code: %w", err)
	}

	return nil
}
