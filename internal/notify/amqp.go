package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPSender publishes each SMS as a persistent JSON message on a durable
// queue consumed by the SMS relay.
type AMQPSender struct {
	ch    publisher
	queue string
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewAMQPSender(ch publisher, queue string, log logrus.FieldLogger) *AMQPSender {
	return &AMQPSender{
		ch:    ch,
		queue: queue,
		log:   log.WithField("component", "sms"),
		now:   time.Now,
	}
}

// DialAMQP connects, declares the queue and returns a sender with the
// function that closes the connection.
func DialAMQP(url, queue string, log logrus.FieldLogger) (*AMQPSender, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("amqp channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("amqp queue declare: %w", err)
	}

	closer := func() error {
		_ = ch.Close()
		return conn.Close()
	}
	return NewAMQPSender(ch, queue, log), closer, nil
}

type envelope struct {
	SMS
	QueuedAt time.Time `json:"queued_at"`
}

func (s *AMQPSender) Send(ctx context.Context, msg SMS) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(envelope{SMS: msg, QueuedAt: s.now().UTC()})
	if err != nil {
		return apperr.Remote("sms_encode_failed", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.ch.PublishWithContext(ctx,
		"",      // default exchange
		s.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    s.now(),
		},
	); err != nil {
		s.log.WithError(err).WithField("scope", msg.RestaurantID).Warn("sms publish failed")
		return apperr.Remote("sms_send_failed", err)
	}

	s.log.WithField("scope", msg.RestaurantID).Debug("sms queued")
	return nil
}

var (
	_ Sender = (*AMQPSender)(nil)
	_ Sender = (*LogSender)(nil)
)
