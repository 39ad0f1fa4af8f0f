package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
)

type fakeChannel struct {
	published []amqp.Publishing
	keys      []string
	err       error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func TestAMQPSenderPublishesPersistentJSON(t *testing.T) {
	ch := &fakeChannel{}
	logger, _ := test.NewNullLogger()
	s := NewAMQPSender(ch, "floor.sms", logger)

	err := s.Send(context.Background(), SMS{To: "+5511999", Body: "hi", RestaurantID: "r1"})
	require.NoError(t, err)

	require.Len(t, ch.published, 1)
	assert.Equal(t, "floor.sms", ch.keys[0])
	assert.Equal(t, amqp.Persistent, ch.published[0].DeliveryMode)
	assert.Equal(t, "application/json", ch.published[0].ContentType)

	var got map[string]any
	require.NoError(t, json.Unmarshal(ch.published[0].Body, &got))
	assert.Equal(t, "+5511999", got["to"])
	assert.Equal(t, "hi", got["message"])
	assert.Equal(t, "r1", got["restaurant_id"])
}

func TestAMQPSenderFailures(t *testing.T) {
	logger, _ := test.NewNullLogger()

	s := NewAMQPSender(&fakeChannel{err: errors.New("channel closed")}, "q", logger)
	err := s.Send(context.Background(), SMS{To: "1", Body: "b", RestaurantID: "r1"})
	assert.True(t, apperr.HasCode(err, "sms_send_failed"))

	ch := &fakeChannel{}
	s = NewAMQPSender(ch, "q", logger)
	err = s.Send(context.Background(), SMS{Body: "b", RestaurantID: "r1"})
	assert.True(t, apperr.HasCode(err, "phone_required"))
	assert.Empty(t, ch.published)
}

func TestTemplates(t *testing.T) {
	assert.Equal(t,
		"Hello! Your table at Casa will be ready in about 10 minutes. Please come to the host stand.",
		WaitlistReady("Casa", 10))
	assert.Contains(t, WaitlistReady("Casa", 0), "is ready")
	assert.Equal(t,
		"Reservation confirmed at Casa for 1 person on 2026-05-02 at 19:30. See you soon!",
		ReservationConfirmation("Casa", "2026-05-02", "19:30", 1))
	assert.Contains(t, ReservationConfirmation("Casa", "2026-05-02", "19:30", 4), "4 people")
	assert.Equal(t,
		"Reminder: your reservation at Casa is today at 20:00. See you soon!",
		ReservationReminder("Casa", "20:00"))
}

func TestLogSender(t *testing.T) {
	logger, hook := test.NewNullLogger()
	s := NewLogSender(logger)

	require.NoError(t, s.Send(context.Background(), SMS{To: "1", Body: "hello", RestaurantID: "r1"}))
	assert.Equal(t, "hello", hook.LastEntry().Message)
	assert.Error(t, s.Send(context.Background(), SMS{To: "1", RestaurantID: "r1"}))
}
