// Package notify sends one-way SMS notifications to guests. Delivery is
// not tracked; a nil error only means the message was handed off.
package notify

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
)

type SMS struct {
	To           string `json:"to"`
	Body         string `json:"message"`
	RestaurantID string `json:"restaurant_id"`
}

func (m SMS) Validate() error {
	switch {
	case strings.TrimSpace(m.To) == "":
		return apperr.Validation("phone_required")
	case strings.TrimSpace(m.Body) == "":
		return apperr.Validation("message_required")
	case m.RestaurantID == "":
		return apperr.Validation("scope_required")
	}
	return nil
}

type Sender interface {
	Send(ctx context.Context, msg SMS) error
}

// LogSender only logs messages. It stands in when no broker is configured.
type LogSender struct {
	log logrus.FieldLogger
}

func NewLogSender(log logrus.FieldLogger) *LogSender {
	return &LogSender{log: log.WithField("component", "sms")}
}

func (s *LogSender) Send(_ context.Context, msg SMS) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"to":    msg.To,
		"scope": msg.RestaurantID,
	}).Info(msg.Body)
	return nil
}
