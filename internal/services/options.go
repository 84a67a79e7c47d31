package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"shop/internal/models"
)

// EventPublisher delivers catalog events to a message broker.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}

// Option configures a catalog service.
type Option func(*settings)

type settings struct {
	now       func() time.Time
	publisher EventPublisher
}

// WithClock sets the time source used to stamp new records.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

// WithPublisher makes the service announce writes through p.
func WithPublisher(p EventPublisher) Option {
	return func(s *settings) {
		s.publisher = p
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

var validate = validator.New()

// validateStruct checks the validate tags of v and reports failures as models.ErrValidation.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	fields := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, fmt.Sprintf("field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
	}
	return fmt.Errorf("%w: %s", models.ErrValidation, strings.Join(fields, "; "))
}

// catalogEvent is the message body published for every catalog write.
type catalogEvent struct {
	Type string    `json:"type"`
	ID   string    `json:"id"`
	At   time.Time `json:"at"`
	Data any       `json:"data,omitempty"`
}

// publish sends an event if a publisher is configured. Failures are logged;
// the write that triggered the event has already been committed.
func (s settings) publish(eventType, id string, data any) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(catalogEvent{Type: eventType, ID: id, At: s.now(), Data: data})
	if err != nil {
		log.Printf("Failed to marshal %s event for %s: %v", eventType, id, err)
		return
	}
	if err := s.publisher.Publish(eventType, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for %s: %v", eventType, id, err)
	}
}
