package services

import (
	"context"
	"log"

	"github.com/go-resty/resty/v2"
)

type EventType string

const (
	EventAssessmentInvited EventType = "assessment.invited"
	EventReportReady       EventType = "report.ready"
	EventReportCreated     EventType = "report.created"
	EventReportFailed      EventType = "report.failed"
)

// Event is an outbound domain event consumed by the messaging collaborator.
// Delivery is fire-and-forget: a lost event never fails the operation that
// produced it.
type Event struct {
	Type       EventType
	Subject    string
	Body       string
	Recipients []string
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}

// mailPublisher delivers events as plain-text emails through an HTTP mail
// API. Failures are logged and swallowed.
type mailPublisher struct {
	client *resty.Client
	apiURL string
	from   string
}

func NewMailPublisher(apiURL, apiKey, from string) EventPublisher {
	client := resty.New().SetAuthToken(apiKey)
	return &mailPublisher{
		client: client,
		apiURL: apiURL,
		from:   from,
	}
}

// Publish implements EventPublisher.
func (m *mailPublisher) Publish(ctx context.Context, event Event) {
	if len(event.Recipients) == 0 {
		log.Printf("📣 Event %s (no recipients): %s", event.Type, event.Subject)
		return
	}

	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"from":    m.from,
			"to":      event.Recipients,
			"subject": event.Subject,
			"text":    event.Body,
		}).
		Post(m.apiURL)
	if err != nil {
		log.Printf("⚠️  Failed to deliver %s event: %v", event.Type, err)
		return
	}
	if resp.IsError() {
		log.Printf("⚠️  Mail API rejected %s event: %s", event.Type, resp.Status())
		return
	}

	log.Printf("📧 Delivered %s event to %d recipient(s)", event.Type, len(event.Recipients))
}

// logPublisher is the fallback when no mail API is configured (local
// development, tests).
type logPublisher struct{}

func NewLogPublisher() EventPublisher {
	return &logPublisher{}
}

// Publish implements EventPublisher.
func (l *logPublisher) Publish(_ context.Context, event Event) {
	log.Printf("📣 Event %s -> %v: %s", event.Type, event.Recipients, event.Subject)
}
