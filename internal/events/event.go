package events

import (
	"time"

	"github.com/Kosench/shortlink/internal/model"
)

type EventType string

const (
	EventLinkCreated   EventType = "link_created"
	EventClickRecorded EventType = "click_recorded"
)

type Event struct {
	Type        EventType
	Code        string
	OccurredAt  time.Time
	OriginalURL string
	Expiry      time.Time
	Click       *model.ClickEvent
}

func LinkCreated(link *model.LinkRecord) Event {
	return Event{
		Type:        EventLinkCreated,
		Code:        link.Code,
		OccurredAt:  link.CreatedAt,
		OriginalURL: link.OriginalURL,
		Expiry:      link.Expiry,
	}
}

func ClickRecorded(code, originalURL string, click model.ClickEvent) Event {
	return Event{
		Type:        EventClickRecorded,
		Code:        code,
		OccurredAt:  click.Timestamp,
		OriginalURL: originalURL,
		Click:       &click,
	}
}

func (e Event) Validate() error {
	if e.Type == "" || e.Code == "" {
		return ErrInvalidEvent
	}
	return nil
}

// Values flattens the event into stream entry fields.
func (e Event) Values() map[string]interface{} {
	values := map[string]interface{}{
		"type":         string(e.Type),
		"code":         e.Code,
		"occurred_at":  e.OccurredAt.UTC().Format(time.RFC3339Nano),
		"original_url": e.OriginalURL,
	}

	if !e.Expiry.IsZero() {
		values["expiry"] = e.Expiry.UTC().Format(time.RFC3339Nano)
	}

	if e.Click != nil {
		values["referrer"] = e.Click.Referrer
		values["ip"] = e.Click.IP
		values["location"] = string(e.Click.Location)
	}

	return values
}
