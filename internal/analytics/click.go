package analytics

import (
	"time"

	"github.com/Kosench/shortlink/internal/model"
)

func NewClickEvent(at time.Time, rc model.RequestContext) model.ClickEvent {
	referrer := rc.Referrer
	if referrer == "" {
		referrer = model.DirectReferrer
	}

	return model.ClickEvent{
		Timestamp: at,
		Referrer:  referrer,
		IP:        rc.IP,
		Location:  ClassifyLocation(rc.IP),
	}
}
