package model

import "time"

type Location string

const (
	LocationLocal   Location = "local"
	LocationPrivate Location = "private"
	LocationUnknown Location = "unknown"
)

// DirectReferrer marks a click that arrived without a Referer header.
const DirectReferrer = "direct"

type ClickEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Referrer  string    `json:"referrer"`
	IP        string    `json:"ip"`
	Location  Location  `json:"location"`
}

// LinkRecord is the registry entry for one shortcode. Clicks are kept in
// insertion order, which is also chronological order.
type LinkRecord struct {
	Code        string       `json:"code"`
	OriginalURL string       `json:"originalUrl"`
	CreatedAt   time.Time    `json:"createdAt"`
	Expiry      time.Time    `json:"expiry"`
	Clicks      []ClickEvent `json:"clicks"`
}

// IsExpired reports whether the link stops redirecting at the given instant.
func (r *LinkRecord) IsExpired(at time.Time) bool {
	return at.After(r.Expiry)
}

// Clone returns a copy that shares no mutable state with r.
func (r *LinkRecord) Clone() *LinkRecord {
	clone := *r
	clone.Clicks = make([]ClickEvent, len(r.Clicks))
	copy(clone.Clicks, r.Clicks)
	return &clone
}

// RequestContext carries the request details recorded with a click.
type RequestContext struct {
	Referrer string
	IP       string
}
