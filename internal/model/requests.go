package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

type CreateShortURLRequest struct {
	URL       string          `json:"url" binding:"required"`
	Validity  ValidityMinutes `json:"validity"`
	Shortcode string          `json:"shortcode"`
}

type CreatedLink struct {
	Code      string    `json:"-"`
	ShortLink string    `json:"shortLink"`
	Expiry    time.Time `json:"expiry"`
}

type LinkStats struct {
	TotalClicks int          `json:"totalClicks"`
	OriginalURL string       `json:"originalUrl"`
	CreatedAt   time.Time    `json:"createdAt"`
	Expiry      time.Time    `json:"expiry"`
	Clicks      []ClickEvent `json:"clicks"`
}

// ValidityMinutes is the requested lifetime of a link. Decoding never fails:
// numbers and numeric strings are taken as-is, true is one minute, anything
// else becomes zero, which Duration treats as "use the default".
type ValidityMinutes float64

const maxValidityMinutes = float64(math.MaxInt64 / int64(time.Minute))

func (m *ValidityMinutes) UnmarshalJSON(data []byte) error {
	*m = 0

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	switch v := raw.(type) {
	case float64:
		*m = ValidityMinutes(v)
	case bool:
		if v {
			*m = 1
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			*m = ValidityMinutes(f)
		}
	}
	return nil
}

// MarshalJSON writes null for NaN and infinities, which JSON cannot carry.
func (m ValidityMinutes) MarshalJSON() ([]byte, error) {
	f := float64(m)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// Duration returns the lifetime, falling back to def unless m is a positive
// finite number.
func (m ValidityMinutes) Duration(def time.Duration) time.Duration {
	minutes := float64(m)
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes <= 0 {
		return def
	}
	if minutes > maxValidityMinutes {
		minutes = maxValidityMinutes
	}
	return time.Duration(minutes * float64(time.Minute))
}
