package analytics

import "github.com/Kosench/shortlink/internal/model"

// BuildStats summarizes a record snapshot. The full click history is
// returned; there is no pagination.
func BuildStats(link *model.LinkRecord) *model.LinkStats {
	clicks := link.Clicks
	if clicks == nil {
		clicks = []model.ClickEvent{}
	}

	return &model.LinkStats{
		TotalClicks: len(clicks),
		OriginalURL: link.OriginalURL,
		CreatedAt:   link.CreatedAt,
		Expiry:      link.Expiry,
		Clicks:      clicks,
	}
}
