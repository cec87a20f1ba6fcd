package repository

import (
	"time"

	"github.com/Kosench/shortlink/internal/model"
)

// GenerateFunc picks a free code; exists reports whether a code is taken.
type GenerateFunc func(exists func(code string) bool) (string, error)

type LinkRepository interface {
	Has(code string) bool
	Get(code string) (*model.LinkRecord, error)
	Create(code, originalURL string, validity time.Duration) (*model.LinkRecord, error)
	CreateGenerated(generate GenerateFunc, originalURL string, validity time.Duration) (*model.LinkRecord, error)
	AppendClick(code string, event model.ClickEvent) error
	RecordClick(code string, event model.ClickEvent) (string, error)
	Len() int
}
