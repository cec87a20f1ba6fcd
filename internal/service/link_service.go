package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Kosench/shortlink/internal/analytics"
	"github.com/Kosench/shortlink/internal/events"
	"github.com/Kosench/shortlink/internal/model"
	"github.com/Kosench/shortlink/internal/repository"
	"github.com/Kosench/shortlink/internal/utils"
)

const DefaultValidity = 30 * time.Minute

type LinkService struct {
	linkRepo        repository.LinkRepository
	generator       *utils.CodeGenerator
	events          events.Sink
	defaultValidity time.Duration
	now             func() time.Time
}

type Option func(*LinkService)

// WithClock sets the clock used for click timestamps and expiry checks.
// The repository keeps its own clock for creation times.
func WithClock(now func() time.Time) Option {
	return func(s *LinkService) {
		s.now = now
	}
}

func WithDefaultValidity(d time.Duration) Option {
	return func(s *LinkService) {
		if d > 0 {
			s.defaultValidity = d
		}
	}
}

func WithEventSink(sink events.Sink) Option {
	return func(s *LinkService) {
		if sink != nil {
			s.events = sink
		}
	}
}

func NewLinkService(linkRepo repository.LinkRepository, generator *utils.CodeGenerator, opts ...Option) *LinkService {
	s := &LinkService{
		linkRepo:        linkRepo,
		generator:       generator,
		events:          events.NullSink{},
		defaultValidity: DefaultValidity,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateShortURL registers req.URL under req.Shortcode, or under a generated
// code when none is given. baseURL is prefixed to the code to form ShortLink.
func (s *LinkService) CreateShortURL(ctx context.Context, req *model.CreateShortURLRequest, baseURL string) (*model.CreatedLink, error) {
	originalURL := utils.SanitizeInput(req.URL)
	if err := utils.ValidateURL(originalURL); err != nil {
		return nil, err
	}

	validity := req.Validity.Duration(s.defaultValidity)

	var (
		link *model.LinkRecord
		err  error
	)
	if req.Shortcode != "" {
		if err := utils.ValidateShortcode(req.Shortcode); err != nil {
			return nil, err
		}
		link, err = s.linkRepo.Create(req.Shortcode, originalURL, validity)
	} else {
		link, err = s.linkRepo.CreateGenerated(s.generator.Generate, originalURL, validity)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create short URL: %w", err)
	}

	log.Printf("Created shortcode %s -> %s (expires %s)", link.Code, link.OriginalURL, link.Expiry.UTC().Format(time.RFC3339))
	s.events.Enqueue(events.LinkCreated(link))

	return &model.CreatedLink{
		Code:      link.Code,
		ShortLink: buildShortLink(baseURL, link.Code),
		Expiry:    link.Expiry,
	}, nil
}

func (s *LinkService) GetStats(ctx context.Context, shortCode string) (*model.LinkStats, error) {
	link, err := s.linkRepo.Get(shortCode)
	if err != nil {
		return nil, err
	}
	return analytics.BuildStats(link), nil
}

// Redirect resolves shortCode and records the click in one step. Expired or
// unknown codes record nothing.
func (s *LinkService) Redirect(ctx context.Context, shortCode string, rc model.RequestContext) (string, error) {
	click := analytics.NewClickEvent(s.now().UTC(), rc)

	target, err := s.linkRepo.RecordClick(shortCode, click)
	if err != nil {
		return "", err
	}

	s.events.Enqueue(events.ClickRecorded(shortCode, target, click))
	return target, nil
}

func buildShortLink(baseURL, code string) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(baseURL, "/"), code)
}
