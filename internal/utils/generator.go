package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	apperrors "github.com/Kosench/shortlink/internal/errors"
)

const (
	DefaultMaxAttempts = 5
	randomCodeBytes    = 3 // 6 hex chars
)

// CodeGenerator produces short codes: random hex first, then a base-36
// timestamp once every random candidate has collided.
type CodeGenerator struct {
	random      io.Reader
	now         func() time.Time
	maxAttempts int

	mu           sync.Mutex
	lastFallback int64
}

type GeneratorOption func(*CodeGenerator)

func WithRandomSource(r io.Reader) GeneratorOption {
	return func(g *CodeGenerator) {
		g.random = r
	}
}

func WithGeneratorClock(now func() time.Time) GeneratorOption {
	return func(g *CodeGenerator) {
		g.now = now
	}
}

func WithMaxAttempts(n int) GeneratorOption {
	return func(g *CodeGenerator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

func NewCodeGenerator(opts ...GeneratorOption) *CodeGenerator {
	g := &CodeGenerator{
		random:      rand.Reader,
		now:         time.Now,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns the first candidate for which exists reports false.
// exists must not block; the registry calls Generate while holding its lock.
func (g *CodeGenerator) Generate(exists func(code string) bool) (string, error) {
	buf := make([]byte, randomCodeBytes)

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		if _, err := io.ReadFull(g.random, buf); err != nil {
			return "", apperrors.NewBusinessError(apperrors.ErrShortCodeGeneration.Code,
				"failed to read random bytes", err)
		}

		code := hex.EncodeToString(buf)
		if !exists(code) {
			return code, nil
		}
	}

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		code := g.fallbackCode()
		if !exists(code) {
			return code, nil
		}
	}

	return "", fmt.Errorf("no free code after %d random and %d fallback attempts: %w",
		g.maxAttempts, g.maxAttempts, apperrors.ErrShortCodeGeneration)
}

// fallbackCode never returns the same value twice for one generator.
func (g *CodeGenerator) fallbackCode() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ts := g.now().UnixMilli()
	if ts <= g.lastFallback {
		ts = g.lastFallback + 1
	}
	g.lastFallback = ts

	return strconv.FormatInt(ts, 36)
}
