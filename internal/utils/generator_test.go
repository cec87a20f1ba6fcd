package utils

import (
	"bytes"
	"errors"
	"regexp"
	"strconv"
	"testing"
	"testing/iotest"
	"time"

	apperrors "github.com/Kosench/shortlink/internal/errors"
)

var hexCode = regexp.MustCompile(`^[0-9a-f]{6}$`)

func neverExists(string) bool { return false }

func TestGenerate_RandomHex(t *testing.T) {
	g := NewCodeGenerator()

	code, err := g.Generate(neverExists)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !hexCode.MatchString(code) {
		t.Errorf("Generate() = %q, want 6 lowercase hex chars", code)
	}
}

func TestGenerate_DeterministicSource(t *testing.T) {
	g := NewCodeGenerator(WithRandomSource(bytes.NewReader([]byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01})))

	code, err := g.Generate(neverExists)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if code != "deadbe" {
		t.Errorf("Generate() = %q, want deadbe", code)
	}
}

func TestGenerate_RetriesOnCollision(t *testing.T) {
	src := bytes.NewReader([]byte{
		0x00, 0x00, 0x01,
		0x00, 0x00, 0x02,
		0x00, 0x00, 0x03,
	})
	g := NewCodeGenerator(WithRandomSource(src))

	taken := map[string]bool{"000001": true, "000002": true}
	var checked []string
	code, err := g.Generate(func(c string) bool {
		checked = append(checked, c)
		return taken[c]
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if code != "000003" {
		t.Errorf("Generate() = %q, want 000003", code)
	}
	if len(checked) != 3 {
		t.Errorf("Generate() checked %d candidates, want 3", len(checked))
	}
}

func TestGenerate_FallbackAfterFiveCollisions(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	g := NewCodeGenerator(
		WithRandomSource(bytes.NewReader(make([]byte, 64))),
		WithGeneratorClock(func() time.Time { return now }),
	)

	randomChecks := 0
	code, err := g.Generate(func(c string) bool {
		if hexCode.MatchString(c) {
			randomChecks++
			return true
		}
		return false
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if randomChecks != DefaultMaxAttempts {
		t.Errorf("random attempts = %d, want %d", randomChecks, DefaultMaxAttempts)
	}

	want := strconv.FormatInt(now.UnixMilli(), 36)
	if code != want {
		t.Errorf("Generate() fallback = %q, want %q", code, want)
	}
}

func TestGenerate_FallbackIsMonotonic(t *testing.T) {
	frozen := time.UnixMilli(1_700_000_000_000)
	g := NewCodeGenerator(
		WithRandomSource(bytes.NewReader(make([]byte, 1024))),
		WithGeneratorClock(func() time.Time { return frozen }),
	)
	allRandomTaken := func(c string) bool { return hexCode.MatchString(c) }

	var prev int64
	for i := 0; i < 5; i++ {
		code, err := g.Generate(allRandomTaken)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		value, err := strconv.ParseInt(code, 36, 64)
		if err != nil {
			t.Fatalf("fallback %q is not base-36: %v", code, err)
		}
		if value <= prev {
			t.Errorf("fallback %d not greater than previous %d", value, prev)
		}
		prev = value
	}
}

func TestGenerate_EverythingTaken(t *testing.T) {
	g := NewCodeGenerator(WithRandomSource(bytes.NewReader(make([]byte, 64))))

	_, err := g.Generate(func(string) bool { return true })
	if !errors.Is(err, apperrors.ErrShortCodeGeneration) {
		t.Fatalf("Generate() error = %v, want ErrShortCodeGeneration", err)
	}
	if !apperrors.IsBusinessError(err) {
		t.Errorf("Generate() error should be a business error, got %T", err)
	}
}

func TestGenerate_RandomSourceFailure(t *testing.T) {
	g := NewCodeGenerator(WithRandomSource(iotest.ErrReader(errors.New("entropy exhausted"))))

	_, err := g.Generate(neverExists)
	if !errors.Is(err, apperrors.ErrShortCodeGeneration) {
		t.Fatalf("Generate() error = %v, want ErrShortCodeGeneration", err)
	}
}

func TestGenerateUniqueness(t *testing.T) {
	g := NewCodeGenerator()
	generated := make(map[string]bool)

	for i := 0; i < 500; i++ {
		code, err := g.Generate(func(c string) bool { return generated[c] })
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if generated[code] {
			t.Fatalf("Generate() returned taken code %s", code)
		}
		generated[code] = true
	}
}
