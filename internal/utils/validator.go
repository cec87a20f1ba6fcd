package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	apperrors "github.com/Kosench/shortlink/internal/errors"
)

const (
	MaxURLLength       = 2048
	MinShortcodeLength = 4
	MaxShortcodeLength = 20
)

var shortcodePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

func IsValidURL(rawURL string) bool {
	return ValidateURL(rawURL) == nil
}

func IsValidShortcode(code string) bool {
	return ValidateShortcode(code) == nil
}

func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return apperrors.NewValidationError("url", "URL cannot be empty", apperrors.ErrInvalidURL)
	}

	if len(rawURL) > MaxURLLength {
		return apperrors.NewValidationError("url",
			fmt.Sprintf("URL is too long (max %d characters)", MaxURLLength), apperrors.ErrInvalidURL)
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return apperrors.NewValidationError("url", fmt.Sprintf("invalid URL format: %v", err), apperrors.ErrInvalidURL)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return apperrors.NewValidationError("url", "URL must start with http:// or https://", apperrors.ErrInvalidURL)
	}

	if parsedURL.Host == "" {
		return apperrors.NewValidationError("url", "URL must contain a valid host", apperrors.ErrInvalidURL)
	}

	return nil
}

func ValidateShortcode(code string) error {
	if len(code) < MinShortcodeLength || len(code) > MaxShortcodeLength {
		return apperrors.NewValidationError("shortcode",
			fmt.Sprintf("shortcode must be %d-%d characters long", MinShortcodeLength, MaxShortcodeLength),
			apperrors.ErrInvalidShortCode)
	}

	if !shortcodePattern.MatchString(code) {
		return apperrors.NewValidationError("shortcode", "shortcode may contain only letters and digits",
			apperrors.ErrInvalidShortCode)
	}

	return nil
}

func SanitizeInput(input string) string {
	// Удаляем управляющие символы и обрезаем пробелы
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, input)

	return strings.TrimSpace(result)
}
