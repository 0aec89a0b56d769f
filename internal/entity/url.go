// Package entity defines the entities and errors used in the application.
// It includes the shortened URL, the exercise tracker's users and exercises,
// the input checks shared by the use cases and the calendar date helpers.
package entity

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// URLCounter is the name of the counter that allocates short URLs.
const URLCounter = "urls"

// URL represents a shortened URL.
type URL struct {
	ID          int64     // ID is the allocated short URL. It is never reused.
	OriginalURL string    // OriginalURL is the full URL that the short URL resolves to.
	CreatedAt   time.Time // CreatedAt is the timestamp when the URL was created.
}

var validate = validator.New()

// ValidateURL reports whether rawURL is an absolute http or https URL with a host.
func ValidateURL(rawURL string) error {
	// http_url lets spaces through in the path and query.
	if strings.Contains(rawURL, " ") {
		return ErrInvalidURL
	}

	if err := validate.Var(rawURL, "required,http_url"); err != nil {
		return ErrInvalidURL
	}

	return nil
}
