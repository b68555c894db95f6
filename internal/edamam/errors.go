package edamam

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingCredentials is wrapped by every ConfigError
	ErrMissingCredentials = errors.New("missing Edamam API credentials")

	// ErrRecipeNotFound is returned by Lookup when no hit matches the identifier
	ErrRecipeNotFound = errors.New("recipe not found")
)

// ConfigError is reported before any request is made
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s not set", ErrMissingCredentials, strings.Join(e.Missing, ", "))
}

func (e *ConfigError) Unwrap() error {
	return ErrMissingCredentials
}

// RequestError covers non-success statuses, malformed bodies and transport failures
type RequestError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("API error: %d - %s", e.StatusCode, e.Body)
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "API request failed"
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

var errInvalidResponse = errors.New("invalid API response format")

// IsConfigError reports whether err is a configuration error
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// IsRequestError reports whether err is a request error
func IsRequestError(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}
