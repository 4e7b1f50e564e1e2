package backend

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse means the generation API answered with a success
// status but the body did not have the expected candidate structure.
var ErrMalformedResponse = errors.New("malformed generation response")

// StatusError is returned when the generation API answers with a non-2xx
// status. Body holds the raw upstream payload for logging.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("generation API returned %s", e.Status)
}
