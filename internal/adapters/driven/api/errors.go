package api

import (
	"errors"
	"fmt"
)

// errMissingResults is the cause when an object response has no results key.
var errMissingResults = errors.New(`response object has no "results" field`)

func unexpectedShape(v any, decodeErr error) error {
	if decodeErr != nil {
		return fmt.Errorf("unexpected response: %w", decodeErr)
	}
	return fmt.Errorf("unexpected response type %T", v)
}
