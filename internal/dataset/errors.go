package dataset

import (
	"errors"
	"fmt"
)

// ErrFormat matches every *FormatError through errors.Is.
var ErrFormat = errors.New("invalid feature collection")

// FormatError reports input that is not a usable GeoJSON feature collection.
type FormatError struct {
	Feature int // index of the offending feature, -1 for the collection itself
	Reason  string
	Err     error
}

func (e *FormatError) Error() string {
	msg := "invalid feature collection"
	if e.Feature >= 0 {
		msg = fmt.Sprintf("invalid feature %d", e.Feature)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFormat) hold for any FormatError.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

func collectionError(reason string, err error) *FormatError {
	return &FormatError{Feature: -1, Reason: reason, Err: err}
}

func featureError(idx int, reason string, err error) *FormatError {
	return &FormatError{Feature: idx, Reason: reason, Err: err}
}
