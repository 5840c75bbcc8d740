package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidProfile is returned for profile names that are unsafe to store
var ErrInvalidProfile = errors.New("invalid profile name")

// ErrCorruptProgress is returned when a stored document cannot be decoded
var ErrCorruptProgress = errors.New("corrupt progress document")

// ErrNotAnObject is returned when a progress body is not a JSON object
var ErrNotAnObject = errors.New("progress must be a JSON object")

var profileRgx = regexp.MustCompile(`^[A-Za-z0-9._-]{1,100}$`)

// ValidateProfile checks a profile identifier.
func ValidateProfile(profile string) error {
	if !profileRgx.MatchString(profile) {
		return fmt.Errorf("%w: %q", ErrInvalidProfile, profile)
	}
	return nil
}

// Document is a progress object. Values are kept raw so keys the server does
// not understand round-trip unchanged.
type Document map[string]json.RawMessage

// DecodeDocument parses a JSON object. Anything else yields ErrNotAnObject.
func DecodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnObject, err)
	}
	if doc == nil {
		return nil, ErrNotAnObject
	}
	return doc, nil
}

// ProgressStore abstracts per-profile progress storage.
type ProgressStore interface {
	// GetProgress returns the stored document, or an empty document when the
	// profile has none. Returns ErrCorruptProgress for undecodable data.
	GetProgress(profile string) (Document, error)

	// PutProgress creates or replaces the document of a profile.
	PutProgress(profile string, doc Document) error

	// DeleteProgress removes a profile's document. Missing documents are not
	// an error.
	DeleteProgress(profile string) error
}
