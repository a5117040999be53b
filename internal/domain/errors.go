package domain

import (
	"errors"
	"strings"
)

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInsufficientPrompts   = errors.New("please answer at least 3 prompts")
	ErrDuplicateEmail        = errors.New("a profile with this email already exists")

	ErrProfileNotFound  = errors.New("profile not found")
	ErrInvalidProfileID = errors.New("invalid profile id")

	ErrInvalidInteraction  = errors.New("invalid interaction")
	ErrInteractionNotFound = errors.New("interaction not found")
	ErrInteractionExists   = errors.New("interaction already exists")
)

// ValidationError carries the human readable messages of every field rule
// a profile failed.
type ValidationError struct {
	Fields map[string]string
	order  []string
}

func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.order = append(e.order, field)
	}
	e.Fields[field] = message
}

// Messages returns the field messages in the order they were reported.
func (e *ValidationError) Messages() []string {
	out := make([]string, 0, len(e.order))
	for _, f := range e.order {
		out = append(out, e.Fields[f])
	}
	return out
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages(), ", ")
}
