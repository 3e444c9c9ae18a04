// Package apperr defines the error taxonomy shared by the extraction,
// mapping and risk-analysis layers.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration indicates malformed or missing static configuration,
	// including a worked example that does not satisfy its own schema.
	ErrConfiguration = errors.New("configuration error")

	// ErrGateway indicates an LLM gateway call failed.
	ErrGateway = errors.New("llm gateway error")

	// ErrContentFiltered indicates the provider rejected the prompt on
	// content-policy grounds.
	ErrContentFiltered = errors.New("content filtered by provider")

	// ErrValidationExhausted indicates the bounded-retry extractor used every
	// attempt without producing schema-valid output.
	ErrValidationExhausted = errors.New("structured output validation exhausted")

	// ErrMapping indicates a validated payload holds a value outside its
	// enumerated set, or is missing a required key.
	ErrMapping = errors.New("mapping error")

	// ErrInternalConsistency indicates an unreachable state-machine branch.
	ErrInternalConsistency = errors.New("internal consistency error")
)

// Error carries a taxonomy kind together with the failing operation and,
// where relevant, the offending configuration or payload key.
type Error struct {
	Kind error
	Op   string
	Key  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Key != "" {
		msg += fmt.Sprintf(" (key %q)", e.Key)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// New builds an Error of the given kind.
func New(kind error, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Keyed builds an Error of the given kind that names the offending key.
func Keyed(kind error, op, key string, err error) *Error {
	return &Error{Kind: kind, Op: op, Key: key, Err: err}
}

// Configuration is shorthand for a keyed ErrConfiguration.
func Configuration(op, key string, err error) *Error {
	return Keyed(ErrConfiguration, op, key, err)
}

// Mapping is shorthand for a keyed ErrMapping.
func Mapping(op, key string, err error) *Error {
	return Keyed(ErrMapping, op, key, err)
}

// Gateway wraps a provider failure. Errors already classified as gateway or
// content-filter errors are returned unchanged so they are wrapped only once.
func Gateway(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrGateway) || errors.Is(err, ErrContentFiltered) {
		return err
	}
	return New(ErrGateway, op, err)
}

var kinds = []error{
	ErrConfiguration,
	ErrGateway,
	ErrContentFiltered,
	ErrValidationExhausted,
	ErrMapping,
	ErrInternalConsistency,
}

// KindOf returns the taxonomy sentinel matched by err, or nil.
func KindOf(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// Code returns a short, stable code for err, suitable for logs and the
// history store.
func Code(err error) string {
	switch KindOf(err) {
	case nil:
		if err == nil {
			return ""
		}
		return "UNKNOWN"
	case ErrConfiguration:
		return "CONFIGURATION"
	case ErrGateway:
		return "GATEWAY"
	case ErrContentFiltered:
		return "CONTENT_FILTERED"
	case ErrValidationExhausted:
		return "VALIDATION_EXHAUSTED"
	case ErrMapping:
		return "MAPPING"
	default:
		return "INTERNAL"
	}
}
